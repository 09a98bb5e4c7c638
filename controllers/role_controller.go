package controllers

import (
	"context"
	"errors"
	"net/http"

	"puffpoint-backend/app"
	"puffpoint-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClaimStore is the slice of the repo the role controller needs.
type ClaimStore interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	SetUserClaim(ctx context.Context, userID, claim string, value bool) (*models.User, error)
}

type RoleController struct {
	store ClaimStore
}

func GetRoleController(store ClaimStore) *RoleController {
	return &RoleController{store: store}
}

// POST /api/admin/roles
// 只改指定的那一个 claim，其余原样保留；完整映射回传给调用方。
// 已发出的会话不撤销：下一个带会话的请求重读用户行时才看到新角色。
func (rc *RoleController) SetRole(c *gin.Context) {
	var in struct {
		UID   string `json:"uid" binding:"required"`
		Role  string `json:"role" binding:"required,oneof=admin mod"`
		Value *bool  `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "uid and role required"})
		return
	}

	if _, err := rc.store.FindUserByID(c.Request.Context(), in.UID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	u, err := rc.store.SetUserClaim(c.Request.Context(), in.UID, in.Role, *in.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "claims": u.Claims()})
}
