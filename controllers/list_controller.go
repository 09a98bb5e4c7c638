package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"puffpoint-backend/app"
	"puffpoint-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListStore is the slice of the repo the list controller needs.
type ListStore interface {
	CreateList(ctx context.Context, l *models.List) error
	FindListByID(ctx context.Context, id string) (*models.List, error)
	ListMembers(ctx context.Context, listID string) ([]models.ListMember, error)
	MemberRole(ctx context.Context, listID, userID string) (string, error)
}

type ListController struct {
	store ListStore
}

func GetListController(store ListStore) *ListController {
	return &ListController{store: store}
}

// POST /api/lists
func (lc *ListController) CreateList(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "name required"})
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "name required"})
		return
	}

	l := &models.List{ID: uuid.NewString(), OwnerID: uid, Name: name}
	if err := lc.store.CreateList(c.Request.Context(), l); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"list": l})
}

// GET /api/lists/:id
// owner 或成员可见，其余一律 403
func (lc *ListController) GetList(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	listID := c.Param("id")

	list, err := lc.store.FindListByID(c.Request.Context(), listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	if list.OwnerID != uid {
		role, err := lc.store.MemberRole(c.Request.Context(), listID, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		if role == "" {
			c.JSON(http.StatusForbidden, app.H{"error": "not a member"})
			return
		}
	}

	members, err := lc.store.ListMembers(c.Request.Context(), listID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"list": list, "members": members})
}
