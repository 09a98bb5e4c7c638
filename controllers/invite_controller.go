package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"puffpoint-backend/app"
	"puffpoint-backend/db"
	"puffpoint-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	inviteTTL  = 7 * 24 * time.Hour
	inviteUses = 5
)

// InviteStore is the slice of the repo the invite controller needs.
type InviteStore interface {
	FindListByID(ctx context.Context, id string) (*models.List, error)
	MemberRole(ctx context.Context, listID, userID string) (string, error)
	CreateListInvite(ctx context.Context, inv *models.ListInvite, now time.Time) error
	GetInviteByToken(ctx context.Context, token string) (*models.ListInvite, error)
	RedeemInvite(ctx context.Context, token, userID string, now time.Time) error
}

type InviteController struct {
	store  InviteStore
	scheme string
	now    func() time.Time
}

func GetInviteController(store InviteStore, scheme string) *InviteController {
	return &InviteController{store: store, scheme: scheme, now: time.Now}
}

// POST /api/lists/:id/invites
func (ic *InviteController) CreateInvite(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	listID := c.Param("id")

	var in struct {
		Role string `json:"role" binding:"required,oneof=view edit"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "listId and role required"})
		return
	}

	list, err := ic.store.FindListByID(c.Request.Context(), listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	// owner 或 edit 成员才可以发邀请
	if list.OwnerID != uid {
		role, err := ic.store.MemberRole(c.Request.Context(), listID, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		if role != models.RoleEdit {
			c.JSON(http.StatusForbidden, app.H{"error": "only owner or editor can invite"})
			return
		}
	}

	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	now := ic.now()
	inv := &models.ListInvite{
		ID:            uuid.NewString(),
		ListID:        listID,
		CreatedBy:     uid,
		Role:          in.Role,
		Token:         token,
		ExpiresAt:     now.Add(inviteTTL),
		UsesRemaining: inviteUses,
	}
	if err := ic.store.CreateListInvite(c.Request.Context(), inv, now); err != nil {
		if errors.Is(err, db.ErrInviteQuota) {
			c.JSON(http.StatusTooManyRequests, app.H{"error": "invite limit reached"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, app.H{
		"token":     token,
		"expiresAt": inv.ExpiresAt.UTC().Format(time.RFC3339),
		"url":       ic.scheme + "://invite?token=" + token,
	})
}

// GET /api/invites/preview?token=
// 客户端打开 puffpoint://invite 深链后，先预览再决定加不加入；不消耗额度
func (ic *InviteController) PreviewInvite(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "token required"})
		return
	}

	inv, err := ic.store.GetInviteByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "invite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	now := ic.now()
	if now.After(inv.ExpiresAt) {
		c.JSON(http.StatusPreconditionFailed, app.H{"error": "invite expired"})
		return
	}
	if inv.InvalidatedAt != nil || inv.UsesRemaining <= 0 {
		c.JSON(http.StatusPreconditionFailed, app.H{"error": "invite exhausted"})
		return
	}

	list, err := ic.store.FindListByID(c.Request.Context(), inv.ListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "list missing"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, app.H{
		"listId":        list.ID,
		"listName":      list.Name,
		"role":          inv.Role,
		"expiresAt":     inv.ExpiresAt.UTC().Format(time.RFC3339),
		"usesRemaining": inv.UsesRemaining,
	})
}

// POST /api/invites/redeem
func (ic *InviteController) RedeemInvite(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "token required"})
		return
	}

	err := ic.store.RedeemInvite(c.Request.Context(), in.Token, uid, ic.now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, app.H{"ok": true})
	case errors.Is(err, db.ErrInviteNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "invite not found"})
	case errors.Is(err, db.ErrInviteExpired):
		c.JSON(http.StatusPreconditionFailed, app.H{"error": "invite expired"})
	case errors.Is(err, db.ErrInviteExhausted):
		c.JSON(http.StatusPreconditionFailed, app.H{"error": "invite exhausted"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "list missing"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
