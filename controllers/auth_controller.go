package controllers

import (
	"net/http"
	"strings"

	"puffpoint-backend/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /auth/session
// 用身份提供方签发的 ID token 换业务会话。凭证校验本身全在提供方那边。
func (s *Srv) ExchangeSession(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		c.JSON(http.StatusUnauthorized, app.H{"error": "identity token required"})
		return
	}
	id, err := s.IDP.Verify(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid identity token"})
		return
	}

	u, err := s.Repo.FindOrCreateUser(c.Request.Context(), id.UID, id.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_ = s.Repo.TouchUserLogin(c.Request.Context(), u.ID) // 忽略错误，不阻塞登录

	sid := uuid.NewString()
	if err := s.AppSess.Create(c.Request.Context(), sid, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	s.setAppCookie(c.Writer, sid, s.Cfg.SessionTTL)
	c.JSON(http.StatusOK, app.H{"token": sid, "user": u})
}

// POST /auth/logout
func (s *Srv) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = s.AppSess.Delete(c.Request.Context(), ck.Value)
	} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		_ = s.AppSess.Delete(c.Request.Context(), strings.TrimPrefix(h, "Bearer "))
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(s.Cfg.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /auth/whoami
func (s *Srv) WhoAmI(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := s.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u, "claims": u.Claims()})
}
