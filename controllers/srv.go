// controllers/srv.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"puffpoint-backend/app"
	"puffpoint-backend/db"
	"puffpoint-backend/identity"
	"puffpoint-backend/session"
	"puffpoint-backend/storage"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	IDP     *identity.Verifier
	Objects storage.ObjectStore
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:    db.NewRepo(a.DB),
		AppSess: a.AppSessions(),
		IDP:     a.IDP,
		Objects: a.Objects,
		Cfg:     a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie（移动端同时拿响应里的 token）
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// callerID 取 AuthRequired 放进上下文的用户 ID
func callerID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}
