package app

import (
	"net/http"
	"strings"

	"puffpoint-backend/db"
	"puffpoint-backend/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// sessionToken 兼容移动端（Authorization: Bearer）和 Web（Cookie）
func sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Request.Cookie(AppSessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sessionToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 每次请求重读用户行：role 变更下一个请求即生效（已发出的会话不撤销）
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), tok)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("isAdmin", u.IsAdmin)
		c.Set("isMod", u.IsMod)

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// ModeratorOnly 管理员或版主
func ModeratorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") && !c.GetBool("isMod") {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "mod/admin only"})
			return
		}
		c.Next()
	}
}
