package controllers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

// authAs stands in for app.AuthRequired: puts the caller into the context
// the same way the middleware does. Empty uid means "not authenticated".
func authAs(uid string, admin, mod bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != "" {
			c.Set("userID", uid)
			c.Set("isAdmin", admin)
			c.Set("isMod", mod)
		}
		c.Next()
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Buffer
	if body == "" {
		rd = bytes.NewBuffer(nil)
	} else {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
