// app/bootstrap.go
package app

import (
	"context"
	"log"

	"puffpoint-backend/models"
)

type BootstrapStore interface {
	CountAdmins(ctx context.Context) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	SetUserClaim(ctx context.Context, userID, claim string, value bool) (*models.User, error)
}

// BootstrapFirstAdmin 没有任何管理员时给 BOOTSTRAP_ADMIN 指定的用户
// 授 admin claim，避免新环境无人能调 setRole 的死锁。
// 已有管理员则什么都不做。
func BootstrapFirstAdmin(ctx context.Context, cfg Config, store BootstrapStore) {
	if cfg.BootstrapAdmin == "" {
		return
	}
	n, err := store.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap: count admins: %v", err)
		return
	}
	if n > 0 {
		return
	}

	u, err := store.FindUserByUsername(ctx, cfg.BootstrapAdmin)
	if err != nil {
		// 用户要先通过身份提供方登录一次建档，之后重启再授权
		log.Printf("[BOOTSTRAP] admin user %q not found yet, skipping", cfg.BootstrapAdmin)
		return
	}
	if _, err := store.SetUserClaim(ctx, u.ID, "admin", true); err != nil {
		log.Printf("bootstrap admin failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] granted admin claim to %s", cfg.BootstrapAdmin)
}
