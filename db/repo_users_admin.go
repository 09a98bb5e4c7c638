// db/repo_users_admin.go
package db

import (
	"context"
	"fmt"

	"puffpoint-backend/models"
)

// SetUserClaim 合并单个 claim（admin / mod），其余保持不变
func (r *Repo) SetUserClaim(ctx context.Context, userID, claim string, value bool) (*models.User, error) {
	var col string
	switch claim {
	case "admin":
		col = "is_admin"
	case "mod":
		col = "is_mod"
	default:
		return nil, fmt.Errorf("unknown claim %q", claim)
	}
	if err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update(col, value).Error; err != nil {
		return nil, err
	}
	return r.FindUserByID(ctx, userID)
}

func (r *Repo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("is_admin = TRUE").
		Count(&n).Error
	return n, err
}
