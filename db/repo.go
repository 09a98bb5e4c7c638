package db

import (
	"context"
	"errors"
	"strings"

	"puffpoint-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Users

func (r *Repo) TouchUserLogin(ctx context.Context, userID string) error {
	// 用数据库时间更准，且避免并发覆盖：NOW() + 计数自增
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": gorm.Expr("NOW()"),
			"last_seen_at":  gorm.Expr("NOW()"),
			"login_count":   gorm.Expr("COALESCE(login_count, 0) + 1"),
		}).Error
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreateUser 供会话兑换使用：身份提供方第一次送来的 uid 直接建档
func (r *Repo) FindOrCreateUser(ctx context.Context, id, username string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = models.User{ID: id, Username: username, DisplayName: username}
		if err := r.DB.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	return &u, err
}

// 列表（分页 + 关键词，关键词匹配用户名/显示名）
type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, err
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, err
	}
	return ListUsersResult{Users: users, Total: total}, nil
}

func (r *Repo) DeleteUserByID(ctx context.Context, id string) error {
	// 成员关系一并清掉，清单本身保留
	if err := r.DB.WithContext(ctx).Where("user_id = ?", id).Delete(&models.ListMember{}).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Clauses(clause.Returning{}).Delete(&models.User{ID: id}).Error
}
