package db

import (
	"context"
	"errors"

	"puffpoint-backend/models"

	"gorm.io/gorm"
)

// Lists

func (r *Repo) CreateList(ctx context.Context, l *models.List) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *Repo) FindListByID(ctx context.Context, id string) (*models.List, error) {
	var l models.List
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// MemberRole 返回成员角色；非成员返回空串（owner 不在成员表里）
func (r *Repo) MemberRole(ctx context.Context, listID, userID string) (string, error) {
	var m models.ListMember
	err := r.DB.WithContext(ctx).
		Where("list_id = ? AND user_id = ?", listID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

func (r *Repo) ListMembers(ctx context.Context, listID string) ([]models.ListMember, error) {
	var ms []models.ListMember
	err := r.DB.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&ms).Error
	return ms, err
}
