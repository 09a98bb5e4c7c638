package db

import (
	"context"

	"puffpoint-backend/models"
)

// Photos

func (r *Repo) CreatePhoto(ctx context.Context, p *models.SpotPhoto) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repo) FindPhotoByID(ctx context.Context, id string) (*models.SpotPhoto, error) {
	var p models.SpotPhoto
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) RejectPhoto(ctx context.Context, id, reason string) error {
	return r.DB.WithContext(ctx).Model(&models.SpotPhoto{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"moderation_status": models.ModerationRejected,
			"moderation_reason": reason,
		}).Error
}

// ApprovePhoto 对象已经拷贝到位后再改文档；失败时文档保持原样，可重审
func (r *Repo) ApprovePhoto(ctx context.Context, id, storagePath, thumbPath string) error {
	return r.DB.WithContext(ctx).Model(&models.SpotPhoto{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"storage_path":      storagePath,
			"thumb_path":        thumbPath,
			"moderation_status": models.ModerationApproved,
			"moderation_reason": nil,
		}).Error
}

func (r *Repo) ListPendingPhotos(ctx context.Context, limit int) ([]models.SpotPhoto, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var ps []models.SpotPhoto
	err := r.DB.WithContext(ctx).
		Where("moderation_status = ?", models.ModerationPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&ps).Error
	return ps, err
}
