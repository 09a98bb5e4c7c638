package models

import "time"

const PhotoTable = "pp_spot_photos"

// Moderation states.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// SpotPhoto 用户上传的照片；审核通过前 storage_path 指向 tmp/ 下的临时对象
type SpotPhoto struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	SpotID      string  `gorm:"type:uuid;index;not null" json:"spotId"`
	UploadedBy  string  `gorm:"type:uuid;index" json:"uploadedBy"`
	StoragePath string  `gorm:"size:512;not null" json:"storagePath"`
	ThumbPath   *string `gorm:"size:512" json:"thumbPath,omitempty"`

	ModerationStatus string  `gorm:"size:10;not null;default:'pending';index" json:"moderationStatus"`
	ModerationReason *string `gorm:"size:255" json:"moderationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SpotPhoto) TableName() string { return PhotoTable }
