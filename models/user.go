package models

import "time"

// User mirrors the identity-provider account. The provider owns credentials;
// we only keep the profile plus the moderation claims.
type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	DisplayName string `gorm:"size:255;not null" json:"displayName"`

	IsAdmin bool `gorm:"not null;default:false" json:"isAdmin"`
	IsMod   bool `gorm:"not null;default:false" json:"isMod"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "pp_users" }

// Claims 返回完整的 claim 映射（目前只认 admin / mod 两个）
func (u *User) Claims() map[string]bool {
	return map[string]bool{"admin": u.IsAdmin, "mod": u.IsMod}
}
