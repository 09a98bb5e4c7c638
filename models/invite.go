package models

import "time"

const (
	InviteTable        = "pp_list_invites"
	InviteCounterTable = "pp_list_invite_counters"
)

// ListInvite 多次可用的邀请令牌；uses_remaining 到 0 即永久作废
type ListInvite struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	ListID        string     `gorm:"type:uuid;index;not null" json:"listId"`
	CreatedBy     string     `gorm:"type:uuid;not null" json:"createdBy"`
	Role          string     `gorm:"size:10;not null" json:"role"` // view|edit
	Token         string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt     time.Time  `gorm:"index;not null" json:"expiresAt"`
	UsesRemaining int        `gorm:"not null;default:5" json:"usesRemaining"`
	InvalidatedAt *time.Time `json:"invalidatedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// InviteCounter 每个清单每个 UTC 日期一行，封顶 20
type InviteCounter struct {
	ListID    string    `gorm:"type:uuid;primaryKey" json:"listId"`
	Day       string    `gorm:"size:10;primaryKey" json:"day"` // 2006-01-02 (UTC)
	Count     int       `gorm:"not null;default:0" json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ListInvite) TableName() string    { return InviteTable }
func (InviteCounter) TableName() string { return InviteCounterTable }
