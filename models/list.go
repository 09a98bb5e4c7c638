package models

import "time"

const (
	ListTable       = "pp_lists"
	ListMemberTable = "pp_list_members"
)

// Member / invite roles.
const (
	RoleView = "view"
	RoleEdit = "edit"
)

// List 协作清单；owner 不出现在 members 里（隐含全权限）
type List struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   string    `gorm:"type:uuid;index;not null" json:"ownerId"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListMember struct {
	ListID    string    `gorm:"type:uuid;primaryKey" json:"listId"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"userId"`
	Role      string    `gorm:"size:10;not null" json:"role"` // view|edit
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (List) TableName() string       { return ListTable }
func (ListMember) TableName() string { return ListMemberTable }
