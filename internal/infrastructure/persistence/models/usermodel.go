package models

import (
	"time"
)

// UserModel is the read model for helpdesk accounts.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Username  string `gorm:"uniqueIndex;not null;size:100"`
	Fullname  string `gorm:"not null;size:255"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Role      string `gorm:"not null;size:32;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}
