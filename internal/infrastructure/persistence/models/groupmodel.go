package models

import (
	"gorm.io/datatypes"
)

type GroupModel struct {
	ID         uint                      `gorm:"primaryKey"`
	Name       string                    `gorm:"uniqueIndex;size:100;not null"`
	Members    datatypes.JSONSlice[uint] `gorm:"type:json"`
	SendMailTo datatypes.JSONSlice[uint] `gorm:"type:json"`
	Public     bool                      `gorm:"not null;default:false;index"`
	OrgID      *uint                     `gorm:"index"`
}

func (GroupModel) TableName() string {
	return "ticket_groups"
}

// GroupMemberModel mirrors GroupModel.Members so membership can be queried
// without scanning JSON.
type GroupMemberModel struct {
	GroupID uint `gorm:"primaryKey"`
	UserID  uint `gorm:"primaryKey;index"`
}

func (GroupMemberModel) TableName() string {
	return "group_members"
}

type OrganizationModel struct {
	ID        uint                      `gorm:"primaryKey"`
	Name      string                    `gorm:"size:255;not null"`
	ShortName string                    `gorm:"uniqueIndex;size:64;not null"`
	Members   datatypes.JSONSlice[uint] `gorm:"type:json"`
}

func (OrganizationModel) TableName() string {
	return "organizations"
}
