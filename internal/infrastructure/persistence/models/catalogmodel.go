package models

type TicketTypeModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

func (TicketTypeModel) TableName() string {
	return "ticket_types"
}

type TagModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null"`
	Normalized string `gorm:"uniqueIndex;size:100;not null"`
}

func (TagModel) TableName() string {
	return "tags"
}

// SystemModel names are unique within an organization.
type SystemModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex:idx_org_system;size:100;not null"`
	Kind        string `gorm:"column:type;size:64"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
	OrgID       uint   `gorm:"uniqueIndex:idx_org_system;not null;index"`
	Created     int64  `gorm:"column:created;not null"`
	Edited      *int64 `gorm:"column:edited"`
}

func (SystemModel) TableName() string {
	return "systems"
}
