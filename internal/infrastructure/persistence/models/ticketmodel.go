package models

import (
	"gorm.io/datatypes"
)

// TicketModel stores timestamps as unix milliseconds.
type TicketModel struct {
	ID          uint                      `gorm:"primaryKey"`
	UID         int64                     `gorm:"column:uid;uniqueIndex;not null"`
	OwnerID     uint                      `gorm:"not null;index"`
	AssigneeID  *uint                     `gorm:"index"`
	GroupID     uint                      `gorm:"not null;index"`
	TypeID      uint                      `gorm:"not null;index"`
	OrgID       *uint                     `gorm:"index"`
	SystemID    *uint                     `gorm:"index"`
	Priority    int                       `gorm:"not null;default:1"`
	Status      int                       `gorm:"not null;default:0;index"`
	Subject     string                    `gorm:"size:255;not null"`
	Issue       string                    `gorm:"type:text;not null"`
	Date        int64                     `gorm:"column:date;not null;index"`
	Updated     *int64                    `gorm:"column:updated"`
	ClosedDate  *int64                    `gorm:"column:closed_date"`
	Deleted     bool                      `gorm:"not null;default:false;index"`
	Subscribers datatypes.JSONSlice[uint] `gorm:"type:json"`
	Version     int                       `gorm:"not null;default:1"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// CommentModel holds both comments and notes, told apart by Kind.
type CommentModel struct {
	ID       string `gorm:"primaryKey;size:32"`
	TicketID uint   `gorm:"not null;index"`
	Kind     string `gorm:"size:16;not null;index"`
	OwnerID  uint   `gorm:"not null;index"`
	Body     string `gorm:"type:text;not null"`
	Date     int64  `gorm:"column:date;not null"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

type AttachmentModel struct {
	ID       string `gorm:"primaryKey;size:32"`
	TicketID uint   `gorm:"not null;index"`
	OwnerID  uint   `gorm:"not null"`
	Name     string `gorm:"size:255;not null"`
	Path     string `gorm:"size:512;not null"`
	MimeType string `gorm:"size:128"`
	Date     int64  `gorm:"column:date;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}

// HistoryModel rows are only ever inserted.
type HistoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	Action      string `gorm:"size:64;not null"`
	Description string `gorm:"size:512"`
	OwnerID     uint   `gorm:"not null"`
	Date        int64  `gorm:"column:date;not null"`
}

func (HistoryModel) TableName() string {
	return "ticket_history"
}

type TicketTagModel struct {
	TicketID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey;index"`
}

func (TicketTagModel) TableName() string {
	return "ticket_tags"
}
