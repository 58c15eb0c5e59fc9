package models

import (
	"time"

	"gorm.io/datatypes"
)

type ArticleModel struct {
	ID              uint                        `gorm:"primaryKey"`
	UID             int64                       `gorm:"column:uid;uniqueIndex;not null"`
	AuthorID        uint                        `gorm:"not null;index"`
	OrgID           uint                        `gorm:"not null;index"`
	CategoryID      uint                        `gorm:"index"`
	Subject         string                      `gorm:"size:255;not null"`
	Content         string                      `gorm:"type:text;not null"`
	HTML            string                      `gorm:"column:html;type:text"`
	Excerpt         string                      `gorm:"size:512"`
	Tags            datatypes.JSONSlice[string] `gorm:"type:json"`
	Permalink       string                      `gorm:"uniqueIndex;size:300;not null"`
	Status          string                      `gorm:"size:16;not null;index"`
	Deleted         bool                        `gorm:"not null;default:false;index"`
	CommentsEnabled bool                        `gorm:"not null;default:true"`
	Subscribers     datatypes.JSONSlice[uint]   `gorm:"type:json"`
	Likers          datatypes.JSONSlice[uint]   `gorm:"type:json"`
	LikeCount       int                         `gorm:"not null;default:0"`
	Date            time.Time                   `gorm:"column:date;not null"`
	ModifiedDate    time.Time                   `gorm:"not null"`
}

func (ArticleModel) TableName() string {
	return "articles"
}

type ArticleHistoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	ArticleID   uint      `gorm:"not null;index"`
	Action      string    `gorm:"size:64;not null"`
	Description string    `gorm:"size:512"`
	OwnerID     uint      `gorm:"not null"`
	Date        time.Time `gorm:"column:date;not null"`
}

func (ArticleHistoryModel) TableName() string {
	return "article_history"
}

type ArticleCategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_org_category"`
	OrgID     uint   `gorm:"not null;uniqueIndex:idx_org_category"`
	CreatedBy uint   `gorm:"not null"`
	IsDefault bool   `gorm:"not null;default:false"`
}

func (ArticleCategoryModel) TableName() string {
	return "article_categories"
}
