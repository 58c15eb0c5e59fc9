package models

import "time"

type SettingModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Category    string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_settings_path"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_settings_path"`
	Kind        string    `gorm:"type:varchar(20);not null;default:'string'"`
	Value       string    `gorm:"type:text"`
	Description string    `gorm:"type:varchar(500)"`
	UpdatedBy   uint      `gorm:"index"`
	Version     int       `gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (SettingModel) TableName() string {
	return "settings"
}
