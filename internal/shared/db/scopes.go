package db

import (
	"gorm.io/gorm"
)

// NotDeleted filters out rows whose boolean deleted flag is set.
//
//	tx.Model(&models.TicketModel{}).Scopes(db.NotDeleted()).Count(&n)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted = ?", false)
	}
}

// InGroups restricts rows to the given group ids. An empty set matches nothing.
func InGroups(groupIDs []uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(groupIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("group_id IN ?", groupIDs)
	}
}

// Paginate applies a 0-based page of the given size. A negative limit
// disables pagination.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit < 0 {
			return db
		}
		if page < 0 {
			page = 0
		}
		return db.Offset(page * limit).Limit(limit)
	}
}
