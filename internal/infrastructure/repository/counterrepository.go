package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// CounterRepository implements sequence.Allocator on the counters table.
type CounterRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCounterRepository(db *gorm.DB, logger logger.Interface) *CounterRepository {
	return &CounterRepository{db: db, logger: logger}
}

// Next increments and reads the counter inside one transaction. When ctx
// carries a transaction the increment joins it and rolls back with it.
func (r *CounterRepository) Next(ctx context.Context, counter string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var next int64
	err := tx.Transaction(func(tx *gorm.DB) error {
		seed := &models.CounterModel{Name: counter, Next: 0}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
			return fmt.Errorf("failed to seed counter: %w", err)
		}

		result := tx.Model(&models.CounterModel{}).
			Where("name = ?", counter).
			Update("next", gorm.Expr("next + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment counter: %w", result.Error)
		}

		var row models.CounterModel
		if err := tx.Where("name = ?", counter).First(&row).Error; err != nil {
			return fmt.Errorf("failed to read counter: %w", err)
		}
		next = row.Next
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to allocate sequence value", "counter", counter, "error", err)
		return 0, err
	}
	if next <= 0 {
		return 0, sequence.ErrInvalidUID
	}
	return next, nil
}
