package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type SettingRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSettingRepository(db *gorm.DB, logger logger.Interface) *SettingRepository {
	return &SettingRepository{db: db, logger: logger}
}

func (r *SettingRepository) Get(ctx context.Context, category, name string) (*setting.Setting, error) {
	var model models.SettingModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ? AND name = ?", category, name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting %s:%s: %w", category, name, err)
	}
	return mappers.SettingToDomain(&model), nil
}

func (r *SettingRepository) ListByCategory(ctx context.Context, category string) ([]*setting.Setting, error) {
	var list []models.SettingModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("category = ?", category).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	out := make([]*setting.Setting, len(list))
	for i := range list {
		out[i] = mappers.SettingToDomain(&list[i])
	}
	return out, nil
}

// Save upserts on (category, name).
func (r *SettingRepository) Save(ctx context.Context, s *setting.Setting) error {
	model := mappers.SettingToModel(s)
	model.ID = 0

	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "value", "description", "updated_by", "version", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to save setting", "path", s.Path(), "error", err)
		return fmt.Errorf("failed to save setting: %w", err)
	}

	if s.ID() == 0 {
		s.SetID(model.ID)
	}
	return nil
}
