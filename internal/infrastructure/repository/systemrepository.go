package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// SystemRepository implements system.Repository.
type SystemRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSystemRepository(db *gorm.DB, logger logger.Interface) *SystemRepository {
	return &SystemRepository{db: db, logger: logger}
}

func (r *SystemRepository) Create(ctx context.Context, s *system.System) error {
	model := mappers.SystemToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return system.ErrSystemExists
		}
		r.logger.Errorw("failed to create system", "name", s.Name(), "org_id", s.OrgID(), "error", err)
		return fmt.Errorf("failed to create system: %w", err)
	}
	s.SetID(model.ID)
	return nil
}

func (r *SystemRepository) Update(ctx context.Context, s *system.System) error {
	model := mappers.SystemToModel(s)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SystemModel{}).
		Where("id = ?", s.ID()).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"type":        model.Kind,
			"description": model.Description,
			"active":      model.Active,
			"edited":      model.Edited,
		}).Error
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return system.ErrSystemExists
		}
		return fmt.Errorf("failed to update system: %w", err)
	}
	return nil
}

func (r *SystemRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var live int64
		err := tx.Model(&models.TicketModel{}).
			Where("system_id = ? AND deleted = ?", id, false).
			Count(&live).Error
		if err != nil {
			return fmt.Errorf("failed to count system tickets: %w", err)
		}
		if live > 0 {
			return system.ErrSystemInUse
		}

		result := tx.Delete(&models.SystemModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete system: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return system.ErrSystemNotFound
		}
		return nil
	})
}

func (r *SystemRepository) GetByID(ctx context.Context, id uint) (*system.System, error) {
	var model models.SystemModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, system.ErrSystemNotFound
		}
		return nil, fmt.Errorf("failed to get system: %w", err)
	}
	return mappers.SystemToDomain(&model), nil
}

func (r *SystemRepository) List(ctx context.Context) ([]*system.System, error) {
	var list []*models.SystemModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list systems: %w", err)
	}
	return mappers.SystemsToDomain(list), nil
}

func (r *SystemRepository) ListByOrg(ctx context.Context, orgID uint) ([]*system.System, error) {
	var list []*models.SystemModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("org_id = ?", orgID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organization systems: %w", err)
	}
	return mappers.SystemsToDomain(list), nil
}
