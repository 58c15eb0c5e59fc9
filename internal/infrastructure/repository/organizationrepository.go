package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// OrganizationRepository implements organization.Repository.
type OrganizationRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewOrganizationRepository(db *gorm.DB, logger logger.Interface) *OrganizationRepository {
	return &OrganizationRepository{db: db, logger: logger}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) error {
	model := mappers.OrganizationToModel(o)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create organization", "short_name", o.ShortName(), "error", err)
		return fmt.Errorf("failed to create organization: %w", err)
	}
	o.SetID(model.ID)
	return nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o *organization.Organization) error {
	model := mappers.OrganizationToModel(o)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrganizationModel{}).
		Where("id = ?", o.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"short_name": model.ShortName,
			"members":    model.Members,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, organization.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return mappers.OrganizationToDomain(&model), nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	var list []*models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	out := make([]*organization.Organization, 0, len(list))
	for _, m := range list {
		out = append(out, mappers.OrganizationToDomain(m))
	}
	return out, nil
}
