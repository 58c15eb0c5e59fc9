package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

type TicketTypeRepository struct {
	db *gorm.DB
}

func NewTicketTypeRepository(db *gorm.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: db}
}

func (r *TicketTypeRepository) Create(ctx context.Context, t *tickettype.TicketType) error {
	model := &models.TicketTypeModel{Name: t.Name()}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket type: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

func (r *TicketTypeRepository) Update(ctx context.Context, t *tickettype.TicketType) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketTypeModel{}).
		Where("id = ?", t.ID()).
		Update("name", t.Name()).Error
	if err != nil {
		return fmt.Errorf("failed to update ticket type: %w", err)
	}
	return nil
}

func (r *TicketTypeRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.TicketTypeModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tickettype.ErrTypeNotFound
	}
	return nil
}

func (r *TicketTypeRepository) GetByID(ctx context.Context, id uint) (*tickettype.TicketType, error) {
	var model models.TicketTypeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tickettype.ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}
	return mappers.TicketTypeToDomain(&model), nil
}

func (r *TicketTypeRepository) GetByIDs(ctx context.Context, ids []uint) ([]*tickettype.TicketType, error) {
	if len(ids) == 0 {
		return []*tickettype.TicketType{}, nil
	}
	var list []*models.TicketTypeModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get ticket types: %w", err)
	}
	return mappers.TicketTypesToDomain(list), nil
}

func (r *TicketTypeRepository) List(ctx context.Context) ([]*tickettype.TicketType, error) {
	var list []*models.TicketTypeModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	return mappers.TicketTypesToDomain(list), nil
}

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) error {
	model := &models.TagModel{Name: t.Name(), Normalized: t.Normalized()}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return tag.ErrTagExists
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

func (r *TagRepository) GetByIDs(ctx context.Context, ids []uint) ([]*tag.Tag, error) {
	if len(ids) == 0 {
		return []*tag.Tag{}, nil
	}
	var list []*models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return mappers.TagsToDomain(list), nil
}

func (r *TagRepository) GetByNormalized(ctx context.Context, normalized string) (*tag.Tag, error) {
	var model models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("normalized = ?", normalized).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return mappers.TagToDomain(&model), nil
}

func (r *TagRepository) List(ctx context.Context) ([]*tag.Tag, error) {
	var list []*models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return mappers.TagsToDomain(list), nil
}
