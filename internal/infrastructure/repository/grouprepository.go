package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// GroupRepository keeps group_members in step with the members column.
type GroupRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewGroupRepository(db *gorm.DB, logger logger.Interface) *GroupRepository {
	return &GroupRepository{db: db, logger: logger}
}

func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := mappers.GroupToModel(g)
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create group", "name", g.Name(), "error", err)
			return fmt.Errorf("failed to create group: %w", err)
		}
		g.SetID(model.ID)
		return r.syncMembers(tx, g)
	})
}

func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := mappers.GroupToModel(g)
		err := tx.Model(&models.GroupModel{}).Where("id = ?", g.ID()).Updates(map[string]interface{}{
			"name":         model.Name,
			"members":      model.Members,
			"send_mail_to": model.SendMailTo,
			"public":       model.Public,
			"org_id":       model.OrgID,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		return r.syncMembers(tx, g)
	})
}

func (r *GroupRepository) syncMembers(tx *gorm.DB, g *group.Group) error {
	if err := tx.Where("group_id = ?", g.ID()).Delete(&models.GroupMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	members := g.Members()
	if len(members) == 0 {
		return nil
	}
	rows := make([]models.GroupMemberModel, 0, len(members))
	for _, id := range members {
		rows = append(rows, models.GroupMemberModel{GroupID: g.ID(), UserID: id})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save group members: %w", err)
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMemberModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete group members: %w", err)
		}
		result := tx.Delete(&models.GroupModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete group: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return group.ErrGroupNotFound
		}
		return nil
	})
}

func (r *GroupRepository) GetByID(ctx context.Context, id uint) (*group.Group, error) {
	var model models.GroupModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return mappers.GroupToDomain(&model), nil
}

func (r *GroupRepository) GetByIDs(ctx context.Context, ids []uint) ([]*group.Group, error) {
	if len(ids) == 0 {
		return []*group.Group{}, nil
	}
	var list []*models.GroupModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}
	return mappers.GroupsToDomain(list), nil
}

func (r *GroupRepository) List(ctx context.Context) ([]*group.Group, error) {
	var list []*models.GroupModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return mappers.GroupsToDomain(list), nil
}

func (r *GroupRepository) MemberGroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GroupMemberModel{}).
		Where("user_id = ?", userID).
		Order("group_id ASC").
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}
	return ids, nil
}

func (r *GroupRepository) PublicGroupIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GroupModel{}).
		Where("public = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list public groups: %w", err)
	}
	return ids, nil
}
