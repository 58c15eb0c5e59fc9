package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

type ArticleRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewArticleRepository(db *gorm.DB, logger logger.Interface) *ArticleRepository {
	return &ArticleRepository{db: db, logger: logger}
}

func (r *ArticleRepository) Create(ctx context.Context, a *article.Article) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := mappers.ArticleToModel(a)
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create article", "uid", a.UID(), "error", err)
			return fmt.Errorf("failed to create article: %w", err)
		}
		a.SetID(model.ID)
		return r.appendHistory(tx, a)
	})
}

func (r *ArticleRepository) Update(ctx context.Context, a *article.Article) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := mappers.ArticleToModel(a)
		err := tx.Model(&models.ArticleModel{}).Where("id = ?", a.ID()).Updates(map[string]interface{}{
			"category_id":      model.CategoryID,
			"subject":          model.Subject,
			"content":          model.Content,
			"html":             model.HTML,
			"excerpt":          model.Excerpt,
			"tags":             model.Tags,
			"permalink":        model.Permalink,
			"status":           model.Status,
			"deleted":          model.Deleted,
			"comments_enabled": model.CommentsEnabled,
			"subscribers":      model.Subscribers,
			"likers":           model.Likers,
			"like_count":       model.LikeCount,
			"modified_date":    model.ModifiedDate,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update article: %w", err)
		}
		return r.appendHistory(tx, a)
	})
}

// appendHistory inserts entries that have no id yet.
func (r *ArticleRepository) appendHistory(tx *gorm.DB, a *article.Article) error {
	for _, h := range a.History() {
		if h.ID != 0 {
			continue
		}
		row := &models.ArticleHistoryModel{
			ArticleID:   a.ID(),
			Action:      h.Action,
			Description: h.Description,
			OwnerID:     h.OwnerID,
			Date:        h.Date,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to append article history: %w", err)
		}
		h.ID = row.ID
	}
	return nil
}

func (r *ArticleRepository) GetByUID(ctx context.Context, uid int64) (*article.Article, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ArticleModel
	if err := tx.Where("uid = ?", uid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	var history []models.ArticleHistoryModel
	if err := tx.Where("article_id = ?", model.ID).Order("id ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load article history: %w", err)
	}
	return mappers.ArticleToDomain(&model, history), nil
}

// List skips deleted articles and omits history.
func (r *ArticleRepository) List(ctx context.Context, filter article.Filter) ([]*article.Article, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{}).Scopes(db.NotDeleted())
	if filter.OrgID != 0 {
		q = q.Where("org_id = ?", filter.OrgID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	page := query.NewPageFilter(filter.Page, filter.Limit)
	var list []models.ArticleModel
	if err := q.Order("uid DESC").Scopes(db.Paginate(page.Page, page.Limit)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	out := make([]*article.Article, 0, len(list))
	for i := range list {
		out = append(out, mappers.ArticleToDomain(&list[i], nil))
	}
	return out, total, nil
}

type ArticleCategoryRepository struct {
	db *gorm.DB
}

func NewArticleCategoryRepository(db *gorm.DB) *ArticleCategoryRepository {
	return &ArticleCategoryRepository{db: db}
}

func (r *ArticleCategoryRepository) Create(ctx context.Context, c *article.Category) error {
	model := &models.ArticleCategoryModel{
		Name:      c.Name(),
		OrgID:     c.OrgID(),
		CreatedBy: c.CreatedBy(),
		IsDefault: c.IsDefault(),
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create article category: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

func (r *ArticleCategoryRepository) GetByID(ctx context.Context, id uint) (*article.Category, error) {
	var model models.ArticleCategoryModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, article.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get article category: %w", err)
	}
	return mappers.CategoryToDomain(&model), nil
}

func (r *ArticleCategoryRepository) ListByOrg(ctx context.Context, orgID uint) ([]*article.Category, error) {
	var list []models.ArticleCategoryModel
	if err := db.GetTxFromContext(ctx, r.db).Where("org_id = ?", orgID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list article categories: %w", err)
	}
	out := make([]*article.Category, 0, len(list))
	for i := range list {
		out = append(out, mappers.CategoryToDomain(&list[i]))
	}
	return out, nil
}
