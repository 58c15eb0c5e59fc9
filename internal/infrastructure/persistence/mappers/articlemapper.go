package mappers

import (
	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func ArticleToModel(a *article.Article) *models.ArticleModel {
	return &models.ArticleModel{
		ID:              a.ID(),
		UID:             a.UID(),
		AuthorID:        a.AuthorID(),
		OrgID:           a.OrgID(),
		CategoryID:      a.CategoryID(),
		Subject:         a.Subject(),
		Content:         a.Content(),
		HTML:            a.HTML(),
		Excerpt:         a.Excerpt(),
		Tags:            a.Tags(),
		Permalink:       a.Permalink(),
		Status:          string(a.Status()),
		Deleted:         a.IsDeleted(),
		CommentsEnabled: a.CommentsEnabled(),
		Subscribers:     a.Subscribers(),
		Likers:          a.Likers(),
		LikeCount:       a.LikeCount(),
		Date:            a.Date(),
		ModifiedDate:    a.ModifiedDate(),
	}
}

func ArticleToDomain(model *models.ArticleModel, history []models.ArticleHistoryModel) *article.Article {
	entries := make([]*article.HistoryEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, &article.HistoryEntry{
			ID:          h.ID,
			Action:      h.Action,
			Description: h.Description,
			OwnerID:     h.OwnerID,
			Date:        h.Date.UTC(),
		})
	}
	return article.ReconstructArticle(
		model.ID,
		model.UID,
		model.AuthorID, model.OrgID, model.CategoryID,
		model.Subject, model.Content, model.HTML, model.Excerpt,
		model.Tags,
		model.Permalink,
		article.Status(model.Status),
		model.Deleted, model.CommentsEnabled,
		model.Subscribers, model.Likers,
		entries,
		model.Date.UTC(), model.ModifiedDate.UTC(),
	)
}

func CategoryToDomain(model *models.ArticleCategoryModel) *article.Category {
	return article.ReconstructCategory(model.ID, model.Name, model.OrgID, model.CreatedBy, model.IsDefault)
}
