// Package usecases implements the knowledge-base operations: articles and
// their categories.
package usecases

import (
	"errors"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

type HistoryView struct {
	Action      string    `json:"action"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner"`
	Date        time.Time `json:"date"`
}

type ArticleView struct {
	ID              uint          `json:"id"`
	UID             int64         `json:"uid"`
	AuthorID        uint          `json:"author"`
	OrgID           uint          `json:"organization"`
	CategoryID      uint          `json:"category,omitempty"`
	Subject         string        `json:"subject"`
	Content         string        `json:"content"`
	HTML            string        `json:"html"`
	Excerpt         string        `json:"excerpt"`
	Tags            []string      `json:"tags"`
	Permalink       string        `json:"permalink"`
	Status          string        `json:"status"`
	CommentsEnabled bool          `json:"commentsEnabled"`
	Subscribers     []uint        `json:"subscribers"`
	LikeCount       int           `json:"likeCount"`
	Liked           bool          `json:"liked"`
	History         []HistoryView `json:"history,omitempty"`
	Date            time.Time     `json:"date"`
	ModifiedDate    time.Time     `json:"modifiedDate"`
}

type ArticleList struct {
	Items []*ArticleView `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type CategoryView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	OrgID     uint   `json:"organization"`
	IsDefault bool   `json:"isDefault"`
}

// toView renders a for viewerID. History is only included for editors.
func toView(a *article.Article, viewerID uint, withHistory bool) *ArticleView {
	v := &ArticleView{
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
		CommentsEnabled: a.CommentsEnabled(),
		Subscribers:     a.Subscribers(),
		LikeCount:       a.LikeCount(),
		Date:            a.Date(),
		ModifiedDate:    a.ModifiedDate(),
	}
	for _, id := range a.Likers() {
		if id == viewerID {
			v.Liked = true
			break
		}
	}
	if withHistory {
		for _, h := range a.History() {
			v.History = append(v.History, HistoryView{
				Action:      h.Action,
				Description: h.Description,
				OwnerID:     h.OwnerID,
				Date:        h.Date,
			})
		}
	}
	return v
}

func toCategoryView(c *article.Category) CategoryView {
	return CategoryView{ID: c.ID(), Name: c.Name(), OrgID: c.OrgID(), IsDefault: c.IsDefault()}
}

func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, article.ErrArticleNotFound):
		return apperrors.NewNotFoundError("Article not found")
	case errors.Is(err, article.ErrCategoryNotFound):
		return apperrors.NewValidationError("Invalid category")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		return apperrors.NewValidationError("Invalid organization")
	case errors.Is(err, article.ErrEmptySubject):
		return apperrors.NewValidationError("Subject is required")
	case errors.Is(err, article.ErrEmptyContent):
		return apperrors.NewValidationError("Content is required")
	case errors.Is(err, sequence.ErrInvalidUID):
		return apperrors.NewInternalError("Invalid UID")
	}
	return err
}
