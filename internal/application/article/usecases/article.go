package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
	"github.com/orris-inc/helpdesk/internal/shared/markdown"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type CreateArticleCommand struct {
	Actor      common.Actor
	OrgID      uint     `json:"organization" validate:"required"`
	CategoryID uint     `json:"category"`
	Subject    string   `json:"subject" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	Tags       []string `json:"tags"`
}

type UpdateArticleCommand struct {
	Actor           common.Actor
	UID             int64
	Subject         string   `json:"subject" validate:"required,max=255"`
	Content         string   `json:"content" validate:"required"`
	Tags            []string `json:"tags"`
	CategoryID      uint     `json:"category"`
	CommentsEnabled bool     `json:"commentsEnabled"`
}

type ListArticlesQuery struct {
	Actor      common.Actor
	OrgID      uint
	CategoryID uint
	Status     string
	Page       int
	Limit      int
}

// ArticleAction names a toggle applied to a single article.
type ArticleAction string

const (
	ActionPublish     ArticleAction = "publish"
	ActionUnpublish   ArticleAction = "unpublish"
	ActionLike        ArticleAction = "like"
	ActionUnlike      ArticleAction = "unlike"
	ActionSubscribe   ArticleAction = "subscribe"
	ActionUnsubscribe ArticleAction = "unsubscribe"
	ActionDelete      ArticleAction = "delete"
)

type ArticleUseCase struct {
	txm        db.Transactor
	seq        sequence.Allocator
	repo       article.Repository
	categories article.CategoryRepository
	orgs       organization.Repository
	perms      common.PermissionChecker
	markdown   markdown.Renderer
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewArticleUseCase(
	txm db.Transactor,
	seq sequence.Allocator,
	repo article.Repository,
	categories article.CategoryRepository,
	orgs organization.Repository,
	perms common.PermissionChecker,
	md markdown.Renderer,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ArticleUseCase {
	return &ArticleUseCase{
		txm:        txm,
		seq:        seq,
		repo:       repo,
		categories: categories,
		orgs:       orgs,
		perms:      perms,
		markdown:   md,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ArticleUseCase) isEditor(actor common.Actor) bool {
	return actor.Can(uc.perms, permission.CapArticlesEdit)
}

// Create stores a draft. Without an explicit category the organization's
// default category is used, when it has one.
func (uc *ArticleUseCase) Create(ctx context.Context, cmd CreateArticleCommand) (*ArticleView, error) {
	uc.logger.Infow("executing create article use case", "author_id", cmd.Actor.ID, "org_id", cmd.OrgID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if !uc.isEditor(cmd.Actor) {
		return nil, apperrors.NewForbiddenError("Not allowed to write articles")
	}
	if _, err := uc.orgs.GetByID(ctx, cmd.OrgID); err != nil {
		return nil, toAppError(err)
	}
	categoryID, err := uc.resolveCategory(ctx, cmd.OrgID, cmd.CategoryID)
	if err != nil {
		return nil, err
	}
	html, err := uc.markdown.Render(cmd.Content)
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to render content", err.Error())
	}

	var created *article.Article
	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		uid, err := uc.seq.Next(ctx, sequence.CounterArticles)
		if err != nil {
			return err
		}
		if uid <= 0 {
			return sequence.ErrInvalidUID
		}
		a, err := article.NewArticle(uid, cmd.Actor.ID, cmd.OrgID, categoryID, cmd.Subject, cmd.Content, html, cmd.Tags)
		if err != nil {
			return err
		}
		if err := uc.repo.Create(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create article", "author_id", cmd.Actor.ID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("article created", "article_id", created.ID(), "uid", created.UID())
	return toView(created, cmd.Actor.ID, true), nil
}

// Get hides drafts and deleted articles from readers without articles:edit.
func (uc *ArticleUseCase) Get(ctx context.Context, actor common.Actor, uid int64) (*ArticleView, error) {
	if !actor.Can(uc.perms, permission.CapArticlesView) {
		return nil, apperrors.NewForbiddenError("Not allowed to view articles")
	}
	a, err := uc.load(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	return toView(a, actor.ID, uc.isEditor(actor)), nil
}

func (uc *ArticleUseCase) List(ctx context.Context, q ListArticlesQuery) (*ArticleList, error) {
	if !q.Actor.Can(uc.perms, permission.CapArticlesView) {
		return nil, apperrors.NewForbiddenError("Not allowed to view articles")
	}

	filter := article.Filter{
		OrgID:      q.OrgID,
		CategoryID: q.CategoryID,
		PageFilter: query.NewPageFilter(q.Page, q.Limit),
	}
	if q.Status != "" {
		status := article.Status(q.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("Invalid article status", q.Status)
		}
		filter.Status = status
	}
	if !uc.isEditor(q.Actor) {
		filter.Status = article.StatusPublished
	}

	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list articles", "org_id", q.OrgID, "error", err)
		return nil, err
	}

	out := &ArticleList{
		Items: make([]*ArticleView, 0, len(items)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, a := range items {
		out.Items = append(out.Items, toView(a, q.Actor.ID, false))
	}
	return out, nil
}

func (uc *ArticleUseCase) Update(ctx context.Context, cmd UpdateArticleCommand) (*ArticleView, error) {
	uc.logger.Infow("executing update article use case", "uid", cmd.UID, "user_id", cmd.Actor.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if !uc.isEditor(cmd.Actor) {
		return nil, apperrors.NewForbiddenError("Not allowed to write articles")
	}
	a, err := uc.load(ctx, cmd.Actor, cmd.UID)
	if err != nil {
		return nil, err
	}
	categoryID := a.CategoryID()
	if cmd.CategoryID != 0 && cmd.CategoryID != categoryID {
		if categoryID, err = uc.resolveCategory(ctx, a.OrgID(), cmd.CategoryID); err != nil {
			return nil, err
		}
	}
	html, err := uc.markdown.Render(cmd.Content)
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to render content", err.Error())
	}

	if err := a.Update(cmd.Actor.ID, cmd.Subject, cmd.Content, html, cmd.Tags, categoryID, cmd.CommentsEnabled); err != nil {
		return nil, toAppError(err)
	}
	if err := uc.repo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update article", "uid", cmd.UID, "error", err)
		return nil, err
	}
	return toView(a, cmd.Actor.ID, true), nil
}

// Apply runs a publish, like, subscribe or delete toggle. Like and subscribe
// changes that alter nothing are not saved.
func (uc *ArticleUseCase) Apply(ctx context.Context, actor common.Actor, uid int64, action ArticleAction) (*ArticleView, error) {
	uc.logger.Infow("executing article action use case", "uid", uid, "action", action, "user_id", actor.ID)

	needsEdit := action == ActionPublish || action == ActionUnpublish || action == ActionDelete
	if needsEdit && !uc.isEditor(actor) {
		return nil, apperrors.NewForbiddenError("Not allowed to write articles")
	}
	if !needsEdit && !actor.Can(uc.perms, permission.CapArticlesView) {
		return nil, apperrors.NewForbiddenError("Not allowed to view articles")
	}

	a, err := uc.load(ctx, actor, uid)
	if err != nil {
		return nil, err
	}

	changed := true
	switch action {
	case ActionPublish:
		if a.Status() == article.StatusPublished {
			return toView(a, actor.ID, true), nil
		}
		a.Publish(actor.ID)
	case ActionUnpublish:
		if a.Status() == article.StatusDraft {
			return toView(a, actor.ID, true), nil
		}
		a.Unpublish(actor.ID)
	case ActionDelete:
		a.SoftDelete(actor.ID)
	case ActionLike:
		changed = a.Like(actor.ID)
	case ActionUnlike:
		changed = a.Unlike(actor.ID)
	case ActionSubscribe:
		changed = a.Subscribe(actor.ID)
	case ActionUnsubscribe:
		changed = a.Unsubscribe(actor.ID)
	default:
		return nil, apperrors.NewValidationError("Invalid article action", string(action))
	}

	if changed {
		if err := uc.repo.Update(ctx, a); err != nil {
			uc.logger.Errorw("failed to save article", "uid", uid, "action", action, "error", err)
			return nil, err
		}
	}
	if action == ActionPublish && uc.publisher != nil {
		if err := uc.publisher.Publish(article.NewEvent(article.EventPublished, a, actor.ID)); err != nil {
			uc.logger.Warnw("failed to publish event", "event_type", article.EventPublished, "uid", uid, "error", err)
		}
	}
	return toView(a, actor.ID, uc.isEditor(actor)), nil
}

func (uc *ArticleUseCase) load(ctx context.Context, actor common.Actor, uid int64) (*article.Article, error) {
	a, err := uc.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, toAppError(err)
	}
	if a.IsDeleted() || (a.Status() != article.StatusPublished && !uc.isEditor(actor)) {
		return nil, apperrors.NewNotFoundError("Article not found")
	}
	return a, nil
}

func (uc *ArticleUseCase) resolveCategory(ctx context.Context, orgID, categoryID uint) (uint, error) {
	if categoryID != 0 {
		c, err := uc.categories.GetByID(ctx, categoryID)
		if err != nil {
			return 0, toAppError(err)
		}
		if c.OrgID() != orgID {
			return 0, apperrors.NewValidationError("Invalid category")
		}
		return c.ID(), nil
	}

	cats, err := uc.categories.ListByOrg(ctx, orgID)
	if err != nil {
		return 0, err
	}
	for _, c := range cats {
		if c.IsDefault() {
			return c.ID(), nil
		}
	}
	return 0, nil
}
