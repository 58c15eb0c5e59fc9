package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	articleusecases "github.com/orris-inc/helpdesk/internal/application/article/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type ArticleHandler struct {
	articles     ArticleManager
	categories   CategoryManager
	defaultLimit int
	logger       logger.Interface
}

func NewArticleHandler(articles ArticleManager, categories CategoryManager, defaultLimit int, logger logger.Interface) *ArticleHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &ArticleHandler{
		articles:     articles,
		categories:   categories,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

type ArticleRequest struct {
	OrgID           uint     `json:"organization"`
	CategoryID      uint     `json:"category"`
	Subject         string   `json:"subject"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	CommentsEnabled bool     `json:"commentsEnabled"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func parseArticleUID(c *gin.Context) (int64, error) {
	raw := c.Param("uid")
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid <= 0 {
		return 0, errors.NewValidationError("Invalid article uid", raw)
	}
	return uid, nil
}

// ListArticles handles GET /articles?organization=&category=&status=
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	q := articleusecases.ListArticlesQuery{Actor: actor, Status: c.Query("status")}
	for key, dst := range map[string]*uint{"organization": &q.OrgID, "category": &q.CategoryID} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid "+key, raw))
			return
		}
		*dst = uint(n)
	}
	page := utils.ParsePageFilter(c, h.defaultLimit)
	q.Page = page.Page
	q.Limit = page.Limit

	result, err := h.articles.List(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetArticle handles GET /articles/:uid
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseArticleUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.articles.Get(c.Request.Context(), actor, uid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.articles.Create(c.Request.Context(), articleusecases.CreateArticleCommand{
		Actor:      actor,
		OrgID:      req.OrgID,
		CategoryID: req.CategoryID,
		Subject:    req.Subject,
		Content:    req.Content,
		Tags:       req.Tags,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Article created successfully")
}

// UpdateArticle handles PUT /articles/:uid
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseArticleUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.articles.Update(c.Request.Context(), articleusecases.UpdateArticleCommand{
		Actor:           actor,
		UID:             uid,
		Subject:         req.Subject,
		Content:         req.Content,
		Tags:            req.Tags,
		CategoryID:      req.CategoryID,
		CommentsEnabled: req.CommentsEnabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Article updated successfully", result)
}

// ApplyAction handles POST /articles/:uid/:action, where action is one of
// publish, unpublish, like, unlike, subscribe or unsubscribe.
func (h *ArticleHandler) ApplyAction(c *gin.Context) {
	h.apply(c, articleusecases.ArticleAction(c.Param("action")))
}

// DeleteArticle handles DELETE /articles/:uid
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	h.apply(c, articleusecases.ActionDelete)
}

func (h *ArticleHandler) apply(c *gin.Context, action articleusecases.ArticleAction) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseArticleUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.articles.Apply(c.Request.Context(), actor, uid, action)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if action == articleusecases.ActionDelete {
		utils.NoContentResponse(c)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListCategories handles GET /organizations/:id/categories
func (h *ArticleHandler) ListCategories(c *gin.Context) {
	orgID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.categories.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateCategory handles POST /organizations/:id/categories
func (h *ArticleHandler) CreateCategory(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	orgID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.categories.Create(c.Request.Context(), articleusecases.CreateCategoryCommand{
		Actor: actor,
		OrgID: orgID,
		Name:  req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Category created successfully")
}
