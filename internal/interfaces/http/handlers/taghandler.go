package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tagusecases "github.com/orris-inc/helpdesk/internal/application/tag/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type TagHandler struct {
	tags   TagManager
	logger logger.Interface
}

func NewTagHandler(tags TagManager, logger logger.Interface) *TagHandler {
	return &TagHandler{tags: tags, logger: logger}
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTags handles GET /tags
func (h *TagHandler) ListTags(c *gin.Context) {
	result, err := h.tags.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTag handles POST /tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.tags.Create(c.Request.Context(), tagusecases.CreateTagCommand{Actor: actor, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Tag created successfully")
}
