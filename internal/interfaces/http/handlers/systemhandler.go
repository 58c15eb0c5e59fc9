package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	systemusecases "github.com/orris-inc/helpdesk/internal/application/system/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type SystemHandler struct {
	systems SystemManager
	logger  logger.Interface
}

func NewSystemHandler(systems SystemManager, logger logger.Interface) *SystemHandler {
	return &SystemHandler{systems: systems, logger: logger}
}

type CreateSystemRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type UpdateSystemRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	Description string `json:"desc"`
	Status      *bool  `json:"status" binding:"required"`
}

// ListSystems handles GET /systems
func (h *SystemHandler) ListSystems(c *gin.Context) {
	result, err := h.systems.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListOrganizationSystems handles GET /organizations/:id/systems
func (h *SystemHandler) ListOrganizationSystems(c *gin.Context) {
	orgID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.systems.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetSystem handles GET /systems/:id
func (h *SystemHandler) GetSystem(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.systems.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateSystem handles POST /organizations/:id/systems
func (h *SystemHandler) CreateSystem(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	orgID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.systems.Create(c.Request.Context(), systemusecases.CreateSystemCommand{
		Actor:       actor,
		OrgID:       orgID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "System created successfully")
}

// UpdateSystem handles PUT /systems/:id
func (h *SystemHandler) UpdateSystem(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid Post Data", err.Error()))
		return
	}

	result, err := h.systems.Update(c.Request.Context(), systemusecases.UpdateSystemCommand{
		Actor:       actor,
		ID:          id,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      *req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteSystem handles DELETE /systems/:id
func (h *SystemHandler) DeleteSystem(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.systems.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
