package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	typeusecases "github.com/orris-inc/helpdesk/internal/application/tickettype/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type TicketTypeHandler struct {
	manage TicketTypeManager
	delete TicketTypeDeleter
	logger logger.Interface
}

func NewTicketTypeHandler(manage TicketTypeManager, deleter TicketTypeDeleter, logger logger.Interface) *TicketTypeHandler {
	return &TicketTypeHandler{
		manage: manage,
		delete: deleter,
		logger: logger,
	}
}

type TicketTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

type DeleteTicketTypeRequest struct {
	NewTypeID uint `json:"newTypeId"`
}

// ListTicketTypes handles GET /tickettypes
func (h *TicketTypeHandler) ListTicketTypes(c *gin.Context) {
	result, err := h.manage.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTicketType handles POST /tickettypes
func (h *TicketTypeHandler) CreateTicketType(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req TicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.manage.Create(c.Request.Context(), typeusecases.CreateTicketTypeCommand{Actor: actor, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Ticket type created successfully")
}

// RenameTicketType handles PUT /tickettypes/:id
func (h *TicketTypeHandler) RenameTicketType(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.manage.Rename(c.Request.Context(), typeusecases.RenameTicketTypeCommand{Actor: actor, ID: id, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket type updated successfully", result)
}

// DeleteTicketType handles DELETE /tickettypes/:id. Tickets of the deleted
// type move to newTypeId; the response reports how many moved.
func (h *TicketTypeHandler) DeleteTicketType(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data."))
		return
	}

	var req DeleteTicketTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.delete.Execute(c.Request.Context(), typeusecases.DeleteTicketTypeCommand{
		Actor:         actor,
		ID:            id,
		ReplacementID: req.NewTypeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ticket type deleted successfully", result)
}
