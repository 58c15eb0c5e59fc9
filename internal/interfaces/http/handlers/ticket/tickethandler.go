package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	uc           UseCases
	defaultLimit int
	logger       logger.Interface
}

func NewTicketHandler(uc UseCases, defaultLimit int, logger logger.Interface) *TicketHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &TicketHandler{
		uc:           uc,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:uid
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{Actor: actor, UID: uid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	q, err := parseListQuery(c, actor, h.defaultLimit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.List.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListAllTickets handles GET /tickets/all
func (h *TicketHandler) ListAllTickets(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.uc.ListAll.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAssigned handles GET /tickets/assigned
func (h *TicketHandler) ListAssigned(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	page := utils.ParsePageFilter(c, h.defaultLimit)

	result, err := h.uc.List.Assigned(c.Request.Context(), usecases.AssignedTicketsQuery{
		Actor: actor,
		Page:  page.Page,
		Limit: page.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListByRequester handles GET /tickets/requester/:userId
func (h *TicketHandler) ListByRequester(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	ownerID, err := utils.ParseUintParam(c, "userId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page := utils.ParsePageFilter(c, h.defaultLimit)

	result, err := h.uc.List.ByRequester(c.Request.Context(), usecases.RequesterTicketsQuery{
		Actor:   actor,
		OwnerID: ownerID,
		Page:    page.Page,
		Limit:   page.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// SearchTickets handles GET /tickets/search?q=
func (h *TicketHandler) SearchTickets(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	limit, err := queryPositiveInt(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Search.Execute(c.Request.Context(), usecases.SearchTicketsQuery{
		Actor: actor,
		Term:  c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PUT /tickets/:uid
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), req.ToCommand(actor, uid))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// UpdateStatus handles PATCH /tickets/:uid/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid status", err.Error()))
		return
	}

	result, err := h.uc.UpdateStatus.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		Actor:  actor,
		UID:    uid,
		Status: *req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated successfully", result)
}

// AssignTicket handles POST /tickets/:uid/assign
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Actor:      actor,
		UID:        uid,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// AddComment handles POST /tickets/:uid/comments and POST /tickets/:uid/notes
func (h *TicketHandler) AddComment(c *gin.Context) {
	h.comment(c, usecases.CommentAdd)
}

// UpdateComment handles PUT /tickets/:uid/{comments,notes}/:commentId
func (h *TicketHandler) UpdateComment(c *gin.Context) {
	h.comment(c, usecases.CommentUpdate)
}

// RemoveComment handles DELETE /tickets/:uid/{comments,notes}/:commentId
func (h *TicketHandler) RemoveComment(c *gin.Context) {
	h.comment(c, usecases.CommentRemove)
}

func (h *TicketHandler) comment(c *gin.Context, action usecases.CommentAction) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CommentCommand{
		Actor:     actor,
		UID:       uid,
		Action:    action,
		Note:      c.GetBool(contextKeyNote),
		CommentID: c.Param("commentId"),
	}
	if action != usecases.CommentRemove {
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
			return
		}
		cmd.Body = req.Body
	}

	result, err := h.uc.Comment.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if action == usecases.CommentAdd {
		utils.CreatedResponse(c, result, "Comment added successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

const contextKeyNote = "ticket_note"

// Notes marks the request as addressing internal notes rather than comments.
func Notes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKeyNote, true)
		c.Next()
	}
}

// AddAttachment handles POST /tickets/:uid/attachments
func (h *TicketHandler) AddAttachment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.uc.Attachment.Execute(c.Request.Context(), usecases.AttachmentCommand{
		Actor:    actor,
		UID:      uid,
		Name:     req.Name,
		Path:     req.Path,
		MimeType: req.MimeType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment added successfully")
}

// RemoveAttachment handles DELETE /tickets/:uid/attachments/:attachmentId
func (h *TicketHandler) RemoveAttachment(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Attachment.Execute(c.Request.Context(), usecases.AttachmentCommand{
		Actor:        actor,
		UID:          uid,
		Remove:       true,
		AttachmentID: c.Param("attachmentId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateSubscriber handles POST /tickets/:uid/subscribers
func (h *TicketHandler) UpdateSubscriber(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.uc.Subscription.Execute(c.Request.Context(), usecases.SubscriptionCommand{
		Actor:     actor,
		UID:       uid,
		UserID:    req.UserID,
		Subscribe: req.Subscribe,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteTicket handles DELETE /tickets/:uid
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	h.delete(c, false)
}

// RestoreTicket handles POST /tickets/:uid/restore
func (h *TicketHandler) RestoreTicket(c *gin.Context) {
	h.delete(c, true)
}

func (h *TicketHandler) delete(c *gin.Context, restore bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	uid, err := parseUID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Actor:   actor,
		UID:     uid,
		Restore: restore,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if restore {
		utils.SuccessResponse(c, http.StatusOK, "Ticket restored successfully", nil)
		return
	}
	utils.NoContentResponse(c)
}

// ListOverdue handles GET /tickets/overdue
func (h *TicketHandler) ListOverdue(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.uc.Overdue.Execute(c.Request.Context(), usecases.OverdueQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CountByTag handles GET /tickets/counts/tags
func (h *TicketHandler) CountByTag(c *gin.Context) {
	h.counts(c, h.uc.Counts.ByTag)
}

// CountByType handles GET /tickets/counts/types
func (h *TicketHandler) CountByType(c *gin.Context) {
	h.counts(c, h.uc.Counts.ByType)
}

// TopGroups handles GET /tickets/counts/groups
func (h *TicketHandler) TopGroups(c *gin.Context) {
	h.counts(c, h.uc.Counts.TopGroups)
}

func (h *TicketHandler) counts(c *gin.Context, fn countsFunc) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	timespan, err := queryPositiveInt(c, "timespan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	top, err := queryPositiveInt(c, "top")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), usecases.CountsQuery{
		Actor:        actor,
		TimespanDays: timespan,
		Top:          top,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
