package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	groupusecases "github.com/orris-inc/helpdesk/internal/application/group/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type GroupHandler struct {
	groups GroupManager
	logger logger.Interface
}

func NewGroupHandler(groups GroupManager, logger logger.Interface) *GroupHandler {
	return &GroupHandler{groups: groups, logger: logger}
}

type CreateGroupRequest struct {
	Name    string `json:"name" binding:"required"`
	OrgID   *uint  `json:"organization"`
	Members []uint `json:"members"`
	Public  bool   `json:"public"`
}

type UpdateGroupRequest struct {
	Name       *string `json:"name"`
	SendMailTo *[]uint `json:"sendMailTo"`
	Public     *bool   `json:"public"`
}

type GroupMemberRequest struct {
	UserID uint `json:"user" binding:"required"`
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.groups.ListVisible(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetGroup handles GET /groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.groups.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.groups.Create(c.Request.Context(), groupusecases.CreateGroupCommand{
		Actor:   actor,
		Name:    req.Name,
		OrgID:   req.OrgID,
		Members: req.Members,
		Public:  req.Public,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Group created successfully")
}

// UpdateGroup handles PATCH /groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.groups.Update(c.Request.Context(), groupusecases.UpdateGroupCommand{
		Actor:      actor,
		GroupID:    id,
		Name:       req.Name,
		SendMailTo: req.SendMailTo,
		Public:     req.Public,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Group updated successfully", result)
}

// AddMember handles POST /groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	h.member(c, false)
}

// RemoveMember handles DELETE /groups/:id/members
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	h.member(c, true)
}

func (h *GroupHandler) member(c *gin.Context, remove bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.groups.Member(c.Request.Context(), groupusecases.MemberCommand{
		Actor:   actor,
		GroupID: id,
		UserID:  req.UserID,
		Remove:  remove,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteGroup handles DELETE /groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.groups.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
