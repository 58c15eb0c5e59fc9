package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orgusecases "github.com/orris-inc/helpdesk/internal/application/organization/usecases"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type OrganizationHandler struct {
	orgs   OrganizationManager
	logger logger.Interface
}

func NewOrganizationHandler(orgs OrganizationManager, logger logger.Interface) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, logger: logger}
}

type CreateOrganizationRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"shortName" binding:"required"`
}

type OrganizationMemberRequest struct {
	UserID uint `json:"user" binding:"required"`
}

// ListOrganizations handles GET /organizations
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	result, err := h.orgs.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetOrganization handles GET /organizations/:id
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.orgs.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateOrganization handles POST /organizations
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.orgs.Create(c.Request.Context(), orgusecases.CreateOrganizationCommand{
		Actor:     actor,
		Name:      req.Name,
		ShortName: req.ShortName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Organization created successfully")
}

// AddMember handles POST /organizations/:id/members
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	h.member(c, false)
}

// RemoveMember handles DELETE /organizations/:id/members
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	h.member(c, true)
}

func (h *OrganizationHandler) member(c *gin.Context, remove bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req OrganizationMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	result, err := h.orgs.Member(c.Request.Context(), orgusecases.MemberCommand{
		Actor:  actor,
		OrgID:  id,
		UserID: req.UserID,
		Remove: remove,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
