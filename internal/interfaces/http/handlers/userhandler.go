package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	users  UserQueries
	roles  RoleLister
	logger logger.Interface
}

func NewUserHandler(users UserQueries, roles RoleLister, log logger.Interface) *UserHandler {
	return &UserHandler{
		users:  users,
		roles:  roles,
		logger: log,
	}
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.users.Profile(c.Request.Context(), actor.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.users.ExecuteByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAssignable handles GET /users/assignable
func (h *UserHandler) ListAssignable(c *gin.Context) {
	roles := h.roles.ListRoles()
	ids := make([]string, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}

	result, err := h.users.ListAssignable(c.Request.Context(), ids)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListRoles handles GET /roles
func (h *UserHandler) ListRoles(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.roles.ListRoles())
}
