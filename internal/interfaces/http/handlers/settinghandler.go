package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingdto "github.com/orris-inc/helpdesk/internal/application/setting/dto"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type SettingHandler struct {
	reader SettingsReader
	writer SettingsWriter
	logger logger.Interface
}

func NewSettingHandler(reader SettingsReader, writer SettingsWriter, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		reader: reader,
		writer: writer,
		logger: logger,
	}
}

// GetCategorySettings handles GET /settings/:category
func (h *SettingHandler) GetCategorySettings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.reader.GetByCategory(c.Request.Context(), actor, c.Param("category"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateCategorySettings handles PUT /settings/:category
func (h *SettingHandler) UpdateCategorySettings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req settingdto.UpdateCategorySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	category := c.Param("category")
	if err := h.writer.UpdateCategorySettings(c.Request.Context(), actor, category, req); err != nil {
		h.logger.Warnw("failed to update settings", "category", category, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Settings updated successfully", nil)
}

// SetMailerDefaultType handles PUT /settings/mailer/default-type
func (h *SettingHandler) SetMailerDefaultType(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	var req settingdto.MailerDefaultTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid POST data.", err.Error()))
		return
	}

	if err := h.writer.SetMailerDefaultTicketType(c.Request.Context(), actor, req.TypeID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Default ticket type updated successfully", nil)
}
