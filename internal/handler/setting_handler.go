package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/middleware"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
	"github.com/openroutine/timetable-api/pkg/response"
)

type settingService interface {
	Effective(ctx context.Context, tenantID string) (map[string]string, error)
	Update(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest) error
}

// SettingHandler exposes solver setting endpoints.
type SettingHandler struct {
	service settingService
}

// NewSettingHandler builds a new handler.
func NewSettingHandler(service settingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// List godoc
// @Summary Effective solver settings for the authenticated account
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingHandler) List(c *gin.Context) {
	values, err := h.service.Effective(c.Request.Context(), middleware.CurrentTenantID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, values)
}

// Update godoc
// @Summary Update solver settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdateSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	tenantID := middleware.CurrentTenantID(c)
	if err := h.service.Update(c.Request.Context(), tenantID, req); err != nil {
		response.Error(c, err)
		return
	}
	values, err := h.service.Effective(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, values)
}
