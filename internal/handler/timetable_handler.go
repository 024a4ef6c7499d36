package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/middleware"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/service"
	appErrors "github.com/openroutine/timetable-api/pkg/errors"
	"github.com/openroutine/timetable-api/pkg/response"
)

type timetableService interface {
	Generate(ctx context.Context, tenantID string, req dto.GenerateRequest) (*dto.GenerateResponse, error)
	List(ctx context.Context, tenantID string, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error)
	Grouped(ctx context.Context, tenantID string) (dto.GroupedTimetable, error)
}

type exportService interface {
	Export(ctx context.Context, tenantID, format string) (*service.ExportFile, error)
}

// TimetableHandler exposes generation and retrieval endpoints.
type TimetableHandler struct {
	timetable timetableService
	export    exportService
}

// NewTimetableHandler builds a new handler.
func NewTimetableHandler(timetable timetableService, export exportService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable, export: export}
}

// Generate godoc
// @Summary Generate a new timetable for the authenticated account
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRequest false "Generation overrides"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
			return
		}
	}
	resp, err := h.timetable.Generate(c.Request.Context(), middleware.CurrentTenantID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !resp.Solved() {
		response.JSON(c, http.StatusUnprocessableEntity, resp)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// List godoc
// @Summary List the stored timetable
// @Tags Timetable
// @Produce json
// @Param group_id query string false "Filter by group"
// @Param faculty_id query string false "Filter by faculty"
// @Param room_id query string false "Filter by room"
// @Param day query string false "Filter by day"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	filter := models.TimetableFilter{
		GroupID:   c.Query("group_id"),
		FacultyID: c.Query("faculty_id"),
		RoomID:    c.Query("room_id"),
		Day:       c.Query("day"),
	}
	entries, err := h.timetable.List(c.Request.Context(), middleware.CurrentTenantID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}

// Grouped godoc
// @Summary Timetable arranged by group and day
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/grouped [get]
func (h *TimetableHandler) Grouped(c *gin.Context) {
	view, err := h.timetable.Grouped(c.Request.Context(), middleware.CurrentTenantID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Export godoc
// @Summary Download the timetable as CSV or PDF
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	file, err := h.export.Export(c.Request.Context(), middleware.CurrentTenantID(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
