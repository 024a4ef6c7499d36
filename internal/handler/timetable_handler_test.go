package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openroutine/timetable-api/internal/dto"
	"github.com/openroutine/timetable-api/internal/middleware"
	"github.com/openroutine/timetable-api/internal/models"
	"github.com/openroutine/timetable-api/internal/service"
	"github.com/openroutine/timetable-api/internal/solver"
	"github.com/openroutine/timetable-api/pkg/response"
)

type timetableServiceMock struct {
	generateResp *dto.GenerateResponse
	generateErr  error
	listResp     []models.TimetableEntryDetail
	tenantID     string
}

func (m *timetableServiceMock) Generate(_ context.Context, tenantID string, _ dto.GenerateRequest) (*dto.GenerateResponse, error) {
	m.tenantID = tenantID
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.generateResp, nil
}

func (m *timetableServiceMock) List(_ context.Context, tenantID string, _ models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	m.tenantID = tenantID
	return m.listResp, nil
}

func (m *timetableServiceMock) Grouped(_ context.Context, tenantID string) (dto.GroupedTimetable, error) {
	m.tenantID = tenantID
	return dto.GroupedTimetable{}, nil
}

type exportServiceMock struct{}

func (m *exportServiceMock) Export(_ context.Context, _, format string) (*service.ExportFile, error) {
	return &service.ExportFile{Content: []byte("Day,Slot\n"), ContentType: "text/csv", Filename: "timetable.csv"}, nil
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &service.Claims{
		Username:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})
	return c, w
}

func TestTimetableHandlerGenerateSolved(t *testing.T) {
	score := 40.0
	svc := &timetableServiceMock{generateResp: &dto.GenerateResponse{
		Status:  "OPTIMAL",
		Entries: 12,
		Score:   &score,
	}}
	h := NewTimetableHandler(svc, &exportServiceMock{})

	c, w := testContext(t, http.MethodPost, "/timetable/generate", nil)
	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.tenantID)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestTimetableHandlerGenerateInfeasible(t *testing.T) {
	svc := &timetableServiceMock{generateResp: &dto.GenerateResponse{
		Status: "INFEASIBLE",
		Findings: []solver.Finding{
			{Severity: solver.SeverityCritical, Message: "Total required subject hours (240) exceeds total available room slots (144). Add more rooms or reduce course hours."},
		},
	}}
	h := NewTimetableHandler(svc, &exportServiceMock{})

	c, w := testContext(t, http.MethodPost, "/timetable/generate", nil)
	h.Generate(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CRITICAL")
	assert.Contains(t, w.Body.String(), "240")
}

func TestTimetableHandlerGenerateBadPayload(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{}, &exportServiceMock{})

	c, w := testContext(t, http.MethodPost, "/timetable/generate", []byte(`{"time_limit_seconds":"fast"}`))
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerList(t *testing.T) {
	svc := &timetableServiceMock{listResp: []models.TimetableEntryDetail{
		{TimetableEntry: models.TimetableEntry{Day: "Monday", Slot: 1}, SubjectName: "Algorithms"},
	}}
	h := NewTimetableHandler(svc, &exportServiceMock{})

	c, w := testContext(t, http.MethodGet, "/timetable?day=Monday", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Algorithms")
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestTimetableHandlerExport(t *testing.T) {
	h := NewTimetableHandler(&timetableServiceMock{}, &exportServiceMock{})

	c, w := testContext(t, http.MethodGet, "/timetable/export?format=csv", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timetable.csv")
}
