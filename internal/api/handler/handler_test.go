package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	createResult *dto.AssignmentResponse
	createErr    error
	bulkResult   []dto.AssignmentResponse
	bulkErr      error
	getResult    *dto.AssignmentResponse
	getErr       error
	listResult   []dto.AssignmentResponse
	listErr      error
	updateResult *dto.AssignmentResponse
	updateErr    error
	deleteErr    error
}

func (m *mockAssignmentService) Create(_ context.Context, _ *dto.CreateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAssignmentService) CreateBulk(_ context.Context, _ *dto.BulkCreateAssignmentRequest, _ string) ([]dto.AssignmentResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockAssignmentService) Get(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAssignmentService) List(_ context.Context, _ *dto.ListAssignmentsRequest) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAssignmentService) Update(_ context.Context, _ string, _ *dto.UpdateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock CapacityService ──

type mockCapacityService struct {
	dailyResult  *dto.DailySummaryResponse
	dailyErr     error
	weeklyResult *dto.WeeklySummaryResponse
	weeklyErr    error
}

func (m *mockCapacityService) DailySummary(_ context.Context, _ time.Time) (*dto.DailySummaryResponse, error) {
	return m.dailyResult, m.dailyErr
}
func (m *mockCapacityService) WeeklySummary(_ context.Context, _ time.Time) (*dto.WeeklySummaryResponse, error) {
	return m.weeklyResult, m.weeklyErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func withAuth(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", "admin")
		next(c)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Create_Success(t *testing.T) {
	mock := &mockAssignmentService{
		createResult: &dto.AssignmentResponse{
			ID:             "asg-001",
			UserID:         "11111111-1111-1111-1111-111111111111",
			RequestID:      "22222222-2222-2222-2222-222222222222",
			AssignedDate:   "2026-03-04",
			AllocatedHours: 6,
			Status:         "planned",
		},
	}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		UserID:         "11111111-1111-1111-1111-111111111111",
		RequestID:      "22222222-2222-2222-2222-222222222222",
		AssignedDate:   "2026-03-04",
		AllocatedHours: 6,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAssignmentHandler_Create_BadPayload(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_Create_NegativeHoursRejected(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		UserID:         "11111111-1111-1111-1111-111111111111",
		RequestID:      "22222222-2222-2222-2222-222222222222",
		AssignedDate:   "2026-03-04",
		AllocatedHours: -2,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("binding should reject non-positive hours, got %d", w.Code)
	}
}

func TestAssignmentHandler_Create_CapacityExceeded(t *testing.T) {
	mock := &mockAssignmentService{
		createErr: &service.CapacityExceededError{
			UserID:    "11111111-1111-1111-1111-111111111111",
			Date:      "2026-03-04",
			Available: 3,
		},
	}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		UserID:         "11111111-1111-1111-1111-111111111111",
		RequestID:      "22222222-2222-2222-2222-222222222222",
		AssignedDate:   "2026-03-04",
		AllocatedHours: 4,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 21104 {
		t.Errorf("expected error code 21104, got %d", resp.Code)
	}
	if resp.Details == "" || !bytes.Contains([]byte(resp.Details), []byte("3 hours available")) {
		t.Errorf("details should carry the remaining hours, got %q", resp.Details)
	}
}

func TestAssignmentHandler_Create_UserNotFound(t *testing.T) {
	mock := &mockAssignmentService{createErr: service.ErrUserNotFound}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.CreateAssignmentRequest{
		UserID:         "11111111-1111-1111-1111-111111111111",
		RequestID:      "22222222-2222-2222-2222-222222222222",
		AssignedDate:   "2026-03-04",
		AllocatedHours: 4,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 21101 {
		t.Errorf("expected error code 21101, got %d", resp.Code)
	}
}

func TestAssignmentHandler_CreateBulk_ValidationFailure(t *testing.T) {
	mock := &mockAssignmentService{
		bulkErr: &service.BulkValidationError{Failures: []string{
			"assignment 1: user ghost not found",
			"assignment 2: capacity exceeded for Dana on 2026-03-04: 3 hours available",
		}},
	}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/bulk", jsonBody(dto.BulkCreateAssignmentRequest{
		Assignments: []dto.CreateAssignmentRequest{
			{UserID: "11111111-1111-1111-1111-111111111111", RequestID: "22222222-2222-2222-2222-222222222222", AssignedDate: "2026-03-04", AllocatedHours: 4},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/bulk", withAuth(h.CreateBulk))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 21105 {
		t.Errorf("expected error code 21105, got %d", resp.Code)
	}
	if !bytes.Contains([]byte(resp.Details), []byte("\n")) {
		t.Errorf("details should join failures with newlines, got %q", resp.Details)
	}
}

func TestAssignmentHandler_CreateBulk_EmptyListRejected(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/bulk", jsonBody(dto.BulkCreateAssignmentRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/bulk", withAuth(h.CreateBulk))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("empty batch should be rejected by binding, got %d", w.Code)
	}
}

func TestAssignmentHandler_Get_NotFound(t *testing.T) {
	mock := &mockAssignmentService{getErr: service.ErrAssignmentNotFound}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/asg-404", nil)

	r := gin.New()
	r.GET("/assignments/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 21103 {
		t.Errorf("expected error code 21103, got %d", resp.Code)
	}
}

func TestAssignmentHandler_Delete_Success(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/assignments/asg-001", nil)

	r := gin.New()
	r.DELETE("/assignments/:id", withAuth(h.Delete))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CapacityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCapacityHandler_DailySummary_Success(t *testing.T) {
	mock := &mockCapacityService{
		dailyResult: &dto.DailySummaryResponse{
			Date:  "2026-03-04",
			Users: []dto.UserDailyCapacity{},
		},
	}
	h := NewCapacityHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/capacity/daily?date=2026-03-04", nil)

	r := gin.New()
	r.GET("/capacity/daily", h.DailySummary)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCapacityHandler_DailySummary_MissingDate(t *testing.T) {
	h := NewCapacityHandler(&mockCapacityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/capacity/daily", nil)

	r := gin.New()
	r.GET("/capacity/daily", h.DailySummary)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 22001 {
		t.Errorf("expected error code 22001, got %d", resp.Code)
	}
}

func TestCapacityHandler_WeeklySummary_DefaultWeek(t *testing.T) {
	mock := &mockCapacityService{
		weeklyResult: &dto.WeeklySummaryResponse{
			WeekStart: "2026-03-02",
			WeekEnd:   "2026-03-06",
			Users:     []dto.CapacitySummary{},
		},
	}
	h := NewCapacityHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/capacity/weekly", nil)

	r := gin.New()
	r.GET("/capacity/weekly", h.WeeklySummary)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("week_start should be optional, got %d", w.Code)
	}
}

func TestCapacityHandler_WeeklySummary_BadDate(t *testing.T) {
	h := NewCapacityHandler(&mockCapacityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/capacity/weekly?week_start=03-02-2026", nil)

	r := gin.New()
	r.GET("/capacity/weekly", h.WeeklySummary)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
