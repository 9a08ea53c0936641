package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tidyhive/models"
	"tidyhive/services/scheduling"
)

type fakeConflictService struct {
	lastQuery    scheduling.ConflictQuery
	conflicts    []models.Conflict
	acknowledged map[string]string
	applyMessage string
	applyErr     error
}

func (f *fakeConflictService) Detect(ctx context.Context, q scheduling.ConflictQuery) ([]models.Conflict, models.ConflictSummary, error) {
	f.lastQuery = q
	return f.conflicts, scheduling.Summarize(f.conflicts), nil
}

func (f *fakeConflictService) Acknowledge(ctx context.Context, conflictID, action string) error {
	if f.acknowledged == nil {
		f.acknowledged = map[string]string{}
	}
	f.acknowledged[conflictID] = action
	return nil
}

func (f *fakeConflictService) ApplySuggestion(ctx context.Context, conflictID, suggestionID string) (string, error) {
	return f.applyMessage, f.applyErr
}

func newConflictRouter(svc scheduling.ConflictService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewConflictHandler(svc, zap.NewNop())
	r.GET("/api/conflicts", h.GetConflicts)
	r.POST("/api/conflicts", h.ResolveConflict)
	return r
}

func TestGetConflicts(t *testing.T) {
	t.Run("returns conflicts with summary and query echo", func(t *testing.T) {
		svc := &fakeConflictService{conflicts: []models.Conflict{
			{ID: "time_overlap:a:b", Type: models.ConflictTimeOverlap, Severity: models.SeverityHigh, AffectedBookings: []string{"a", "b"}},
		}}
		router := newConflictRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/conflicts?bookingId=a", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["conflicts"], 1)
		assert.NotEmpty(t, body["timestamp"])

		query := body["query"].(map[string]any)
		assert.Equal(t, "a", query["bookingId"])
		assert.Equal(t, false, query["includeResolved"])

		summary := body["summary"].(map[string]any)
		assert.Equal(t, float64(1), summary["total"])

		assert.Equal(t, "a", svc.lastQuery.BookingID)
	})

	t.Run("includeResolved flag is forwarded", func(t *testing.T) {
		svc := &fakeConflictService{}
		router := newConflictRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/conflicts?includeResolved=true", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.lastQuery.IncludeResolved)
	})

	t.Run("date range without end date is rejected", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/conflicts?startDate=2024-01-10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "endDate")
	})

	t.Run("bookingId combined with range is rejected", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/conflicts?bookingId=a&startDate=2024-01-10&endDate=2024-01-11", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cannot be combined")
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/conflicts?startDate=01/10/2024&endDate=2024-01-11", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	})
}

func TestResolveConflict(t *testing.T) {
	t.Run("resolve records an acknowledgement", func(t *testing.T) {
		svc := &fakeConflictService{}
		router := newConflictRouter(svc)

		body := `{"action":"resolve","conflictId":"time_overlap:a:b"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "resolve", svc.acknowledged["time_overlap:a:b"])
	})

	t.Run("dismiss records an acknowledgement", func(t *testing.T) {
		svc := &fakeConflictService{}
		router := newConflictRouter(svc)

		body := `{"action":"dismiss","conflictId":"travel_time:a:b"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dismiss", svc.acknowledged["travel_time:a:b"])
	})

	t.Run("apply_suggestion returns the mutation message", func(t *testing.T) {
		svc := &fakeConflictService{applyMessage: "booking b rescheduled to 2024-01-16 09:00"}
		router := newConflictRouter(svc)

		body := `{"action":"apply_suggestion","conflictId":"time_overlap:a:b","parameters":{"suggestionId":"reschedule_booking_2"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "rescheduled")
	})

	t.Run("apply_suggestion requires a suggestion id", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		body := `{"action":"apply_suggestion","conflictId":"time_overlap:a:b"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "suggestionId")
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		body := `{"action":"escalate","conflictId":"time_overlap:a:b"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unrecognized action")
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		router := newConflictRouter(&fakeConflictService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/conflicts", strings.NewReader(`{"action":"resolve"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
