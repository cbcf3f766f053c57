package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/services"
)

type fakeTrackingService struct {
	listItems []domain.DoshaTrackingEntry
	listTotal int64
	listErr   error

	summaryDays int
	summaryOut  *services.TrackingSummary
	summaryErr  error
}

func (f *fakeTrackingService) ListPage(_ context.Context, _ string, _, _ int) ([]domain.DoshaTrackingEntry, int64, error) {
	return f.listItems, f.listTotal, f.listErr
}

func (f *fakeTrackingService) Summary(_ context.Context, _ string, days int) (*services.TrackingSummary, error) {
	f.summaryDays = days
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	if f.summaryOut != nil {
		return f.summaryOut, nil
	}
	return &services.TrackingSummary{Days: 7, DominantCount: map[string]int64{"vata": 3}}, nil
}

func newTrackingRouter(svc TrackingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&fakeChatService{}, &fakeAssessmentService{}, svc, &fakeRecommendationService{})
	r.GET("/tracking", h.ListTracking)
	r.GET("/tracking/summary", h.TrackingSummary)
	return r
}

func TestListTracking_Success(t *testing.T) {
	svc := &fakeTrackingService{
		listItems: []domain.DoshaTrackingEntry{
			{ID: "t1", UserID: "u1", DominantDosha: "vata"},
		},
		listTotal: 1,
	}
	r := newTrackingRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var res ListTrackingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Entries) != 1 || res.Pagination.Total != 1 {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestListTracking_ServiceError(t *testing.T) {
	r := newTrackingRouter(&fakeTrackingService{listErr: errors.New("db down")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeListFailed {
		t.Fatalf("expected %q, got %q", ErrCodeListFailed, er.Code)
	}
}

func TestTrackingSummary_ClampsDaysWindow(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"default passes zero through", "", 0},
		{"explicit window", "?days=30", 30},
		{"over max clamps to 90", "?days=365", 90},
		{"negative resets to default", "?days=-5", 0},
		{"garbage resets to default", "?days=soon", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeTrackingService{}
			r := newTrackingRouter(svc)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tracking/summary"+tc.query, nil)
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if svc.summaryDays != tc.want {
				t.Fatalf("expected days=%d forwarded, got %d", tc.want, svc.summaryDays)
			}
		})
	}
}

func TestTrackingSummary_ServiceError(t *testing.T) {
	r := newTrackingRouter(&fakeTrackingService{summaryErr: errors.New("redis down")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tracking/summary", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
