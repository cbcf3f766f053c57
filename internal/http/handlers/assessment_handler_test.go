package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/services"
)

type fakeAssessmentService struct {
	submitAnswers []dosha.QuizAnswer
	submitOut     *domain.DoshaAssessment
	submitErr     error

	latestOut *domain.DoshaAssessment
	latestErr error
}

func (f *fakeAssessmentService) Quiz() []dosha.QuizQuestion { return dosha.Quiz() }

func (f *fakeAssessmentService) Submit(_ context.Context, userID string, answers []dosha.QuizAnswer) (*domain.DoshaAssessment, error) {
	f.submitAnswers = answers
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitOut != nil {
		return f.submitOut, nil
	}
	return &domain.DoshaAssessment{ID: "a1", UserID: userID, PrimaryDosha: "vata", QuizVersion: dosha.QuizVersion}, nil
}

func (f *fakeAssessmentService) Latest(_ context.Context, _ string) (*domain.DoshaAssessment, error) {
	return f.latestOut, f.latestErr
}

func newAssessmentRouter(svc AssessmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&fakeChatService{}, svc, &fakeTrackingService{}, &fakeRecommendationService{})
	r.GET("/quiz", h.GetQuiz)
	r.POST("/quiz/assessments", h.SubmitAssessment)
	r.GET("/quiz/assessments/latest", h.LatestAssessment)
	return r
}

func TestGetQuiz_ReturnsVersionedQuestions(t *testing.T) {
	r := newAssessmentRouter(&fakeAssessmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quiz", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var res QuizResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Version != dosha.QuizVersion {
		t.Fatalf("expected version %q, got %q", dosha.QuizVersion, res.Version)
	}
	if len(res.Questions) == 0 {
		t.Fatal("expected non-empty question set")
	}
	for _, q := range res.Questions {
		if len(q.Options) == 0 {
			t.Fatalf("question %s has no options", q.ID)
		}
	}
}

func TestSubmitAssessment_Success(t *testing.T) {
	svc := &fakeAssessmentService{}
	r := newAssessmentRouter(svc)

	body := `{"answers":[{"dosha":"vata","weight":1.5,"tier":"physical"},{"dosha":"pitta","tier":"mental"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quiz/assessments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u3")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var a domain.DoshaAssessment
	if err := json.Unmarshal(w.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.UserID != "u3" {
		t.Fatalf("expected user u3, got %q", a.UserID)
	}
	// Missing weights default to 1.0 before scoring.
	if len(svc.submitAnswers) != 2 || svc.submitAnswers[1].Weight != 1.0 {
		t.Fatalf("expected defaulted weight 1.0, got %+v", svc.submitAnswers)
	}
	if svc.submitAnswers[0].Weight != 1.5 {
		t.Fatalf("explicit weight must be preserved, got %v", svc.submitAnswers[0].Weight)
	}
}

func TestSubmitAssessment_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
	}{
		{"invalid json", `{`, nil},
		{"empty answers", `{"answers":[]}`, nil},
		{"service rejects answer", `{"answers":[{"dosha":"wind","tier":"physical"}]}`, services.ErrInvalidAnswer},
		{"service rejects empty", `{"answers":[{"dosha":"vata","tier":"physical"}]}`, services.ErrNoAnswers},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAssessmentRouter(&fakeAssessmentService{submitErr: tc.err})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/quiz/assessments", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestSubmitAssessment_InternalError(t *testing.T) {
	r := newAssessmentRouter(&fakeAssessmentService{submitErr: errors.New("db down")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quiz/assessments", bytes.NewBufferString(`{"answers":[{"dosha":"vata","tier":"physical"}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeSubmitFailed {
		t.Fatalf("expected %q, got %q", ErrCodeSubmitFailed, er.Code)
	}
}

func TestLatestAssessment_FoundAndMissing(t *testing.T) {
	r := newAssessmentRouter(&fakeAssessmentService{
		latestOut: &domain.DoshaAssessment{ID: "a9", PrimaryDosha: "kapha"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quiz/assessments/latest", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	r = newAssessmentRouter(&fakeAssessmentService{latestErr: services.ErrNoAssessment})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/quiz/assessments/latest", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeNotFound {
		t.Fatalf("expected %q, got %q", ErrCodeNotFound, er.Code)
	}
}
