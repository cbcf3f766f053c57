// Assessment HTTP handlers.
//
// This file exposes REST endpoints for the constitutional quiz:
//   - GET  /quiz                     (versioned question set)
//   - POST /quiz/assessments         (score answers into a prakriti profile)
//   - GET  /quiz/assessments/latest  (most recent profile on record)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/services"
)

// QuizResponse wraps the question set with its version so clients can detect
// question-set drift between fetch and submit.
type QuizResponse struct {
	Version   string               `json:"version" example:"1.2.0"`
	Questions []dosha.QuizQuestion `json:"questions"`
}

// SubmitAssessmentRequest is the JSON payload for scoring a completed quiz.
type SubmitAssessmentRequest struct {
	// Answers are the selected options, one per answered question.
	Answers []dosha.QuizAnswer `json:"answers" binding:"required,min=1"`
}

// GetQuiz godoc
// @ID          getQuiz
// @Summary     Get the dosha quiz
// @Description Returns the versioned constitutional question set.
// @Tags        Assessments
// @Produce     json
//
// @Success     200  {object}  handlers.QuizResponse
// @Router      /quiz [get]
func (h *Handlers) GetQuiz(c *gin.Context) {
	ok(c, http.StatusOK, QuizResponse{
		Version:   dosha.QuizVersion,
		Questions: h.asmSvc.Quiz(),
	})
}

// SubmitAssessment godoc
// @ID          submitAssessment
// @Summary     Submit quiz answers
// @Description Scores the answers into a prakriti profile and stores an immutable
// @Description assessment. Resubmitting creates a new assessment; the latest wins.
// @Tags        Assessments
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SubmitAssessmentRequest  true  "Quiz answers"
//
// @Success     201  {object}  domain.DoshaAssessment
// @Failure     400  {object}  handlers.ErrorResponse "Invalid answers"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /quiz/assessments [post]
func (h *Handlers) SubmitAssessment(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "answers required")
		return
	}

	// Unweighted submissions count each answer once.
	for i := range req.Answers {
		if req.Answers[i].Weight == 0 {
			req.Answers[i].Weight = 1.0
		}
	}

	a, err := h.asmSvc.Submit(c.Request.Context(), userID(c), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAnswers), errors.Is(err, services.ErrInvalidAnswer):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, a)
}

// LatestAssessment godoc
// @ID          latestAssessment
// @Summary     Get the latest assessment
// @Description Returns the user's most recent prakriti profile.
// @Tags        Assessments
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  domain.DoshaAssessment
// @Failure     404  {object}  handlers.ErrorResponse "No assessment on record"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /quiz/assessments/latest [get]
func (h *Handlers) LatestAssessment(c *gin.Context) {
	a, err := h.asmSvc.Latest(c.Request.Context(), userID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAssessment):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no assessment on record")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}
