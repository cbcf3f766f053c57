// Recommendation HTTP handlers.
//
// This file exposes REST endpoints for the recommendation lifecycle:
//   - POST /recommendations/{id}/complete  (mark done, optional rating)
//   - GET  /recommendations                (list, paginated)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/services"
)

// CompleteRecommendationRequest is the JSON payload for completing a
// recommendation.
//
// Rating is optional; when present it must be in 1..5 and feeds the
// knowledge item's rolling effectiveness average.
type CompleteRecommendationRequest struct {
	Rating *int `json:"rating,omitempty" binding:"omitempty,min=1,max=5" example:"4"`
}

// ListRecommendationsResponse wraps a page of recommendations and pagination
// information.
type ListRecommendationsResponse struct {
	Recommendations []domain.RecommendationRecord `json:"recommendations"`
	Pagination      Pagination                    `json:"pagination"`
}

// CompleteRecommendation godoc
// @ID          completeRecommendation
// @Summary     Complete a recommendation
// @Description Marks a recommendation as completed by the current user, optionally
// @Description recording a 1-5 effectiveness rating.
// @Tags        Recommendations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"     example(user123)
// @Param       id         path    string  true  "Recommendation ID (UUID)"  format(uuid)
// @Param       body       body    handlers.CompleteRecommendationRequest  false  "Completion payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404  {object} handlers.ErrorResponse "Recommendation not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recommendations/{id}/complete [post]
func (h *Handlers) CompleteRecommendation(c *gin.Context) {
	recID := c.Param("id")
	if _, err := uuid.Parse(recID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recommendation id must be a UUID")
		return
	}

	// Body is optional: completing without a rating is valid.
	var req CompleteRecommendationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be between 1 and 5")
			return
		}
	}

	if err := h.recSvc.Complete(c.Request.Context(), userID(c), recID, req.Rating); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, services.ErrRecommendationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recommendation not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	noContent(c)
}

// ListRecommendations godoc
// @ID          listRecommendations
// @Summary     List recommendations
// @Description Returns a paginated list of the user's recommendations, newest first,
// @Description with each knowledge item preloaded.
// @Tags        Recommendations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       page       query   int     false "Page number"            minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"         minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListRecommendationsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recommendations [get]
func (h *Handlers) ListRecommendations(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.recSvc.ListPage(c.Request.Context(), userID(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListRecommendationsResponse{
		Recommendations: items,
		Pagination:      paginate(page, pageSize, total),
	})
}
