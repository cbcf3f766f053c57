// Tracking HTTP handlers.
//
// This file exposes REST endpoints for daily dosha balance history:
//   - GET /tracking          (list entries, paginated, ETag support)
//   - GET /tracking/summary  (dominant-dosha counts over a trailing window)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/repo"
	"github.com/ayurmitra/wellness-backend/internal/services"
	"github.com/ayurmitra/wellness-backend/internal/utils"
)

// ListTrackingResponse wraps a page of tracking entries and pagination
// information.
type ListTrackingResponse struct {
	Entries    []domain.DoshaTrackingEntry `json:"entries"`
	Pagination Pagination                  `json:"pagination"`
}

// ListTracking godoc
// @ID          listTracking
// @Summary     List dosha tracking entries
// @Description Returns a page of the user's daily balance entries, newest day first.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Tracking
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                 minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"              minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListTrackingResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking [get]
func (h *Handlers) ListTracking(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.trkSvc.(*services.TrackingService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.TrackingStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"tracking:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.trkSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListTrackingResponse{
		Entries:    items,
		Pagination: paginate(page, pageSize, total),
	})
}

// TrackingSummary godoc
// @ID          trackingSummary
// @Summary     Summarize recent dosha balance
// @Description Aggregates dominant-dosha counts over the trailing window, including
// @Description today's entry and the current engagement streak.
// @Tags        Tracking
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"            example(user123)
// @Param       days       query   int     false "Trailing window in days (1..90)"  minimum(1) maximum(90) default(7)
//
// @Success     200  {object} services.TrackingSummary
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tracking/summary [get]
func (h *Handlers) TrackingSummary(c *gin.Context) {
	const maxDays = 90
	days := utils.AtoiDefault(c.Query("days"), 0)
	if days < 0 {
		days = 0
	}
	if days > maxDays {
		days = maxDays
	}

	sum, err := h.trkSvc.Summary(c.Request.Context(), userID(c), days)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}
