// Chat HTTP handlers.
//
// This file exposes REST endpoints for the conversation surface:
//   - POST /chat/messages                (process one chat turn)
//   - POST /chat/sessions/{id}/end       (close the active session)
//   - GET  /chat/sessions/{id}/messages  (list paginated session messages)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/repo"
	"github.com/ayurmitra/wellness-backend/internal/services"
	"github.com/ayurmitra/wellness-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ChatService defines the conversation operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Process runs one chat turn end to end and returns the unified result.
	Process(ctx context.Context, in services.ChatInput) (*services.ChatResult, error)
	// EndSession closes a session that belongs to the user.
	EndSession(ctx context.Context, userID, sessionID string) error
	// HistoryPage returns a page of messages within a session and the total count.
	HistoryPage(ctx context.Context, userID, sessionID string, page, pageSize int) ([]domain.ConversationMessage, int64, error)
}

// AssessmentService defines the dosha quiz operations.
type AssessmentService interface {
	// Quiz returns the current question set.
	Quiz() []dosha.QuizQuestion
	// Submit scores the answers into a prakriti profile and persists it.
	Submit(ctx context.Context, userID string, answers []dosha.QuizAnswer) (*domain.DoshaAssessment, error)
	// Latest returns the user's most recent assessment.
	Latest(ctx context.Context, userID string) (*domain.DoshaAssessment, error)
}

// TrackingService defines daily dosha balance retrieval operations.
type TrackingService interface {
	// ListPage returns a page of tracking entries, newest day first.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.DoshaTrackingEntry, int64, error)
	// Summary aggregates dominant-dosha counts over a trailing window.
	Summary(ctx context.Context, userID string, days int) (*services.TrackingSummary, error)
}

// RecommendationService defines recommendation lifecycle operations.
type RecommendationService interface {
	// Complete marks a recommendation done, with an optional 1..5 rating.
	Complete(ctx context.Context, userID, recommendationID string, rating *int) error
	// ListPage returns a page of the user's recommendations and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.RecommendationRecord, int64, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for chat, assessments, tracking, and
// recommendations. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	chatSvc ChatService
	asmSvc  AssessmentService
	trkSvc  TrackingService
	recSvc  RecommendationService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(chatSvc ChatService, asmSvc AssessmentService, trkSvc TrackingService, recSvc RecommendationService) *Handlers {
	return &Handlers{chatSvc: chatSvc, asmSvc: asmSvc, trkSvc: trkSvc, recSvc: recSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// PostChatMessageRequest is the JSON payload for one chat turn.
type PostChatMessageRequest struct {
	// Message is the user's text. It must be non-empty.
	Message string `json:"message" binding:"required,min=1" example:"I'm so worried about my exams"`
	// InputType is "text" (default) or "voice".
	InputType string `json:"input_type,omitempty" example:"text"`
	// AudioURL points at the original recording for voice turns.
	AudioURL string `json:"audio_url,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListSessionMessagesResponse contains a page of session messages and
// pagination metadata.
type ListSessionMessagesResponse struct {
	Messages   []domain.ConversationMessage `json:"messages"`
	Pagination Pagination                   `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate computes the response metadata for a page.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeMessage normalizes user text for consistent downstream behavior:
//   - converts CRLF/CR to LF,
//   - collapses runs of 3+ LFs to exactly two (paragraph separation),
//   - trims surrounding whitespace.
func sanitizeMessage(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// discoverMaxMessageRunes inspects the concrete ChatService for a configured
// message-length limit. If unavailable, it returns a conservative fallback.
func discoverMaxMessageRunes(chatSvc ChatService) int {
	const fallback = 4000
	if p, ok := chatSvc.(*services.ChatPipeline); ok {
		if p.MaxMessageRunes > 0 {
			return p.MaxMessageRunes
		}
	}
	return fallback
}

//
// Handlers
//

// PostChatMessage godoc
// @ID          postChatMessage
// @Summary     Send a chat message
// @Description Processes one chat turn: emotion and safety analysis, dosha tracking,
// @Description knowledge retrieval, and a companion reply with recommendations.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.PostChatMessageRequest  true  "Chat turn payload"
//
// @Success     200  {object}  services.ChatResult    "Turn result"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat/messages [post]
func (h *Handlers) PostChatMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	// Sanitize + early size cap to fail fast at the edge.
	message := sanitizeMessage(req.Message)
	maxRunes := discoverMaxMessageRunes(h.chatSvc)
	if maxRunes > 0 && utf8.RuneCountInString(message) > maxRunes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("message too long: max %d runes", maxRunes))
		return
	}
	if message == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	currentUser := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middlewareGetIdempotencyKey(c)
	if idemKey != "" {
		if p, okSvc := h.chatSvc.(*services.ChatPipeline); okSvc && p.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, p.DB, currentUser, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetMessage(p.DB, rec.MessageID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, services.ChatResult{
						SessionID: rec.SessionID,
						MessageID: prev.ID,
						Reply:     prev.Content,
					})
					return
				}
			}
		}
	}

	// Normal processing (the pipeline has a second guard for length).
	res, err := h.chatSvc.Process(ctx, services.ChatInput{
		UserID:    currentUser,
		Message:   message,
		InputType: req.InputType,
		AudioURL:  req.AudioURL,
	})
	if err != nil {
		var pe *services.PersistenceError
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case errors.Is(err, services.ErrMessageTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("message too long: max %d runes", maxRunes))
		case errors.Is(err, services.ErrInvalidInputType):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "input_type must be text or voice")
		case errors.As(err, &pe):
			fail(c, http.StatusInternalServerError, ErrCodeChatFailed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeChatFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && res.MessageID != "" {
		if p, okSvc := h.chatSvc.(*services.ChatPipeline); okSvc && p.DB != nil {
			ttl := 24 * time.Hour
			_, _ = repo.CreateIdempotency(ctx, p.DB, currentUser, res.SessionID, idemKey, res.MessageID, http.StatusOK, ttl)
		}
	}

	ok(c, http.StatusOK, res)
}

// EndChatSession godoc
// @ID          endChatSession
// @Summary     End a conversation session
// @Description Closes a session owned by the current user. Ended sessions no longer
// @Description receive messages; the next chat turn starts a fresh session.
// @Tags        Chat
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Session ID (UUID)"      format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Router      /chat/sessions/{id}/end [post]
func (h *Handlers) EndChatSession(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := uuid.Parse(sessionID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a UUID")
		return
	}

	if err := h.chatSvc.EndSession(c.Request.Context(), userID(c), sessionID); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}

	noContent(c)
}

// ListSessionMessages godoc
// @ID          listSessionMessages
// @Summary     List messages in a session
// @Description Returns a paginated list of messages for the given session, oldest first.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Chat
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       id             path    string  true  "Session ID (UUID)"           format(uuid)
// @Param       page           query   int     false "Page number"                 minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"              minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListSessionMessagesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chat/sessions/{id}/messages [get]
func (h *Handlers) ListSessionMessages(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("id")

	if _, err := uuid.Parse(sessionID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a UUID")
		return
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if p, ok := h.chatSvc.(*services.ChatPipeline); ok {
		db = p.DB
	}
	if db != nil {
		count, maxTS, err := repo.SessionMessagesStats(ctx, db, sessionID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"messages:%s:%d:%d"`, sessionID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := clampPagination(c)

	items, total, err := h.chatSvc.HistoryPage(ctx, userID(c), sessionID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ListSessionMessagesResponse{
		Messages:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// middlewareGetIdempotencyKey extracts an idempotency key if an upstream
// middleware has already validated/stashed it. The fallback behavior reads
// the "Idempotency-Key" header directly when no dedicated middleware exists.
func middlewareGetIdempotencyKey(c *gin.Context) (string, bool) {
	if v := strings.TrimSpace(c.GetHeader("Idempotency-Key")); v != "" {
		return v, true
	}
	return "", false
}
