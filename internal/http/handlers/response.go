// Package handlers implements the HTTP layer of the wellness API: chat
// turns, dosha assessments, progress tracking and recommendation feedback.
//
// Every endpoint speaks the same envelope. Failures are an ErrorResponse
// with a stable machine-readable `code`; successes serialize the payload
// as-is. For example:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "session not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurmitra/wellness-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by every endpoint. Code is
// one of the errors.go constants; RequestID echoes X-Request-ID so a client
// report can be matched to server logs.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"session not found"`
}

// fail aborts the request with a structured error. Server-side failures
// (5xx) are additionally logged through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail lets router-level code (NoRoute, NoMethod, rate limiting) emit the
// same envelope as the handlers themselves.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
