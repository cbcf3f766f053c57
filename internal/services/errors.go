// Package services defines the business logic for the wellness companion:
// the chat pipeline, quiz assessments, recommendation feedback, and dosha
// tracking. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Chat pipeline errors.
var (
	// ErrEmptyMessage is returned when a chat turn contains no text after
	// trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a chat turn exceeds the maximum
	// configured rune length.
	ErrMessageTooLong = errors.New("message too long")

	// ErrInvalidInputType is returned when the input modality is neither
	// "text" nor "voice".
	ErrInvalidInputType = errors.New("input type must be text or voice")

	// ErrSessionNotFound indicates that the requested session does not exist
	// or is not accessible to the current user.
	ErrSessionNotFound = errors.New("session not found")
)

// Assessment errors.
var (
	// ErrNoAnswers is returned when a quiz submission carries no answers.
	ErrNoAnswers = errors.New("assessment has no answers")

	// ErrInvalidAnswer is returned when a quiz answer references an unknown
	// dosha or tier.
	ErrInvalidAnswer = errors.New("answer has invalid dosha or tier")

	// ErrNoAssessment indicates the user has never completed the quiz.
	ErrNoAssessment = errors.New("no assessment on record")
)

// Recommendation errors.
var (
	// ErrRecommendationNotFound indicates that the requested recommendation
	// does not exist or is not accessible to the current user.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrInvalidRating is returned when an effectiveness rating is outside
	// the allowed 1..5 range.
	ErrInvalidRating = errors.New("effectiveness rating must be between 1 and 5")
)
