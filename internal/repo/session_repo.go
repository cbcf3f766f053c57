// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ConversationSession model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a session is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Note on the active-session invariant: "at most one active session per
// user" is maintained by query (GetActiveSession picks the newest open row),
// not by a DB constraint. Two racing first messages can therefore open two
// sessions; the newest one wins on subsequent lookups.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSession inserts a new ConversationSession for userID. StartedAt is
// set to UTC now and EndedAt is left NULL (active).
func CreateSession(ctx context.Context, db *gorm.DB, userID, sessionType string) (*domain.ConversationSession, error) {
	if sessionType == "" {
		sessionType = domain.SessionTypeChat
	}
	s := &domain.ConversationSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionType: sessionType,
		StartedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetActiveSession returns the newest open session (ended_at IS NULL) for
// userID, or ErrNotFound when the user has no active session.
func GetActiveSession(ctx context.Context, db *gorm.DB, userID string) (*domain.ConversationSession, error) {
	var s domain.ConversationSession
	err := db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession fetches a session by ID ensuring it belongs to userID.
func GetSession(ctx context.Context, db *gorm.DB, id, userID string) (*domain.ConversationSession, error) {
	var s domain.ConversationSession
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EndSession stamps ended_at on an open session owned by userID. If no open
// session matches (missing, foreign, or already ended), it returns ErrNotFound.
func EndSession(ctx context.Context, db *gorm.DB, id, userID string) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.ConversationSession{}).
		Where("id = ? AND user_id = ? AND ended_at IS NULL", id, userID).
		Update("ended_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
