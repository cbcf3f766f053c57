// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for SafetyEvent
// and EmotionAnalysisRecord rows, both of which are append-only and written
// on the best-effort path of the chat pipeline.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// CreateSafetyEvent inserts a crisis-signal audit row.
func CreateSafetyEvent(ctx context.Context, db *gorm.DB, e *domain.SafetyEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(e).Error
}

// CreateEmotionAnalysis inserts the classifier output for one user message.
// The message_id unique index makes retried writes fail rather than
// duplicate; callers treat that as a best-effort failure.
func CreateEmotionAnalysis(ctx context.Context, db *gorm.DB, rec *domain.EmotionAnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// CountSafetyEvents returns the number of safety events for userID.
func CountSafetyEvents(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.SafetyEvent{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
