// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// DoshaAssessment model. Assessments are immutable: there is intentionally
// no update function, and "latest wins" for profile lookups.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// CreateAssessment inserts a completed quiz result.
func CreateAssessment(ctx context.Context, db *gorm.DB, a *domain.DoshaAssessment) (*domain.DoshaAssessment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// LatestAssessment returns the most recent assessment for userID, or
// ErrNotFound when the user has never completed the quiz.
func LatestAssessment(ctx context.Context, db *gorm.DB, userID string) (*domain.DoshaAssessment, error) {
	var a domain.DoshaAssessment
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CountAssessments returns the number of completed assessments for userID.
func CountAssessments(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.DoshaAssessment{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
