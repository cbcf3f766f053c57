// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// RecommendationRecord model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// CreateRecommendation inserts one recommendation row.
func CreateRecommendation(ctx context.Context, db *gorm.DB, r *domain.RecommendationRecord) (*domain.RecommendationRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecommendation fetches a recommendation by ID ensuring ownership.
func GetRecommendation(ctx context.Context, db *gorm.DB, id, userID string) (*domain.RecommendationRecord, error) {
	var r domain.RecommendationRecord
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CompleteRecommendation marks a recommendation completed with an optional
// effectiveness rating. Returns ErrNotFound when the row is missing or owned
// by someone else.
func CompleteRecommendation(ctx context.Context, db *gorm.DB, id, userID string, rating *int) error {
	updates := map[string]any{
		"completed":  true,
		"updated_at": time.Now().UTC(),
	}
	if rating != nil {
		updates["effectiveness_rating"] = *rating
	}
	res := db.WithContext(ctx).
		Model(&domain.RecommendationRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRecommendations returns the total recommendations for userID.
func CountRecommendations(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.RecommendationRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListRecommendationsPage returns a page of recommendations for userID,
// newest first, with the knowledge item preloaded.
func ListRecommendationsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.RecommendationRecord, error) {
	var out []domain.RecommendationRecord
	err := db.WithContext(ctx).
		Preload("KnowledgeItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
