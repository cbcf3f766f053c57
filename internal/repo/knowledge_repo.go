// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// KnowledgeItem catalog.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// CreateKnowledgeItem inserts a catalog entry (used by seeding and admin tooling).
func CreateKnowledgeItem(ctx context.Context, db *gorm.DB, item *domain.KnowledgeItem) (*domain.KnowledgeItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListKnowledgeCandidates returns catalog entries whose balancing-dosha list
// contains dosha OR whose helps-with list contains emotion. Both labels are
// matched lowercase against the stored comma-separated lists; relevance
// scoring on the returned slice happens in knowledge.Retriever.
func ListKnowledgeCandidates(ctx context.Context, db *gorm.DB, dosha, emotion string) ([]domain.KnowledgeItem, error) {
	var out []domain.KnowledgeItem
	err := db.WithContext(ctx).
		Where("balances_doshas LIKE ? OR helps_emotions LIKE ?", "%"+dosha+"%", "%"+emotion+"%").
		Find(&out).Error
	return out, err
}

// GetKnowledgeItem fetches one catalog entry by ID.
func GetKnowledgeItem(ctx context.Context, db *gorm.DB, id string) (*domain.KnowledgeItem, error) {
	var item domain.KnowledgeItem
	if err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CountKnowledgeItems returns the catalog size (used to decide whether to seed).
func CountKnowledgeItems(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.KnowledgeItem{}).Count(&total).Error
	return total, err
}

// IncrementTimesRecommended bumps the usage counter for each given item.
func IncrementTimesRecommended(ctx context.Context, db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.KnowledgeItem{}).
		Where("id IN ?", ids).
		UpdateColumn("times_recommended", gorm.Expr("times_recommended + 1")).Error
}

// UpdateAvgEffectiveness folds a new 1–5 rating into an item's running
// average using the count of completed recommendations for that item.
// Read-modify-write without versioning; last writer wins by design for this
// analytics-adjacent counter.
func UpdateAvgEffectiveness(ctx context.Context, db *gorm.DB, itemID string, rating int) error {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.RecommendationRecord{}).
		Where("knowledge_item_id = ? AND effectiveness_rating IS NOT NULL", itemID).
		Count(&n).Error
	if err != nil {
		return err
	}
	item, err := GetKnowledgeItem(ctx, db, itemID)
	if err != nil {
		return err
	}
	// n includes the rating just written; guard against a racing delete.
	if n < 1 {
		n = 1
	}
	avg := item.AvgEffectiveness + (float64(rating)-item.AvgEffectiveness)/float64(n)
	return db.WithContext(ctx).
		Model(&domain.KnowledgeItem{}).
		Where("id = ?", itemID).
		UpdateColumn("avg_effectiveness", avg).Error
}
