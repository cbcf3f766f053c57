// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// DoshaTrackingEntry model.
//
// Tracking rows are keyed by (user_id, entry_date): every chat turn during a
// day writes into the same row via an upsert, so a day's entry always
// reflects the most recent turn rather than an accumulation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// DayKey formats t as the canonical tracking entry date (UTC, YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// UpsertTrackingEntry inserts the day's vikriti snapshot, or overwrites the
// scores, dominant label, intensity, and emotion of the existing row for
// (user_id, entry_date). Last writer wins within a day.
func UpsertTrackingEntry(ctx context.Context, db *gorm.DB, e *domain.DoshaTrackingEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"vata_score", "pitta_score", "kapha_score",
				"dominant_dosha", "intensity", "emotion", "updated_at",
			}),
		}).
		Create(e).Error
}

// GetTrackingEntry fetches the entry for (userID, day) or ErrNotFound.
func GetTrackingEntry(ctx context.Context, db *gorm.DB, userID, day string) (*domain.DoshaTrackingEntry, error) {
	var e domain.DoshaTrackingEntry
	err := db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, day).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CountTracking returns the total number of tracking entries for userID.
func CountTracking(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.DoshaTrackingEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListTrackingPage returns a page of tracking entries for userID, newest day
// first. The caller computes offset and limit.
func ListTrackingPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.DoshaTrackingEntry, error) {
	var out []domain.DoshaTrackingEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DominantDoshaCounts aggregates how often each dosha was dominant for
// userID on or after the since day key.
func DominantDoshaCounts(ctx context.Context, db *gorm.DB, userID, since string) (map[string]int64, error) {
	rows := []struct {
		DominantDosha string
		N             int64
	}{}
	err := db.WithContext(ctx).
		Model(&domain.DoshaTrackingEntry{}).
		Select("dominant_dosha, COUNT(*) AS n").
		Where("user_id = ? AND entry_date >= ?", userID, since).
		Group("dominant_dosha").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.DominantDosha] = r.N
	}
	return out, nil
}
