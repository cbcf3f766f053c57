// Package services – TrackingService
//
// This file implements TrackingService, the read side of daily vikriti
// tracking: the paginated dashboard feed and the last-N-days summary with
// the user's current engagement streak.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/repo"
	"github.com/ayurmitra/wellness-backend/internal/streak"
)

const defaultSummaryDays = 7

// TrackingSummary aggregates recent tracking rows for the dashboard.
type TrackingSummary struct {
	Days          int                        `json:"days"`
	DominantCount map[string]int64           `json:"dominant_dosha_counts"`
	Today         *domain.DoshaTrackingEntry `json:"today,omitempty"`
	Streak        int                        `json:"streak"`
}

// TrackingService reads daily vikriti entries and the streak counter.
type TrackingService struct {
	DB      *gorm.DB
	Streaks *streak.Tracker

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

// ListPage returns a page of tracking entries, newest day first.
func (s *TrackingService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.DoshaTrackingEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountTracking(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.DoshaTrackingEntry{}, 0, nil
	}
	items, err := repo.ListTrackingPage(ctx, s.DB, userID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Summary returns dominant-dosha counts over the last `days` calendar days,
// today's entry if present, and the live streak. The streak read is best
// effort and degrades to 0.
func (s *TrackingService) Summary(ctx context.Context, userID string, days int) (*TrackingSummary, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	since := repo.DayKey(now.UTC().AddDate(0, 0, -days+1))
	counts, err := repo.DominantDoshaCounts(ctx, s.DB, userID, since)
	if err != nil {
		return nil, err
	}

	out := &TrackingSummary{Days: days, DominantCount: counts}

	if today, err := repo.GetTrackingEntry(ctx, s.DB, userID, repo.DayKey(now)); err == nil {
		out.Today = today
	}
	if n, err := s.Streaks.Current(ctx, userID, now); err == nil {
		out.Streak = n
	}
	return out, nil
}
