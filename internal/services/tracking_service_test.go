package services

import (
	"context"
	"testing"
	"time"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/repo"
)

func seedTrackingDay(t *testing.T, s *TrackingService, userID, day, dominant string) {
	t.Helper()
	err := repo.UpsertTrackingEntry(context.Background(), s.DB, &domain.DoshaTrackingEntry{
		UserID: userID, EntryDate: day,
		VataScore: 0.5, PittaScore: 0.3, KaphaScore: 0.2,
		DominantDosha: dominant, Intensity: 5, Emotion: "anxiety",
	})
	if err != nil {
		t.Fatalf("seed %s: %v", day, err)
	}
}

func TestTrackingListPage_NewestFirst(t *testing.T) {
	s := &TrackingService{DB: newTestDB(t)}
	ctx := context.Background()

	seedTrackingDay(t, s, "u1", "2025-03-01", "vata")
	seedTrackingDay(t, s, "u1", "2025-03-02", "pitta")
	seedTrackingDay(t, s, "u1", "2025-03-03", "vata")

	items, total, err := s.ListPage(ctx, "u1", 1, 2)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("total=%d len=%d", total, len(items))
	}
	if items[0].EntryDate != "2025-03-03" || items[1].EntryDate != "2025-03-02" {
		t.Fatalf("order: %s, %s", items[0].EntryDate, items[1].EntryDate)
	}

	items, total, err = s.ListPage(ctx, "u1", 2, 2)
	if err != nil || total != 3 || len(items) != 1 {
		t.Fatalf("page 2: %v total=%d len=%d", err, total, len(items))
	}
}

func TestTrackingSummary_CountsAndToday(t *testing.T) {
	fixed := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	s := &TrackingService{DB: newTestDB(t), Now: func() time.Time { return fixed }}
	ctx := context.Background()

	seedTrackingDay(t, s, "u1", "2025-03-01", "vata")
	seedTrackingDay(t, s, "u1", "2025-03-02", "pitta")
	seedTrackingDay(t, s, "u1", "2025-03-03", "vata")

	sum, err := s.Summary(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.DominantCount["vata"] != 2 || sum.DominantCount["pitta"] != 1 {
		t.Fatalf("counts = %+v", sum.DominantCount)
	}
	if sum.Today == nil || sum.Today.EntryDate != "2025-03-03" {
		t.Fatalf("today = %+v", sum.Today)
	}
	if sum.Streak != 0 {
		t.Fatalf("streak without redis = %d, want 0", sum.Streak)
	}
}

func TestTrackingSummary_EmptyUser(t *testing.T) {
	s := &TrackingService{DB: newTestDB(t)}
	sum, err := s.Summary(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Days != defaultSummaryDays {
		t.Fatalf("days = %d", sum.Days)
	}
	if len(sum.DominantCount) != 0 || sum.Today != nil {
		t.Fatalf("sum = %+v", sum)
	}
}
