// Package services – RecommendationService
//
// This file implements RecommendationService, which governs completion
// feedback on surfaced recommendations. Marking a recommendation complete
// optionally carries an effectiveness rating (1..5); ratings feed the
// knowledge item's running average so future retrieval tie-breaks favor
// what actually helped.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/repo"
)

// RecommendationService implements the use-cases around recommendation
// follow-up.
type RecommendationService struct {
	DB *gorm.DB
}

// Complete marks a recommendation done on behalf of userID, optionally
// recording how effective it was (1..5). Ownership is enforced; completing
// an already-completed recommendation overwrites the rating.
func (s *RecommendationService) Complete(ctx context.Context, userID, recommendationID string, rating *int) error {
	tr := otel.Tracer("services/RecommendationService")
	ctx, span := tr.Start(ctx, "Complete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("recommendation.id", recommendationID),
		),
	)
	defer span.End()

	if rating != nil && (*rating < 1 || *rating > 5) {
		return ErrInvalidRating
	}

	rec, err := repo.GetRecommendation(ctx, s.DB, recommendationID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecommendationNotFound
		}
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CompleteRecommendation(ctx, tx, recommendationID, userID, rating); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRecommendationNotFound
			}
			return err
		}
		if rating != nil {
			return repo.UpdateAvgEffectiveness(ctx, tx, rec.KnowledgeItemID, *rating)
		}
		return nil
	})
}

// ListPage returns a page of the user's past recommendations, newest first,
// with their knowledge items preloaded.
func (s *RecommendationService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.RecommendationRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountRecommendations(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.RecommendationRecord{}, 0, nil
	}
	items, err := repo.ListRecommendationsPage(ctx, s.DB, userID, (page-1)*pageSize, pageSize)
	return items, total, err
}
