// Package services – AssessmentService
//
// This file implements AssessmentService, which owns the dosha quiz flow:
// serving the versioned question set, validating and scoring submissions
// into a prakriti profile, and retrieving the latest profile on record.
// Assessments are immutable; resubmitting creates a new row and "latest
// wins" for profile lookups.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/repo"
)

// AssessmentService computes and stores prakriti profiles.
type AssessmentService struct {
	DB *gorm.DB
}

// Quiz returns the current question set.
func (s *AssessmentService) Quiz() []dosha.QuizQuestion {
	return dosha.Quiz()
}

// Submit validates the answers, computes the prakriti profile, and persists
// an immutable assessment row.
func (s *AssessmentService) Submit(ctx context.Context, userID string, answers []dosha.QuizAnswer) (*domain.DoshaAssessment, error) {
	tr := otel.Tracer("services/AssessmentService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("answers", len(answers)),
		),
	)
	defer span.End()

	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	for _, a := range answers {
		if !a.Dosha.Valid() {
			return nil, ErrInvalidAnswer
		}
	}

	profile, err := dosha.CalculatePrakriti(answers)
	if err != nil {
		if errors.Is(err, dosha.ErrNoAnswers) {
			return nil, ErrNoAnswers
		}
		return nil, err
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	return repo.CreateAssessment(ctx, s.DB, &domain.DoshaAssessment{
		UserID:         userID,
		AnswersJSON:    string(raw),
		VataScore:      profile.Scores.Vata,
		PittaScore:     profile.Scores.Pitta,
		KaphaScore:     profile.Scores.Kapha,
		PrimaryDosha:   profile.Primary,
		SecondaryDosha: profile.Secondary,
		Confidence:     profile.Confidence,
		QuizVersion:    dosha.QuizVersion,
	})
}

// Latest returns the most recent assessment for the user.
func (s *AssessmentService) Latest(ctx context.Context, userID string) (*domain.DoshaAssessment, error) {
	a, err := repo.LatestAssessment(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoAssessment
	}
	return a, err
}
