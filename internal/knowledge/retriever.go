// Package knowledge ranks the practice catalog (breathing, yoga, diet,
// herbs, meditation, ...) for the current chat turn. Scoring is a small
// additive heuristic over the dominant dosha, detected emotion, and time of
// day — deterministic and explainable by design, so "why this?" always has
// a concrete answer, unlike a learned ranker.
package knowledge

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/repo"
)

// Relevance weights. Dosha fit dominates, emotion fit next, timing last.
const (
	doshaPoints   = 3
	emotionPoints = 2
	timePoints    = 1

	// DefaultLimit caps how many items a single turn surfaces.
	DefaultLimit = 3
)

// Time-of-day buckets used by the catalog and TimeOfDay().
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
	TimeAny       = "any"
)

// Query names the context a retrieval runs in.
type Query struct {
	Emotion   string
	Dosha     dosha.Dosha
	TimeOfDay string
	Limit     int
}

// Retriever searches the persisted catalog.
type Retriever struct {
	DB *gorm.DB
}

// TimeOfDay buckets a wall-clock instant for retrieval scoring.
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return TimeMorning
	case h >= 12 && h < 17:
		return TimeAfternoon
	case h >= 17 && h < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// Score computes the additive relevance of one item for a query:
// +3 when the item balances the target dosha, +2 when it helps the target
// emotion, +1 when its preferred time matches (or is "any").
func Score(item domain.KnowledgeItem, q Query) int {
	s := 0
	if listContains(item.BalancesDoshas, string(q.Dosha)) {
		s += doshaPoints
	}
	if listContains(item.HelpsEmotions, q.Emotion) {
		s += emotionPoints
	}
	if item.TimeOfDay == TimeAny || (q.TimeOfDay != "" && item.TimeOfDay == q.TimeOfDay) {
		s += timePoints
	}
	return s
}

// Search returns up to q.Limit catalog items ranked by Score descending,
// ties broken by historical times-recommended descending. Candidates are
// pre-filtered in SQL to those matching the dosha or the emotion at all, so
// an item relevant on timing alone is never surfaced.
func (r *Retriever) Search(ctx context.Context, q Query) ([]domain.KnowledgeItem, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	candidates, err := repo.ListKnowledgeCandidates(ctx, r.DB, string(q.Dosha), q.Emotion)
	if err != nil {
		return nil, err
	}

	type scored struct {
		item  domain.KnowledgeItem
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, item := range candidates {
		// The LIKE pre-filter is substring-based; re-check exact list
		// membership so e.g. emotion "anger" does not ride in on "danger".
		if !listContains(item.BalancesDoshas, string(q.Dosha)) && !listContains(item.HelpsEmotions, q.Emotion) {
			continue
		}
		ranked = append(ranked, scored{item: item, score: Score(item, q)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].item.TimesRecommended > ranked[j].item.TimesRecommended
	})

	if len(ranked) > q.Limit {
		ranked = ranked[:q.Limit]
	}
	out := make([]domain.KnowledgeItem, len(ranked))
	for i, s := range ranked {
		out[i] = s.item
	}
	return out, nil
}

// listContains reports whether a comma-separated lowercase list holds the
// exact label.
func listContains(csv, label string) bool {
	if csv == "" || label == "" {
		return false
	}
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == label {
			return true
		}
	}
	return false
}
