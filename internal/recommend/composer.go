// Package recommend turns ranked catalog items into user-facing suggestions
// with a one-sentence "why". Composition is deterministic string templating
// keyed on dosha and content category with default arms on both axes, so
// every recommendation stays auditable and consistent with the detected
// emotion even when the upstream language model is degraded.
package recommend

import (
	"fmt"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/knowledge"
)

// Suggestion pairs a catalog item with its composed justification, rank
// order preserved from retrieval.
type Suggestion struct {
	Item domain.KnowledgeItem
	Why  string
}

// templates holds the per-category phrasings for one dosha plus a fallback
// for categories without a dedicated arm. Each template takes the item
// title and the emotion clause, in that order.
type templates struct {
	byCategory map[string]string
	fallback   string
}

var doshaTemplates = map[dosha.Dosha]templates{
	dosha.Vata: {
		byCategory: map[string]string{
			knowledge.CategoryBreathing:  "%s is a grounding breath practice that helps settle %s",
			knowledge.CategoryYoga:       "%s brings slow, steady movement that anchors %s",
			knowledge.CategoryDiet:       "%s offers warm nourishment that eases %s",
			knowledge.CategoryHerb:       "%s is a grounding herb traditionally taken to calm %s",
			knowledge.CategoryMeditation: "%s gives a restless mind an anchor, softening %s",
			knowledge.CategoryLifestyle:  "%s adds grounding routine that steadies %s",
		},
		fallback: "%s has a grounding, warming quality that helps with %s",
	},
	dosha.Pitta: {
		byCategory: map[string]string{
			knowledge.CategoryBreathing:  "%s is a cooling breath practice that releases %s",
			knowledge.CategoryYoga:       "%s offers cooling, non-competitive movement that diffuses %s",
			knowledge.CategoryDiet:       "%s brings cooling foods that soothe %s",
			knowledge.CategoryHerb:       "%s is a cooling herb traditionally used to temper %s",
			knowledge.CategoryMeditation: "%s cultivates a calm, spacious mind, softening %s",
			knowledge.CategoryLifestyle:  "%s builds in downtime that cools %s",
		},
		fallback: "%s has a cooling, calming quality that helps with %s",
	},
	dosha.Kapha: {
		byCategory: map[string]string{
			knowledge.CategoryBreathing:  "%s is an energizing breath practice that lifts %s",
			knowledge.CategoryYoga:       "%s gets the body moving, shaking off %s",
			knowledge.CategoryDiet:       "%s lightens meals in a way that counters %s",
			knowledge.CategoryHerb:       "%s is a stimulating herb traditionally used against %s",
			knowledge.CategoryMeditation: "%s brings alert, engaged attention that cuts through %s",
			knowledge.CategoryLifestyle:  "%s adds invigorating routine that shifts %s",
		},
		fallback: "%s has an energizing, stimulating quality that helps with %s",
	},
}

const genericTemplate = "%s supports balance and can help with %s"

// emotionClause names the feeling inside the why sentence.
var emotionClause = map[string]string{
	"anxiety":  "your anxiety",
	"anger":    "your anger",
	"sadness":  "the heaviness you're feeling",
	"fear":     "your fear",
	"lethargy": "the sluggishness you're feeling",
	"joy":      "your uplifted mood",
	"peace":    "your sense of calm",
}

const defaultClause = "your current emotional state"

// Compose renders up to three suggestions for the given turn context,
// preserving retrieval rank. Each why is a single sentence.
func Compose(items []domain.KnowledgeItem, primary dosha.Dosha, emotion string) []Suggestion {
	if len(items) > knowledge.DefaultLimit {
		items = items[:knowledge.DefaultLimit]
	}
	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		out = append(out, Suggestion{Item: item, Why: why(item, primary, emotion)})
	}
	return out
}

func why(item domain.KnowledgeItem, primary dosha.Dosha, emotion string) string {
	clause, ok := emotionClause[emotion]
	if !ok {
		clause = defaultClause
	}

	tmpl := genericTemplate
	if set, ok := doshaTemplates[primary]; ok {
		tmpl = set.fallback
		if t, ok := set.byCategory[item.ContentType]; ok {
			tmpl = t
		}
	}
	return fmt.Sprintf(tmpl, item.Title, clause) + "."
}
