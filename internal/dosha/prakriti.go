// Prakriti calculation.
//
// Each quiz answer names a dosha, a weight, and the question tier it came
// from. Physical traits dominate the blend because they are considered the
// most diagnostic and least mutable; behavioral traits contribute least.
package dosha

import "errors"

// Tier classifies a quiz question by how stable the trait it probes is.
type Tier string

// Question tiers in decreasing diagnostic weight.
const (
	TierPhysical      Tier = "physical"
	TierPhysiological Tier = "physiological"
	TierBehavioral    Tier = "behavioral"
)

// tierWeights fixes the per-tier contribution multipliers.
var tierWeights = map[Tier]float64{
	TierPhysical:      0.50,
	TierPhysiological: 0.30,
	TierBehavioral:    0.20,
}

// Weight returns the contribution multiplier for the tier. Unknown tiers
// weigh as behavioral, the most conservative choice.
func (t Tier) Weight() float64 {
	if w, ok := tierWeights[t]; ok {
		return w
	}
	return tierWeights[TierBehavioral]
}

// QuizAnswer is one selected quiz option: the dosha the option maps to, the
// option's weight (typically 1.0), and the tier of the question it answers.
type QuizAnswer struct {
	Dosha  Dosha   `json:"dosha"`
	Weight float64 `json:"weight"`
	Tier   Tier    `json:"tier"`
}

// Profile is the computed prakriti: normalized scores, the two leading
// doshas as display labels, and a confidence derived from their separation.
type Profile struct {
	Scores     Scores  `json:"scores"`
	Primary    string  `json:"primary"`
	Secondary  string  `json:"secondary"`
	Confidence float64 `json:"confidence"`
}

// ErrNoAnswers is returned when a prakriti calculation receives no answers.
var ErrNoAnswers = errors.New("no quiz answers provided")

// CalculatePrakriti folds quiz answers into a normalized constitutional
// profile. Contribution per answer = weight × tier weight; raw sums are then
// normalized so the three scores total 1.0.
//
// Confidence = min(0.99, 0.50 + 2×(primary − secondary)): a wide gap between
// the two leading doshas yields high confidence, a near-tie stays close to
// 0.50.
func CalculatePrakriti(answers []QuizAnswer) (Profile, error) {
	if len(answers) == 0 {
		return Profile{}, ErrNoAnswers
	}

	var raw Scores
	for _, a := range answers {
		w := a.Weight
		if w <= 0 {
			w = 1.0
		}
		contribution := w * a.Tier.Weight()
		switch a.Dosha {
		case Vata:
			raw.Vata += contribution
		case Pitta:
			raw.Pitta += contribution
		case Kapha:
			raw.Kapha += contribution
		}
	}
	if raw.Sum() == 0 {
		return Profile{}, ErrNoAnswers
	}

	scores := raw.Normalized()
	order := scores.ranked()

	confidence := 0.50 + 2*(scores.Get(order[0])-scores.Get(order[1]))
	if confidence > 0.99 {
		confidence = 0.99
	}

	return Profile{
		Scores:     scores,
		Primary:    order[0].Title(),
		Secondary:  order[1].Title(),
		Confidence: confidence,
	}, nil
}
