// Canonical dosha quiz content.
//
// The question set is fixed and versioned; clients compare QuizVersion to
// detect content changes. Quiz answers reference questions by ID and options
// by index, and each option carries the dosha it maps to. The canonical set
// has 15 questions: 8 physical, 4 physiological, 3 behavioral.
package dosha

// QuizVersion is the semantic version of the canonical question set below.
// Bump it whenever question text, ordering, or option mapping changes.
const QuizVersion = "1.2.0"

// QuizOption is one selectable answer mapped to a dosha.
type QuizOption struct {
	Text   string  `json:"text"`
	Dosha  Dosha   `json:"dosha"`
	Weight float64 `json:"weight"`
}

// QuizQuestion is one question of the constitutional quiz.
type QuizQuestion struct {
	ID      string       `json:"id"`
	Tier    Tier         `json:"tier"`
	Text    string       `json:"text"`
	Options []QuizOption `json:"options"`
}

// Quiz returns the canonical question set. The returned slice is freshly
// allocated so callers may not mutate shared state.
func Quiz() []QuizQuestion {
	out := make([]QuizQuestion, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}

func opts(vata, pitta, kapha string) []QuizOption {
	return []QuizOption{
		{Text: vata, Dosha: Vata, Weight: 1.0},
		{Text: pitta, Dosha: Pitta, Weight: 1.0},
		{Text: kapha, Dosha: Kapha, Weight: 1.0},
	}
}

var quizQuestions = []QuizQuestion{
	// Physical (8)
	{ID: "q01", Tier: TierPhysical, Text: "How would you describe your body frame?",
		Options: opts("Thin and light; I find it hard to gain weight", "Medium and muscular with good definition", "Broad and solid; I gain weight easily")},
	{ID: "q02", Tier: TierPhysical, Text: "What is your skin usually like?",
		Options: opts("Dry, rough, or cool to the touch", "Warm, slightly oily, prone to redness", "Thick, smooth, and moist")},
	{ID: "q03", Tier: TierPhysical, Text: "How would you describe your hair?",
		Options: opts("Dry, frizzy, or brittle", "Fine and straight, early greying or thinning", "Thick, wavy, and lustrous")},
	{ID: "q04", Tier: TierPhysical, Text: "What are your joints like?",
		Options: opts("Prominent and cracking", "Flexible and warm", "Large, well-padded, and stable")},
	{ID: "q05", Tier: TierPhysical, Text: "How do your hands and feet usually feel?",
		Options: opts("Cold and dry", "Warm, sometimes sweaty", "Cool and slightly damp")},
	{ID: "q06", Tier: TierPhysical, Text: "How would you describe your eyes?",
		Options: opts("Small, active, often dry", "Sharp and penetrating, light-sensitive", "Large, calm, with thick lashes")},
	{ID: "q07", Tier: TierPhysical, Text: "What is your walking pace?",
		Options: opts("Quick and light, sometimes erratic", "Purposeful and determined", "Slow, steady, and graceful")},
	{ID: "q08", Tier: TierPhysical, Text: "How is your weight distributed?",
		Options: opts("Hard to keep weight on", "Evenly; weight stays stable with effort", "Weight settles easily, hard to lose")},

	// Physiological (4)
	{ID: "q09", Tier: TierPhysiological, Text: "How is your appetite?",
		Options: opts("Irregular; I forget meals then snack", "Strong and sharp; I get irritable when hungry", "Steady but mild; I can skip meals comfortably")},
	{ID: "q10", Tier: TierPhysiological, Text: "How do you sleep?",
		Options: opts("Light and easily interrupted", "Sound but short; I wake ready to go", "Deep and long; waking up is slow")},
	{ID: "q11", Tier: TierPhysiological, Text: "How is your digestion?",
		Options: opts("Variable, gassy, or bloated", "Fast and intense, prone to heartburn", "Slow and heavy after meals")},
	{ID: "q12", Tier: TierPhysiological, Text: "How do you respond to weather?",
		Options: opts("I dislike cold and wind", "I dislike heat and strong sun", "I dislike damp and chill")},

	// Behavioral (3)
	{ID: "q13", Tier: TierBehavioral, Text: "How do you learn new things?",
		Options: opts("Quickly, but I forget quickly too", "At a focused, competitive pace", "Slowly, but retention is excellent")},
	{ID: "q14", Tier: TierBehavioral, Text: "How do you react under stress?",
		Options: opts("I worry and my mind races", "I get irritated or critical", "I withdraw and go quiet")},
	{ID: "q15", Tier: TierBehavioral, Text: "How do you handle routine?",
		Options: opts("I resist it; variety energizes me", "I like structure that serves my goals", "I settle into routine and keep it")},
}
