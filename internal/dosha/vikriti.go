// Vikriti blending.
//
// Vikriti models the "constant personality, fluctuating state" design: each
// chat turn blends the stored prakriti (70%) with the impact profile of the
// detected emotion (30%). The result is written into that day's tracking row
// and never fed back into itself.
package dosha

// prakritiWeight and emotionWeight fix the trait/state blend ratio.
const (
	prakritiWeight = 0.7
	emotionWeight  = 0.3
)

// emotionImpacts maps emotion labels to the dosha distribution that emotion
// tends to aggravate. Each triple sums to ~1.0.
var emotionImpacts = map[string]Scores{
	"anxiety":  {Vata: 0.8, Pitta: 0.1, Kapha: 0.1},
	"fear":     {Vata: 0.7, Pitta: 0.2, Kapha: 0.1},
	"anger":    {Vata: 0.1, Pitta: 0.8, Kapha: 0.1},
	"sadness":  {Vata: 0.2, Pitta: 0.2, Kapha: 0.6},
	"lethargy": {Vata: 0.1, Pitta: 0.2, Kapha: 0.7},
	"joy":      {Vata: 0.3, Pitta: 0.4, Kapha: 0.3},
	"peace":    {Vata: 0.33, Pitta: 0.33, Kapha: 0.34},
	"neutral":  {Vata: 0.33, Pitta: 0.33, Kapha: 0.34},
}

// neutralImpact is the fallback profile for emotions outside the table.
var neutralImpact = emotionImpacts["neutral"]

// EmotionImpact returns the per-dosha impact weights for an emotion label.
// Unknown labels fall back to the neutral profile.
func EmotionImpact(emotion string) Scores {
	if s, ok := emotionImpacts[emotion]; ok {
		return s
	}
	return neutralImpact
}

// BlendVikriti computes the current imbalance: for each dosha,
// 0.7×prakriti + 0.3×emotion impact.
func BlendVikriti(prakriti Scores, emotion string) Scores {
	impact := EmotionImpact(emotion)
	return Scores{
		Vata:  prakritiWeight*prakriti.Vata + emotionWeight*impact.Vata,
		Pitta: prakritiWeight*prakriti.Pitta + emotionWeight*impact.Pitta,
		Kapha: prakritiWeight*prakriti.Kapha + emotionWeight*impact.Kapha,
	}
}
