// Package emotion maps free text to an emotion label, confidence, and
// intensity. A remote classifier is tried first under a bounded timeout; any
// failure (timeout, network, non-2xx, open breaker) falls back to a
// deterministic keyword scan, so classification never fails and never blocks
// the chat pipeline on a remote service.
//
// Like the rest of the leaf components, this package does no logging;
// callers decide what a fallback means operationally.
package emotion

import (
	"context"
	"strings"
	"time"
)

// Result is the classification outcome for one piece of text.
type Result struct {
	Primary     string             `json:"primary_emotion"`
	Confidence  float64            `json:"confidence"`
	AllEmotions map[string]float64 `json:"all_emotions"`
	Intensity   int                `json:"intensity"` // 1..10
}

// Remote abstracts the external emotion classification service.
type Remote interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// Fallback constants for the keyword path.
const (
	fallbackConfidence = 0.6
	fallbackIntensity  = 5

	neutralLabel      = "neutral"
	neutralConfidence = 0.5
	neutralIntensity  = 3

	defaultRemoteTimeout = 5 * time.Second
)

// keyword table, checked in order; the first label with a hit wins.
var keywordTable = []struct {
	label    string
	keywords []string
}{
	{"anxiety", []string{"anxious", "anxiety", "worried", "worry", "nervous", "panic", "overwhelmed", "stressed", "stress", "restless"}},
	{"anger", []string{"angry", "anger", "furious", "irritated", "annoyed", "frustrated", "rage", "mad at"}},
	{"sadness", []string{"sad", "sadness", "depressed", "down", "unhappy", "crying", "lonely", "grief", "miserable", "hopeless"}},
	{"joy", []string{"happy", "joy", "excited", "great", "wonderful", "delighted", "grateful", "amazing"}},
	{"fear", []string{"afraid", "scared", "fear", "terrified", "frightened", "dread"}},
	{"peace", []string{"calm", "peaceful", "relaxed", "content", "serene", "at ease"}},
	{"lethargy", []string{"tired", "exhausted", "sluggish", "lazy", "heavy", "unmotivated", "drained", "no energy"}},
}

// Classifier resolves the primary emotion of a message. The zero value is
// usable and classifies purely by keywords.
type Classifier struct {
	// Remote, when set, is tried before the keyword fallback.
	Remote Remote
	// Timeout bounds the remote call; defaults to 5s.
	Timeout time.Duration
}

// Classify returns an emotion result for text. It never returns an error:
// remote failures degrade to the keyword scan, and text with no keyword hits
// classifies as neutral.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	if c.Remote != nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = defaultRemoteTimeout
		}
		rctx, cancel := context.WithTimeout(ctx, timeout)
		res, err := c.Remote.Classify(rctx, text)
		cancel()
		if err == nil && res.Primary != "" {
			return clamp(res)
		}
	}
	return KeywordClassify(text)
}

// KeywordClassify is the deterministic local fallback: a fixed table of
// emotion keyword lists scanned in priority order. The first label with a
// hit is returned with fixed confidence 0.6 and intensity 5; no hit yields
// neutral/0.5/3. Empty input is neutral.
func KeywordClassify(text string) Result {
	lower := strings.ToLower(text)
	for _, row := range keywordTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return Result{
					Primary:     row.label,
					Confidence:  fallbackConfidence,
					AllEmotions: map[string]float64{row.label: fallbackConfidence},
					Intensity:   fallbackIntensity,
				}
			}
		}
	}
	return Result{
		Primary:     neutralLabel,
		Confidence:  neutralConfidence,
		AllEmotions: map[string]float64{neutralLabel: neutralConfidence},
		Intensity:   neutralIntensity,
	}
}

// clamp bounds remote-provided fields to their documented ranges.
func clamp(r Result) Result {
	if r.Intensity < 1 {
		r.Intensity = 1
	}
	if r.Intensity > 10 {
		r.Intensity = 10
	}
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	if r.AllEmotions == nil {
		r.AllEmotions = map[string]float64{r.Primary: r.Confidence}
	}
	return r
}
