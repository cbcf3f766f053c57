package llm

import (
	"fmt"
	"strings"

	"github.com/ayurmitra/wellness-backend/internal/safety"
)

// emotionOpeners acknowledge the detected feeling when the upstream model
// is unavailable. Keyed by emotion label; empty key is the neutral default.
var emotionOpeners = map[string]string{
	"anxiety":  "It sounds like there's a lot on your mind right now%s. That restlessness is real, and it can be settled.",
	"anger":    "I can hear the frustration in that%s. It makes sense, and there are ways to let the heat pass through.",
	"sadness":  "That sounds heavy%s. Thank you for putting it into words here.",
	"fear":     "It takes courage to say that%s. Let's find some steadiness together.",
	"lethargy": "Low-energy days happen%s. A small shift is often enough to get things moving again.",
	"joy":      "That's wonderful to hear%s! Let's keep that energy flowing.",
	"peace":    "It's good to hear you're feeling settled%s. Moments like this are worth protecting.",
	"":         "Thank you for sharing that%s. I'm here with you.",
}

// FallbackReply builds a deterministic reply from the detected emotion,
// the user's nickname, and the composed suggestions. It never fails.
func FallbackReply(pc PromptContext) string {
	if pc.CrisisLevel == safety.LevelCritical || pc.CrisisLevel == safety.LevelHigh {
		return CrisisReply(pc.Nickname)
	}

	addressed := ""
	if pc.Nickname != "" {
		addressed = ", " + pc.Nickname
	}
	opener, ok := emotionOpeners[pc.Emotion]
	if !ok {
		opener = emotionOpeners[""]
	}

	var b strings.Builder
	fmt.Fprintf(&b, opener, addressed)
	if len(pc.Suggestions) > 0 {
		b.WriteString(" Here's something that may help: ")
		b.WriteString(pc.Suggestions[0].Why)
		if len(pc.Suggestions) > 1 {
			b.WriteString(" When you have more space, also consider: ")
			b.WriteString(pc.Suggestions[1].Item.Title)
			b.WriteString(".")
		}
	}
	return b.String()
}

// CrisisReply is the safety-first reply for high and critical signals. It
// always carries at least one helpline phone number, whatever else fails.
func CrisisReply(nickname string) string {
	addressed := ""
	if nickname != "" {
		addressed = ", " + nickname
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I'm really glad you told me this%s, and I'm concerned about how you're feeling. ", addressed)
	b.WriteString("You don't have to carry this alone. Please reach out to someone who can support you right now:")
	for _, h := range safety.Helplines() {
		fmt.Fprintf(&b, "\n%s: %s (%s)", h.Name, h.Phone, h.Hours)
	}
	b.WriteString("\nIf you are in immediate danger, please contact local emergency services. I'm still here to listen.")
	return b.String()
}

// EnsureHelpline appends the crisis helplines to a reply that should carry
// them but does not. Guards model-drafted crisis replies.
func EnsureHelpline(reply string) string {
	for _, h := range safety.Helplines() {
		if strings.Contains(reply, h.Phone) {
			return reply
		}
	}
	var b strings.Builder
	b.WriteString(reply)
	b.WriteString("\n\nIf things feel like too much, these helplines are available:")
	for _, h := range safety.Helplines() {
		fmt.Fprintf(&b, "\n%s: %s (%s)", h.Name, h.Phone, h.Hours)
	}
	return b.String()
}
