package llm

import (
	"fmt"
	"strings"

	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/recommend"
	"github.com/ayurmitra/wellness-backend/internal/safety"
)

const systemPersona = "You are a warm, grounded Ayurvedic wellness companion. " +
	"Reply in 2-4 short sentences, conversational and specific. " +
	"Acknowledge how the user feels before advising. " +
	"Never diagnose medical conditions and never discourage professional care."

// PromptContext carries everything the prompt builder weaves into the
// system message for one turn.
type PromptContext struct {
	Nickname    string
	Primary     dosha.Dosha
	Emotion     string
	Suggestions []recommend.Suggestion
	CrisisLevel safety.Level
}

// BuildMessages assembles the completion conversation: a context-rich
// system message, recent history, then the current user text.
func BuildMessages(pc PromptContext, history []Message, userText string) []Message {
	var b strings.Builder
	b.WriteString(systemPersona)

	if pc.Nickname != "" {
		fmt.Fprintf(&b, "\nThe user goes by %s.", pc.Nickname)
	}
	if pc.Primary.Valid() {
		fmt.Fprintf(&b, "\nTheir dominant dosha right now is %s.", pc.Primary)
	}
	if pc.Emotion != "" {
		fmt.Fprintf(&b, "\nDetected emotion this turn: %s.", pc.Emotion)
	}
	if len(pc.Suggestions) > 0 {
		b.WriteString("\nWork these suggestions into the reply naturally:")
		for _, s := range pc.Suggestions {
			fmt.Fprintf(&b, "\n- %s: %s", s.Item.Title, s.Why)
		}
	}
	if pc.CrisisLevel == safety.LevelCritical || pc.CrisisLevel == safety.LevelHigh {
		b.WriteString("\nThe user may be in crisis. Respond with care, take them seriously, " +
			"and include these helplines verbatim:")
		for _, h := range safety.Helplines() {
			fmt.Fprintf(&b, "\n- %s: %s (%s)", h.Name, h.Phone, h.Hours)
		}
	}

	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: b.String()})
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: userText})
	return msgs
}
