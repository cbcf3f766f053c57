package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayurmitra/wellness-backend/internal/breaker"
	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/recommend"
	"github.com/ayurmitra/wellness-backend/internal/safety"
)

func TestComplete_HappyPath(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq completionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  Take a slow breath.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "wellness-1", 5*time.Second, nil)
	out, err := c.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "be kind"},
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Take a slow breath." {
		t.Fatalf("out = %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotReq.Model != "wellness-1" || len(gotReq.Messages) != 2 {
		t.Fatalf("request = %+v", gotReq)
	}
}

func TestComplete_UpstreamErrorAndEmpty(t *testing.T) {
	status := http.StatusBadGateway
	body := `{}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "m", time.Second, nil)

	if _, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}); err == nil {
		t.Fatal("expected error on 502")
	}

	status = http.StatusOK
	body = `{"choices":[{"message":{"content":"   "}}]}`
	if _, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}); err != ErrEmptyCompletion {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestComplete_Disabled(t *testing.T) {
	var c *Client
	if c.Enabled() {
		t.Fatal("nil client reported enabled")
	}
	c = NewClient("", "", "m", time.Second, nil)
	if _, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}}); err == nil {
		t.Fatal("expected error from disabled client")
	}
}

func TestComplete_BreakerOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reg := breaker.NewRegistry(breaker.Settings{
		Timeout:             time.Minute,
		ConsecutiveFailures: 2,
	})
	c := NewClient(srv.URL, "", "m", time.Second, reg)

	msgs := []Message{{Role: RoleUser, Content: "x"}}
	for i := 0; i < 2; i++ {
		if _, err := c.Complete(context.Background(), msgs); err == nil {
			t.Fatalf("call %d: expected upstream error", i)
		}
	}

	_, err := c.Complete(context.Background(), msgs)
	if err == nil || !strings.Contains(err.Error(), "circuit open") {
		t.Fatalf("err = %v, want circuit open", err)
	}
}

func TestBuildMessages_ContextAndOrder(t *testing.T) {
	pc := PromptContext{
		Nickname: "Asha",
		Primary:  dosha.Vata,
		Emotion:  "anxiety",
		Suggestions: []recommend.Suggestion{
			{Item: itemTitled("Nadi Shodhana"), Why: "Nadi Shodhana is a grounding breath practice that helps settle your anxiety."},
		},
	}
	history := []Message{
		{Role: RoleUser, Content: "earlier"},
		{Role: RoleAssistant, Content: "noted"},
	}

	msgs := BuildMessages(pc, history, "I can't sleep")
	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Role != RoleSystem {
		t.Fatalf("first role = %q", msgs[0].Role)
	}
	sys := msgs[0].Content
	for _, frag := range []string{"Asha", "vata", "anxiety", "Nadi Shodhana"} {
		if !strings.Contains(sys, frag) {
			t.Fatalf("system prompt missing %q:\n%s", frag, sys)
		}
	}
	if msgs[3].Role != RoleUser || msgs[3].Content != "I can't sleep" {
		t.Fatalf("last message = %+v", msgs[3])
	}
}

func TestBuildMessages_CrisisIncludesHelplines(t *testing.T) {
	msgs := BuildMessages(PromptContext{CrisisLevel: safety.LevelCritical}, nil, "x")
	sys := msgs[0].Content
	for _, h := range safety.Helplines() {
		if !strings.Contains(sys, h.Phone) {
			t.Fatalf("system prompt missing helpline %s", h.Name)
		}
	}
}

func TestFallbackReply_EmotionAndSuggestions(t *testing.T) {
	pc := PromptContext{
		Nickname: "Ravi",
		Emotion:  "anxiety",
		Suggestions: []recommend.Suggestion{
			{Item: itemTitled("Nadi Shodhana"), Why: "Nadi Shodhana is a grounding breath practice that helps settle your anxiety."},
			{Item: itemTitled("Grounding evening yoga"), Why: "second"},
		},
	}
	out := FallbackReply(pc)
	for _, frag := range []string{"Ravi", "on your mind", "Nadi Shodhana", "Grounding evening yoga"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("reply missing %q:\n%s", frag, out)
		}
	}
}

func TestFallbackReply_UnknownEmotionUsesNeutral(t *testing.T) {
	out := FallbackReply(PromptContext{Emotion: "bewilderment"})
	if !strings.Contains(out, "Thank you for sharing") {
		t.Fatalf("unexpected neutral reply: %q", out)
	}
}

func TestCrisisReply_AlwaysCarriesPhoneNumbers(t *testing.T) {
	for _, level := range []safety.Level{safety.LevelCritical, safety.LevelHigh} {
		out := FallbackReply(PromptContext{Nickname: "Mira", CrisisLevel: level})
		found := false
		for _, h := range safety.Helplines() {
			if strings.Contains(out, h.Phone) {
				found = true
			}
		}
		if !found {
			t.Fatalf("level %s reply has no helpline phone:\n%s", level, out)
		}
	}
}

func itemTitled(title string) domain.KnowledgeItem {
	return domain.KnowledgeItem{Title: title}
}

func TestEnsureHelpline(t *testing.T) {
	plain := "I hear you."
	out := EnsureHelpline(plain)
	if out == plain {
		t.Fatal("helplines not appended")
	}
	if again := EnsureHelpline(out); again != out {
		t.Fatal("helplines appended twice")
	}
}
