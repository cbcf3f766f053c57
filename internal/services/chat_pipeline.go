// Package services – ChatPipeline
//
// This file implements ChatPipeline, the orchestrator that turns one
// incoming chat message into a reply, recommendations, and analytics rows.
// The steps run strictly sequentially (each feeds the next) with an
// asymmetric failure policy: resolving the session and persisting the
// user's own message are critical and abort the turn; every other
// persistence step is best-effort, logged and counted but never allowed to
// block the reply. Reply generation itself never fails: when the language
// model is unavailable the user gets a deterministic reply templated by
// their detected emotion and nickname, and crisis replies always carry a
// helpline phone number.
//
// Observability: Process is OpenTelemetry-instrumented; spans include user
// and session identifiers.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/dosha"
	"github.com/ayurmitra/wellness-backend/internal/emotion"
	"github.com/ayurmitra/wellness-backend/internal/knowledge"
	"github.com/ayurmitra/wellness-backend/internal/llm"
	"github.com/ayurmitra/wellness-backend/internal/recommend"
	"github.com/ayurmitra/wellness-backend/internal/repo"
	"github.com/ayurmitra/wellness-backend/internal/safety"
	"github.com/ayurmitra/wellness-backend/internal/streak"
)

const (
	defaultMaxMessageRunes = 4000
	defaultHistoryLimit    = 10
)

// ChatInput is one incoming chat turn.
type ChatInput struct {
	UserID    string
	Message   string
	InputType string
	AudioURL  string
}

// RecommendationView is one suggestion surfaced in the pipeline output.
type RecommendationView struct {
	RecommendationID string `json:"recommendation_id,omitempty"`
	KnowledgeID      string `json:"knowledge_id"`
	Title            string `json:"title"`
	ContentType      string `json:"content_type"`
	DurationMinutes  int    `json:"duration_minutes"`
	Why              string `json:"why"`
}

// ChatResult is the unified output of one processed turn.
type ChatResult struct {
	SessionID       string               `json:"session_id"`
	MessageID       string               `json:"message_id,omitempty"`
	Reply           string               `json:"ai_response_text"`
	Emotion         emotion.Result       `json:"emotion"`
	IsCrisis        bool                 `json:"is_crisis"`
	CrisisLevel     string               `json:"crisis_level"`
	Recommendations []RecommendationView `json:"recommendations"`
	Streak          int                  `json:"streak,omitempty"`
}

// ChatPipeline sequences classification, safety scanning, dosha tracking,
// knowledge retrieval, and reply generation for one message turn.
type ChatPipeline struct {
	DB         *gorm.DB
	Classifier *emotion.Classifier
	Retriever  *knowledge.Retriever
	LLM        *llm.Client
	Streaks    *streak.Tracker
	Log        zerolog.Logger

	// MaxMessageRunes caps incoming message length; 0 applies the default.
	MaxMessageRunes int
	// HistoryLimit bounds the conversation context sent to the model.
	HistoryLimit int

	// Now is swappable for tests; nil means time.Now.
	Now func() time.Time
}

// Process runs the full pipeline for one turn. See the package comment for
// the failure policy.
func (p *ChatPipeline) Process(ctx context.Context, in ChatInput) (*ChatResult, error) {
	tr := otel.Tracer("services/ChatPipeline")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.String("user.id", in.UserID)),
	)
	defer span.End()

	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	max := p.MaxMessageRunes
	if max <= 0 {
		max = defaultMaxMessageRunes
	}
	if utf8.RuneCountInString(text) > max {
		return nil, ErrMessageTooLong
	}
	inputType := in.InputType
	if inputType == "" {
		inputType = domain.InputTypeText
	}
	if inputType != domain.InputTypeText && inputType != domain.InputTypeVoice {
		return nil, ErrInvalidInputType
	}
	now := p.now()

	// Classify and scan locally. Neither can fail.
	emo := p.Classifier.Classify(ctx, text)
	scan := safety.Scan(text)
	if scan.IsCrisis {
		pipelineCrisisDetected.WithLabelValues(string(scan.Level)).Inc()
	}

	// Critical path: the turn has no home without a session.
	session, err := p.resolveSession(ctx, in.UserID)
	if err != nil {
		return nil, p.critical(StepResolveSession, in.UserID, err)
	}
	span.SetAttributes(attribute.String("session.id", session.ID))

	// Critical path: the user's own words must be on record.
	userMsg, err := p.persistMessage(ctx, session.ID, domain.RoleUser, text, inputType, in.AudioURL, "")
	if err != nil {
		return nil, p.critical(StepPersistUserMessage, in.UserID, err)
	}

	impact := dosha.EmotionImpact(emo.Primary)
	p.persistEmotion(ctx, userMsg.ID, emo, impact)

	if scan.IsCrisis {
		p.logSafetyEvent(ctx, in.UserID, userMsg.ID, scan)
	}

	profile := p.fetchProfile(ctx, in.UserID)

	var dominant dosha.Dosha
	if profile != nil {
		prakriti := dosha.Scores{Vata: profile.VataScore, Pitta: profile.PittaScore, Kapha: profile.KaphaScore}
		vikriti := dosha.BlendVikriti(prakriti, emo.Primary)
		dominant = vikriti.Dominant()
		p.persistTracking(ctx, in.UserID, vikriti, dominant, emo, now)
	}

	items := p.retrieveKnowledge(ctx, emo.Primary, dominant, now)
	suggestions := recommend.Compose(items, dominant, emo.Primary)

	history := p.fetchHistory(ctx, session.ID, userMsg.ID)

	nickname := p.nickname(ctx, in.UserID)
	reply := p.generateReply(ctx, nickname, dominant, emo, suggestions, scan, history, text)

	var assistantID string
	if m, err := p.persistMessage(ctx, session.ID, domain.RoleAssistant, reply, domain.InputTypeText, "", emo.Primary); err != nil {
		p.bestEffort(StepPersistAssistant, in.UserID, err)
	} else {
		assistantID = m.ID
	}

	views := p.persistRecommendations(ctx, in.UserID, session.ID, dominant, emo.Primary, suggestions)

	streakLen := p.updateStreak(ctx, in.UserID, now)

	return &ChatResult{
		SessionID:       session.ID,
		MessageID:       assistantID,
		Reply:           reply,
		Emotion:         emo,
		IsCrisis:        scan.IsCrisis,
		CrisisLevel:     string(scan.Level),
		Recommendations: views,
		Streak:          streakLen,
	}, nil
}

// EndSession closes an active session owned by the user.
func (p *ChatPipeline) EndSession(ctx context.Context, userID, sessionID string) error {
	err := repo.EndSession(ctx, p.DB, sessionID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// HistoryPage returns paginated messages for a session owned by the user.
func (p *ChatPipeline) HistoryPage(ctx context.Context, userID, sessionID string, page, pageSize int) ([]domain.ConversationMessage, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	if _, err := repo.GetSession(ctx, p.DB, sessionID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrSessionNotFound
		}
		return nil, 0, err
	}

	total, err := repo.CountMessages(p.DB.WithContext(ctx), sessionID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ConversationMessage{}, 0, nil
	}
	items, err := repo.ListMessagesPage(p.DB.WithContext(ctx), sessionID, (page-1)*pageSize, pageSize)
	return items, total, err
}

func (p *ChatPipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// resolveSession reuses the newest active session or starts a fresh one.
// Concurrent first messages can race into two active sessions; the query
// prefers the newest, so the stray one just idles until ended.
func (p *ChatPipeline) resolveSession(ctx context.Context, userID string) (*domain.ConversationSession, error) {
	s, err := repo.GetActiveSession(ctx, p.DB, userID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return repo.CreateSession(ctx, p.DB, userID, domain.SessionTypeChat)
}

// persistMessage appends one message with the next sequence number, both in
// one transaction so Seq stays gapless under concurrency.
func (p *ChatPipeline) persistMessage(ctx context.Context, sessionID, role, content, inputType, audioURL, tone string) (*domain.ConversationMessage, error) {
	var out *domain.ConversationMessage
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := repo.NextSeq(tx, sessionID)
		if err != nil {
			return err
		}
		m, err := repo.CreateMessage(tx, &domain.ConversationMessage{
			SessionID:   sessionID,
			Role:        role,
			Content:     content,
			Seq:         seq,
			InputType:   inputType,
			AudioURL:    audioURL,
			EmotionTone: tone,
		})
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

func (p *ChatPipeline) persistEmotion(ctx context.Context, messageID string, emo emotion.Result, impact dosha.Scores) {
	allJSON, _ := json.Marshal(emo.AllEmotions)
	err := repo.CreateEmotionAnalysis(ctx, p.DB, &domain.EmotionAnalysisRecord{
		MessageID:       messageID,
		PrimaryEmotion:  emo.Primary,
		Confidence:      emo.Confidence,
		AllEmotionsJSON: string(allJSON),
		Intensity:       emo.Intensity,
		VataImpact:      impact.Vata,
		PittaImpact:     impact.Pitta,
		KaphaImpact:     impact.Kapha,
	})
	if err != nil {
		p.bestEffort(StepPersistEmotion, messageID, err)
	}
}

// logSafetyEvent records a detected crisis signal. A failure here is logged
// loudly but never withholds the crisis-appropriate reply, which reads the
// detector result directly.
func (p *ChatPipeline) logSafetyEvent(ctx context.Context, userID, messageID string, scan safety.ScanResult) {
	err := repo.CreateSafetyEvent(ctx, p.DB, &domain.SafetyEvent{
		UserID:        userID,
		MessageID:     messageID,
		Level:         string(scan.Level),
		Keywords:      strings.Join(scan.DetectedKeywords, ","),
		Confidence:    scan.Confidence,
		HelplineShown: scan.Level == safety.LevelCritical || scan.Level == safety.LevelHigh,
	})
	if err != nil {
		pipelineStepFailures.WithLabelValues(StepLogSafetyEvent, "false").Inc()
		p.Log.Error().Err(err).
			Str("user_id", userID).
			Str("message_id", messageID).
			Str("level", string(scan.Level)).
			Msg("failed to record safety event")
	}
}

func (p *ChatPipeline) fetchProfile(ctx context.Context, userID string) *domain.DoshaAssessment {
	a, err := repo.LatestAssessment(ctx, p.DB, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			p.bestEffort(StepFetchProfile, userID, err)
		}
		return nil
	}
	return a
}

func (p *ChatPipeline) persistTracking(ctx context.Context, userID string, vikriti dosha.Scores, dominant dosha.Dosha, emo emotion.Result, now time.Time) {
	intensity := emo.Intensity
	if intensity < 1 {
		intensity = 1
	}
	err := repo.UpsertTrackingEntry(ctx, p.DB, &domain.DoshaTrackingEntry{
		UserID:        userID,
		EntryDate:     repo.DayKey(now),
		VataScore:     vikriti.Vata,
		PittaScore:    vikriti.Pitta,
		KaphaScore:    vikriti.Kapha,
		DominantDosha: string(dominant),
		Intensity:     intensity,
		Emotion:       emo.Primary,
	})
	if err != nil {
		p.bestEffort(StepPersistTracking, userID, err)
	}
}

func (p *ChatPipeline) retrieveKnowledge(ctx context.Context, emotionLabel string, dominant dosha.Dosha, now time.Time) []domain.KnowledgeItem {
	if p.Retriever == nil {
		return nil
	}
	items, err := p.Retriever.Search(ctx, knowledge.Query{
		Emotion:   emotionLabel,
		Dosha:     dominant,
		TimeOfDay: knowledge.TimeOfDay(now),
	})
	if err != nil {
		p.bestEffort(StepRetrieveKnowledge, emotionLabel, err)
		return nil
	}
	return items
}

// fetchHistory loads recent context for the prompt, excluding the message
// currently being answered.
func (p *ChatPipeline) fetchHistory(ctx context.Context, sessionID, currentMsgID string) []llm.Message {
	limit := p.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	msgs, err := repo.ListRecentMessages(p.DB.WithContext(ctx), sessionID, limit+1)
	if err != nil {
		p.bestEffort(StepFetchHistory, sessionID, err)
		return nil
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.ID == currentMsgID {
			continue
		}
		role := llm.RoleUser
		if m.Role == domain.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (p *ChatPipeline) nickname(ctx context.Context, userID string) string {
	u, err := repo.GetUser(ctx, p.DB, userID)
	if err != nil {
		return ""
	}
	return u.Nickname
}

// generateReply never fails. It prefers the language model, guards crisis
// replies with helpline numbers, and falls back to the deterministic
// emotion-templated reply on any model failure.
func (p *ChatPipeline) generateReply(ctx context.Context, nickname string, dominant dosha.Dosha, emo emotion.Result, suggestions []recommend.Suggestion, scan safety.ScanResult, history []llm.Message, text string) string {
	pc := llm.PromptContext{
		Nickname:    nickname,
		Primary:     dominant,
		Emotion:     emo.Primary,
		Suggestions: suggestions,
		CrisisLevel: scan.Level,
	}

	if p.LLM.Enabled() {
		out, err := p.LLM.Complete(ctx, llm.BuildMessages(pc, history, text))
		if err == nil {
			if scan.Level == safety.LevelCritical || scan.Level == safety.LevelHigh {
				return llm.EnsureHelpline(out)
			}
			return out
		}
		p.Log.Warn().Err(err).Str("emotion", emo.Primary).Msg("language model unavailable, using fallback reply")
	}
	pipelineFallbackReplies.Inc()
	return llm.FallbackReply(pc)
}

func (p *ChatPipeline) persistRecommendations(ctx context.Context, userID, sessionID string, dominant dosha.Dosha, emotionLabel string, suggestions []recommend.Suggestion) []RecommendationView {
	views := make([]RecommendationView, 0, len(suggestions))
	ids := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		view := RecommendationView{
			KnowledgeID:     s.Item.ID,
			Title:           s.Item.Title,
			ContentType:     s.Item.ContentType,
			DurationMinutes: s.Item.DurationMinutes,
			Why:             s.Why,
		}
		rec, err := repo.CreateRecommendation(ctx, p.DB, &domain.RecommendationRecord{
			UserID:          userID,
			SessionID:       sessionID,
			KnowledgeItemID: s.Item.ID,
			Emotion:         emotionLabel,
			Dosha:           string(dominant),
			Why:             s.Why,
		})
		if err != nil {
			p.bestEffort(StepPersistRecs, userID, err)
		} else {
			view.RecommendationID = rec.ID
			ids = append(ids, s.Item.ID)
		}
		views = append(views, view)
	}
	if len(ids) > 0 {
		if err := repo.IncrementTimesRecommended(ctx, p.DB, ids); err != nil {
			p.bestEffort(StepPersistRecs, userID, err)
		}
	}
	return views
}

func (p *ChatPipeline) updateStreak(ctx context.Context, userID string, now time.Time) int {
	n, err := p.Streaks.Touch(ctx, userID, now)
	if err != nil {
		p.bestEffort(StepUpdateStreak, userID, err)
		return 0
	}
	return n
}

// critical wraps an aborting persistence failure.
func (p *ChatPipeline) critical(step, subject string, err error) error {
	pipelineStepFailures.WithLabelValues(step, "true").Inc()
	perr := &PersistenceError{Step: step, Err: err}
	p.Log.Error().Err(err).Str("step", step).Str("subject", subject).Msg("critical pipeline persistence failure")
	return perr
}

// bestEffort logs and counts a swallowed persistence failure.
func (p *ChatPipeline) bestEffort(step, subject string, err error) {
	pipelineStepFailures.WithLabelValues(step, "false").Inc()
	p.Log.Warn().Err(err).Str("step", step).Str("subject", subject).Msg("best-effort pipeline step failed")
}
