// Package domain defines the persistence models for the wellness companion:
// users, dosha assessments, daily dosha tracking, conversation sessions and
// messages, emotion analyses, the knowledge catalog, recommendations, and
// safety events. These types are mapped with GORM and form the core data
// layer of the application.
package domain

import (
	"time"
)

// Account status values for User.Status.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User represents an account holder. Users are never hard-deleted; an
// account is retired by flipping Status to "disabled" so that owned rows
// (assessments, sessions, tracking) remain referentially intact.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Nickname: preferred display name, used in fallback replies.
//   - Email: unique contact address.
//   - Status: "active" or "disabled".
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Nickname  string    `json:"nickname"   gorm:"type:varchar(64);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','disabled')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// DoshaAssessment is one completed constitutional quiz submission. Rows are
// immutable once written; a user may accumulate many, and "latest wins" for
// profile lookups. The three scores are normalized to sum to 1.0.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: owner (indexed).
//   - AnswersJSON: the raw quiz answers, serialized for audit.
//   - VataScore / PittaScore / KaphaScore: normalized prakriti scores.
//   - PrimaryDosha / SecondaryDosha: title-cased labels of the two highest scores.
//   - Confidence: [0.50, 0.99]; wider top-two separation means higher confidence.
//   - QuizVersion: semantic version of the question set answered.
type DoshaAssessment struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID         string    `json:"user_id"         gorm:"type:char(36);not null;index:idx_user_assessments"`
	AnswersJSON    string    `json:"-"               gorm:"type:text;not null"`
	VataScore      float64   `json:"vata_score"      gorm:"not null"`
	PittaScore     float64   `json:"pitta_score"     gorm:"not null"`
	KaphaScore     float64   `json:"kapha_score"     gorm:"not null"`
	PrimaryDosha   string    `json:"primary_dosha"   gorm:"type:varchar(16);not null"`
	SecondaryDosha string    `json:"secondary_dosha" gorm:"type:varchar(16);not null"`
	Confidence     float64   `json:"confidence"      gorm:"not null"`
	QuizVersion    string    `json:"quiz_version"    gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for DoshaAssessment.
func (DoshaAssessment) TableName() string { return "dosha_assessments" }

// DoshaTrackingEntry is the authoritative vikriti snapshot for one user on
// one calendar day. Chat turns upsert into the same row: repeated writes on
// a day overwrite, they never accumulate.
//
// EntryDate is stored as "YYYY-MM-DD" (UTC) so the (user, day) uniqueness is
// a plain composite index rather than a date-truncation expression.
type DoshaTrackingEntry struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"user_id"        gorm:"type:char(36);not null;uniqueIndex:ux_tracking_user_day,priority:1"`
	EntryDate     string    `json:"entry_date"     gorm:"type:char(10);not null;uniqueIndex:ux_tracking_user_day,priority:2"`
	VataScore     float64   `json:"vata_score"     gorm:"not null"`
	PittaScore    float64   `json:"pitta_score"    gorm:"not null"`
	KaphaScore    float64   `json:"kapha_score"    gorm:"not null"`
	DominantDosha string    `json:"dominant_dosha" gorm:"type:varchar(16);not null"`
	Intensity     int       `json:"intensity"      gorm:"not null;check:intensity BETWEEN 1 AND 10"`
	Emotion       string    `json:"emotion"        gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for DoshaTrackingEntry.
func (DoshaTrackingEntry) TableName() string { return "dosha_tracking_entries" }

// Session type values for ConversationSession.SessionType.
const (
	SessionTypeChat  = "chat"
	SessionTypeVoice = "voice"
)

// ConversationSession is a bounded interaction window. A session is "active"
// while EndedAt is NULL; at most one active session per user is maintained by
// query (there is intentionally no DB constraint, see services.ChatPipeline).
type ConversationSession struct {
	ID          string     `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string     `json:"user_id"      gorm:"type:char(36);not null;index:idx_user_sessions"`
	SessionType string     `json:"session_type" gorm:"type:varchar(16);not null;default:'chat'"`
	StartedAt   time.Time  `json:"started_at"   gorm:"not null"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the database table name for ConversationSession.
func (ConversationSession) TableName() string { return "conversation_sessions" }

// Message roles and input modalities.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	InputTypeText  = "text"
	InputTypeVoice = "voice"
)

// ConversationMessage is a single utterance inside a session. Every exchange
// produces two rows (user turn, then assistant turn), each carrying a strictly
// increasing Seq within its session. Rows are append-only.
//
// Fields:
//   - Seq: 1-based position within the session; user and assistant turns of
//     one exchange occupy consecutive values.
//   - InputType: "text" or "voice"; AudioURL references the uploaded clip for
//     voice turns.
//   - EmotionTone: for assistant turns only, the emotion the reply was tuned to.
type ConversationMessage struct {
	ID          string    `json:"id"         gorm:"type:char(36);primaryKey"`
	SessionID   string    `json:"session_id" gorm:"type:char(36);not null;index:idx_session_msgs,priority:1"`
	Role        string    `json:"role"       gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Content     string    `json:"content"    gorm:"type:text;not null"`
	Seq         int       `json:"seq"        gorm:"not null;index:idx_session_msgs,priority:2"`
	InputType   string    `json:"input_type" gorm:"type:varchar(16);not null;default:'text'"`
	AudioURL    string    `json:"audio_url,omitempty"    gorm:"type:varchar(512)"`
	EmotionTone string    `json:"emotion_tone,omitempty" gorm:"type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at"`

	// Session is the parent window. Messages are cascade-deleted if their
	// session is removed.
	Session ConversationSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ConversationMessage.
func (ConversationMessage) TableName() string { return "conversation_messages" }

// EmotionAnalysisRecord captures the classifier output for one user message,
// 1:1 with ConversationMessage. Writes are best-effort: a failure is logged
// but never blocks the companion's reply.
type EmotionAnalysisRecord struct {
	ID              string    `json:"id"              gorm:"type:char(36);primaryKey"`
	MessageID       string    `json:"message_id"      gorm:"type:char(36);not null;uniqueIndex"`
	PrimaryEmotion  string    `json:"primary_emotion" gorm:"type:varchar(32);not null"`
	Confidence      float64   `json:"confidence"      gorm:"not null"`
	AllEmotionsJSON string    `json:"-"               gorm:"type:text"`
	Intensity       int       `json:"intensity"       gorm:"not null;check:intensity BETWEEN 1 AND 10"`
	VataImpact      float64   `json:"vata_impact"`
	PittaImpact     float64   `json:"pitta_impact"`
	KaphaImpact     float64   `json:"kapha_impact"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for EmotionAnalysisRecord.
func (EmotionAnalysisRecord) TableName() string { return "emotion_analyses" }

// KnowledgeItem is one entry of the static practice catalog (breathing, yoga,
// diet, herbs, meditation, ...). Read-mostly; the usage counters are bumped
// whenever the item is recommended.
//
// The dosha and emotion lists are stored as comma-separated lowercase labels
// ("vata,pitta") so candidate pre-filtering stays a simple LIKE query; final
// relevance scoring happens in Go (see knowledge.Retriever).
type KnowledgeItem struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	ContentType      string    `json:"content_type"      gorm:"type:varchar(32);not null;index"`
	Title            string    `json:"title"             gorm:"type:varchar(255);not null"`
	Description      string    `json:"description"       gorm:"type:text"`
	BalancesDoshas   string    `json:"balances_doshas"   gorm:"type:varchar(64);not null"`
	AggravatesDoshas string    `json:"aggravates_doshas" gorm:"type:varchar(64)"`
	HelpsEmotions    string    `json:"helps_emotions"    gorm:"type:varchar(255)"`
	TimeOfDay        string    `json:"time_of_day"       gorm:"type:varchar(16);not null;default:'any'"`
	DurationMinutes  int       `json:"duration_minutes"  gorm:"not null;default:0"`
	TimesRecommended int64     `json:"times_recommended" gorm:"not null;default:0"`
	AvgEffectiveness float64   `json:"avg_effectiveness" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for KnowledgeItem.
func (KnowledgeItem) TableName() string { return "knowledge_items" }

// RecommendationRecord is one knowledge item surfaced to a user during a chat
// turn, with the emotional/dosha context that triggered it and the composed
// justification. Completion feedback is written back later by the user.
type RecommendationRecord struct {
	ID                  string    `json:"id"                gorm:"type:char(36);primaryKey"`
	UserID              string    `json:"user_id"           gorm:"type:char(36);not null;index:idx_user_recs"`
	SessionID           string    `json:"session_id"        gorm:"type:char(36);not null;index"`
	KnowledgeItemID     string    `json:"knowledge_item_id" gorm:"type:char(36);not null;index"`
	Emotion             string    `json:"emotion"           gorm:"type:varchar(32);not null"`
	Dosha               string    `json:"dosha"             gorm:"type:varchar(16);not null"`
	Why                 string    `json:"why"               gorm:"type:text;not null"`
	Completed           bool      `json:"completed"         gorm:"not null;default:false"`
	EffectivenessRating *int      `json:"effectiveness_rating,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// KnowledgeItem is preloaded for list endpoints.
	KnowledgeItem KnowledgeItem `json:"knowledge_item" gorm:"foreignKey:KnowledgeItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RecommendationRecord.
func (RecommendationRecord) TableName() string { return "recommendation_records" }

// SafetyEvent is one detected crisis signal. Append-only; a failed write is
// logged loudly but never prevents the crisis-appropriate reply, which reads
// the detector result directly rather than this row.
type SafetyEvent struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"user_id"        gorm:"type:char(36);not null;index"`
	MessageID     string    `json:"message_id"     gorm:"type:char(36);not null;index"`
	Level         string    `json:"level"          gorm:"type:varchar(16);not null"`
	Keywords      string    `json:"keywords"       gorm:"type:varchar(512);not null"`
	Confidence    float64   `json:"confidence"     gorm:"not null"`
	HelplineShown bool      `json:"helpline_shown" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for SafetyEvent.
func (SafetyEvent) TableName() string { return "safety_events" }
