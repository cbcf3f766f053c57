package services

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline step names used in PersistenceError and metrics labels.
const (
	StepResolveSession     = "resolve_session"
	StepPersistUserMessage = "persist_user_message"
	StepPersistEmotion     = "persist_emotion"
	StepLogSafetyEvent     = "log_safety_event"
	StepFetchProfile       = "fetch_profile"
	StepPersistTracking    = "persist_tracking"
	StepRetrieveKnowledge  = "retrieve_knowledge"
	StepFetchHistory       = "fetch_history"
	StepPersistAssistant   = "persist_assistant_message"
	StepPersistRecs        = "persist_recommendations"
	StepUpdateStreak       = "update_streak"
)

// PersistenceError wraps a storage failure with the pipeline step it
// occurred in. Critical-path steps surface it to the handler; best-effort
// steps log it and continue.
type PersistenceError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure at %s: %v", e.Step, e.Err)
}

// Unwrap exposes the underlying storage error.
func (e *PersistenceError) Unwrap() error { return e.Err }

var (
	// pipelineStepFailures counts persistence failures per pipeline step,
	// split by whether the failure aborted the turn.
	pipelineStepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_pipeline_step_failures_total",
			Help: "Total persistence failures per chat pipeline step.",
		},
		[]string{"step", "critical"},
	)

	// pipelineFallbackReplies counts turns answered by the deterministic
	// fallback instead of the language model.
	pipelineFallbackReplies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_pipeline_fallback_replies_total",
			Help: "Total chat turns answered with the deterministic fallback reply.",
		},
	)

	// pipelineCrisisDetected counts detected crisis signals by level.
	pipelineCrisisDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_pipeline_crisis_detected_total",
			Help: "Total crisis signals detected, by severity level.",
		},
		[]string{"level"},
	)
)

func init() {
	prometheus.MustRegister(pipelineStepFailures, pipelineFallbackReplies, pipelineCrisisDetected)
}
