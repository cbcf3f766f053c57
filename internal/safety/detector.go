// Package safety implements crisis-signal detection over user text and the
// static helpline directory surfaced in crisis replies.
//
// Detection is a pure, local keyword scan across three severity tiers.
// That is a deliberate design constraint, not a placeholder: crisis handling
// must never depend on a remote model being reachable, so the tier tables
// are versioned in code and evaluated synchronously. Known false-negative
// risk of keyword lists is accepted; the caller logs a SafetyEvent and
// substitutes a crisis-appropriate reply whenever a scan fires.
package safety

import "strings"

// Level is the severity tier of a detected crisis signal.
type Level string

// Severity tiers in decreasing priority. LevelLow is the no-signal value.
const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
)

// Per-tier fixed confidences.
const (
	confidenceCritical = 0.95
	confidenceHigh     = 0.85
	confidenceMedium   = 0.70
)

// ScanResult is the outcome of one crisis scan.
type ScanResult struct {
	IsCrisis         bool     `json:"is_crisis"`
	Level            Level    `json:"crisis_level"`
	DetectedKeywords []string `json:"detected_keywords"`
	Confidence       float64  `json:"confidence"`
}

// tier tables are disjoint and checked in priority order: the first tier
// with at least one hit wins and lower tiers are not evaluated.
var tiers = []struct {
	level      Level
	confidence float64
	keywords   []string
}{
	{LevelCritical, confidenceCritical, []string{
		"kill myself", "end my life", "suicide", "want to die",
		"better off dead", "no reason to live", "going to end it",
	}},
	{LevelHigh, confidenceHigh, []string{
		"hurt myself", "self-harm", "self harm", "cut myself",
		"can't go on", "cant go on", "give up on life",
	}},
	{LevelMedium, confidenceMedium, []string{
		"hopeless", "worthless", "no point anymore", "nobody would miss me",
		"hate myself", "can't take it anymore", "cant take it anymore",
	}},
}

// Scan checks text against the tier tables. It is side-effect free and
// safe for concurrent use.
func Scan(text string) ScanResult {
	lower := strings.ToLower(text)
	for _, tier := range tiers {
		var hits []string
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			return ScanResult{
				IsCrisis:         true,
				Level:            tier.level,
				DetectedKeywords: hits,
				Confidence:       tier.confidence,
			}
		}
	}
	return ScanResult{IsCrisis: false, Level: LevelLow, Confidence: 0}
}
