package model

import "time"

// Governance levels for templates and reports
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// Template is a named bundle of governance-level metadata and categorized
// recommendation text. Templates are merged, never mutated, by composition.
type Template struct {
	ID              string              `json:"id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name" validate:"required"`
	GovernanceLevel string              `json:"governanceLevel" bson:"governanceLevel" validate:"required,oneof=low medium high"`
	ConfidenceScore float64             `json:"confidenceScore" bson:"confidenceScore" validate:"gte=0,lte=100"`
	Sections        map[string][]string `json:"sections" bson:"sections"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Report is the final scored, merged recommendation output of one completed
// assessment. Created once, immutable thereafter, owned by the caller.
type Report struct {
	AssessmentID     string              `json:"assessmentId,omitempty" bson:"assessmentId,omitempty"`
	Score            float64             `json:"score" bson:"score"`
	Level            string              `json:"level" bson:"level"`
	Confidence       float64             `json:"confidence" bson:"confidence"`
	MatchedRuleIDs   []string            `json:"matchedRuleIds" bson:"matchedRuleIds"`
	Sections         map[string][]string `json:"sections" bson:"sections"`
	SkippedTemplates []string            `json:"skippedTemplates,omitempty" bson:"skippedTemplates,omitempty"`
	// GeneratedAt is stamped by the caller when the report is persisted, so
	// composition itself stays deterministic.
	GeneratedAt *time.Time `json:"generatedAt,omitempty" bson:"generatedAt,omitempty"`
}
