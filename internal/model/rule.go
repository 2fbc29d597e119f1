package model

import "time"

// ActionType defines the effect a matched rule applies
type ActionType string

const (
	ActionRecommend ActionType = "recommend" // merge a recommendation template
	ActionScore     ActionType = "score"     // adjust the final score
	ActionRoute     ActionType = "route"     // routing hint for the caller
)

// Action is one effect of a matched rule. For recommend actions TemplateID
// names the template to merge and Weight drives section ordering and the
// confidence average. For score actions Weight is the score delta.
type Action struct {
	Type       ActionType             `json:"type" bson:"type" validate:"required,oneof=recommend score route"`
	TemplateID string                 `json:"templateId,omitempty" bson:"templateId,omitempty"`
	Weight     float64                `json:"weight,omitempty" bson:"weight,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty" bson:"parameters,omitempty"`
}

// Rule is a prioritized, activatable condition tree paired with actions.
// Rules are immutable configuration; operators only toggle Active.
type Rule struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string         `json:"questionnaireId" bson:"questionnaireId" validate:"required"`
	Name            string         `json:"name" bson:"name" validate:"required"`
	Priority        int            `json:"priority" bson:"priority"` // lower = applied first
	Active          bool           `json:"active" bson:"active"`
	Conditions      *ConditionNode `json:"conditions,omitempty" bson:"conditions,omitempty"`
	Actions         []Action       `json:"actions" bson:"actions" validate:"required,min=1,dive"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// MatchResult records the outcome of evaluating one active rule. The full
// ordered list (matched and unmatched) is returned so callers can audit why a
// rule did not fire.
type MatchResult struct {
	RuleID  string   `json:"ruleId" bson:"ruleId"`
	Matched bool     `json:"matched" bson:"matched"`
	Actions []Action `json:"actions,omitempty" bson:"actions,omitempty"`
}

// TraceEntry is one audited decision: a rule match/no-match or a composition
// step such as a skipped template reference.
type TraceEntry struct {
	RuleID  string `json:"ruleId,omitempty" bson:"ruleId,omitempty"`
	Matched bool   `json:"matched" bson:"matched"`
	Reason  string `json:"reason" bson:"reason"`
}

// AuditRecord is the persisted trace of one completed assessment or one
// diagnostic dry run.
type AuditRecord struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	AssessmentID string       `json:"assessmentId" bson:"assessmentId"`
	Entries      []TraceEntry `json:"entries" bson:"entries"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
}

// RuleTestResult is the response of the "test rules" diagnostic: every rule
// decision plus the report the answers would produce. Nothing is persisted.
type RuleTestResult struct {
	Results []MatchResult `json:"results"`
	Trace   []TraceEntry  `json:"trace"`
	Report  *Report       `json:"report"`
}
