package engine

import "govmaturity/internal/model"

// ScoringPolicy holds the per-deployment scoring knobs: the level thresholds,
// and what to report when no recommendation template resolves. The thresholds
// are policy, not engine logic, so they are loaded from configuration rather
// than hard-coded in the composer.
type ScoringPolicy struct {
	HighThreshold   float64 `json:"highThreshold" yaml:"highThreshold"`
	MediumThreshold float64 `json:"mediumThreshold" yaml:"mediumThreshold"`

	// Baseline fallback when zero templates resolve. The composer always
	// returns a usable report, never nil.
	BaselineScore    float64             `json:"baselineScore" yaml:"baselineScore"`
	BaselineSections map[string][]string `json:"baselineSections" yaml:"baselineSections"`
}

// DefaultScoringPolicy returns the stock 70/40 thresholds and a minimal
// baseline recommendation.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		HighThreshold:   70,
		MediumThreshold: 40,
		BaselineScore:   25,
		BaselineSections: map[string][]string{
			"general": {
				"Establish a basic data governance policy and assign ownership.",
				"Re-run the assessment after an initial governance review.",
			},
		},
	}
}

// LevelFor maps a score to a governance level. Score >= HighThreshold is High,
// >= MediumThreshold is Medium, else Low. The boundary is inclusive: exactly
// 70 maps to High under the defaults.
func (p ScoringPolicy) LevelFor(score float64) string {
	switch {
	case score >= p.HighThreshold:
		return model.LevelHigh
	case score >= p.MediumThreshold:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}
