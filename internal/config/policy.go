package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"govmaturity/internal/engine"
)

// LoadScoringPolicy reads the scoring policy from a YAML file, overlaying the
// defaults so a partial file only overrides what it names. An empty path
// returns the defaults unchanged.
func LoadScoringPolicy(path string) (engine.ScoringPolicy, error) {
	policy := engine.DefaultScoringPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("read scoring policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parse scoring policy: %w", err)
	}

	if policy.MediumThreshold > policy.HighThreshold {
		return policy, fmt.Errorf("scoring policy: mediumThreshold %g exceeds highThreshold %g",
			policy.MediumThreshold, policy.HighThreshold)
	}
	return policy, nil
}
