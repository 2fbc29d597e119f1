package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScoringPolicy_EmptyPathReturnsDefaults(t *testing.T) {
	policy, err := LoadScoringPolicy("")
	require.NoError(t, err)

	assert.Equal(t, float64(70), policy.HighThreshold)
	assert.Equal(t, float64(40), policy.MediumThreshold)
	assert.Equal(t, float64(25), policy.BaselineScore)
	assert.NotEmpty(t, policy.BaselineSections["general"])
}

func TestLoadScoringPolicy_PartialOverlay(t *testing.T) {
	path := writePolicyFile(t, "highThreshold: 80\n")

	policy, err := LoadScoringPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, float64(80), policy.HighThreshold)
	// Unnamed fields keep their defaults.
	assert.Equal(t, float64(40), policy.MediumThreshold)
	assert.Equal(t, float64(25), policy.BaselineScore)
}

func TestLoadScoringPolicy_FullFile(t *testing.T) {
	path := writePolicyFile(t, `
highThreshold: 75
mediumThreshold: 50
baselineScore: 30
baselineSections:
  getting_started:
    - "Name a governance owner."
`)

	policy, err := LoadScoringPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, float64(75), policy.HighThreshold)
	assert.Equal(t, float64(50), policy.MediumThreshold)
	assert.Equal(t, float64(30), policy.BaselineScore)
	assert.Equal(t, []string{"Name a governance owner."}, policy.BaselineSections["getting_started"])
}

func TestLoadScoringPolicy_InvertedThresholdsRejected(t *testing.T) {
	path := writePolicyFile(t, "highThreshold: 40\nmediumThreshold: 70\n")

	_, err := LoadScoringPolicy(path)
	assert.Error(t, err)
}

func TestLoadScoringPolicy_MissingFile(t *testing.T) {
	_, err := LoadScoringPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadScoringPolicy_MalformedYAML(t *testing.T) {
	path := writePolicyFile(t, "highThreshold: [not a number\n")

	_, err := LoadScoringPolicy(path)
	assert.Error(t, err)
}
