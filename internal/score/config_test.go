package score

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate_RejectsBadWeightSums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Health.PerformanceWeight = 0.9

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health weights")
}

func TestValidate_RejectsBadRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceFloor = 1.5
	cfg.Opportunity.HistorySize = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence_floor")
	assert.Contains(t, err.Error(), "history_size")
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	data := []byte("likeability:\n  likes_denominator: 2000\nconfidence_floor: 0.5\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, cfg.Likeability.LikesDenominator)
	assert.Equal(t, 0.5, cfg.ConfidenceFloor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.40, cfg.Health.PerformanceWeight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
