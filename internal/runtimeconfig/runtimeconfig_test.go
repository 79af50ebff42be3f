package runtimeconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToUnbounded(t *testing.T) {
	t.Setenv("BLC_MAX_STEPS", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.MaxSteps)
}

func TestLoadReadsMaxSteps(t *testing.T) {
	t.Setenv("BLC_MAX_STEPS", "1000")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.MaxSteps)
}
