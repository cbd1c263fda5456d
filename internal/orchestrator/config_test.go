package orchestrator

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv leaves the variable absent,
	// which is the case the defaults cover.
	for _, key := range []string{"FORKSORT_SPAWN", "FORKSORT_PROGRAM", "FORKSORT_VERBOSE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, SpawnProcess, cfg.Spawn)
	assert.Empty(t, cfg.Program)
	assert.False(t, cfg.Verbose)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("FORKSORT_SPAWN", "task")
	t.Setenv("FORKSORT_PROGRAM", "/opt/forksort/bin/forksort")
	t.Setenv("FORKSORT_VERBOSE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, SpawnTask, cfg.Spawn)
	assert.Equal(t, "/opt/forksort/bin/forksort", cfg.Program)
	assert.True(t, cfg.Verbose)
}

func TestFromEnv_BadBool(t *testing.T) {
	t.Setenv("FORKSORT_VERBOSE", "sometimes")

	_, err := FromEnv()
	require.Error(t, err)
}
