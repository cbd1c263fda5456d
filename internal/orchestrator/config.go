package orchestrator

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Spawn modes selectable via FORKSORT_SPAWN.
const (
	// SpawnProcess re-executes the current program image for every worker,
	// giving each subtree its own OS process. This is the default.
	SpawnProcess = "process"

	// SpawnTask runs workers as goroutines of the current process,
	// connected by in-memory pipes.
	SpawnTask = "task"
)

// Config holds runtime configuration for a sort run. The binary accepts no
// command-line arguments, so every knob is an environment variable under the
// FORKSORT_ prefix.
type Config struct {
	// Spawn selects the worker spawn mode: "process" or "task".
	Spawn string `envconfig:"spawn" default:"process"`

	// Program overrides the program image re-executed in process mode.
	// Empty means the currently running executable.
	Program string `envconfig:"program"`

	// Verbose enables worker-level progress output on stderr.
	Verbose bool `envconfig:"verbose"`
}

// FromEnv loads Config from FORKSORT_* environment variables, applying
// defaults for unset values.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("forksort", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	return cfg, nil
}
