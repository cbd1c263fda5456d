package orchestrator

import (
	"os"

	"github.com/pkg/errors"
)

// resolveSpawner picks the Spawner for the configured mode. Process mode
// needs a program image to re-execute; when none is configured and the
// running image cannot be located, the run degrades to task mode instead of
// failing, since both modes honor the same contract. An explicitly
// configured program is never second-guessed.
func (s *Sorter) resolveSpawner() (Spawner, error) {
	switch s.cfg.Spawn {
	case SpawnProcess:
		program := s.cfg.Program
		if program == "" {
			p, err := os.Executable()
			if err != nil {
				s.log.At("detect").Logf("state=degraded mode=%s reason=%q", SpawnTask, err.Error())
				return &TaskSpawner{sorter: s}, nil
			}
			program = p
		}
		return &ProcessSpawner{Program: program, Stderr: s.stderr}, nil
	case SpawnTask:
		return &TaskSpawner{sorter: s}, nil
	default:
		return nil, errors.Errorf("detect: unknown spawn mode %q", s.cfg.Spawn)
	}
}
