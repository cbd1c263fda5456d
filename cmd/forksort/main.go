// Command forksort sorts the lines on its standard input by recursive
// parallel mergesort: each invocation splits its input in half, delegates
// the halves to two spawned workers running this same logic, and merges the
// sorted streams they send back.
//
// The command takes no arguments. Configuration is environment-only:
//
//	FORKSORT_SPAWN    worker spawn mode, "process" (default) or "task"
//	FORKSORT_PROGRAM  image to re-execute in process mode (default: self)
//	FORKSORT_VERBOSE  emit worker progress on stderr
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/convox/logger"
	"github.com/pkg/errors"

	"github.com/dusk-indust/forksort/internal/orchestrator"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.Errorf("usage: %s", filepath.Base(args[0]))
	}

	cfg, err := orchestrator.FromEnv()
	if err != nil {
		return err
	}

	s, err := orchestrator.New(cfg, os.Stderr)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log := logger.NewWriter("ns=forksort", os.Stderr)
		go func() {
			for event := range s.Progress().Subscribe() {
				log.Logf("%s", orchestrator.FormatEvent(event))
			}
		}()
	}
	defer s.Progress().Close()

	return s.Run(context.Background(), os.Stdin, os.Stdout)
}
