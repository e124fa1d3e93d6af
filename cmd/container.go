package cmd

import (
	"fmt"
	"os"

	"futurecommander/pkg/container"
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/guard"
)

// openContainer builds a container.Container from the persistent flags,
// importing the overlay persisted at --state before doing any work, the same
// flags-then-handle shape every verb shares.
func openContainer() (*container.Container, error) {
	cfg := container.DefaultConfig(mountDir)
	cfg.StatePath = statePath
	switch guardChoice {
	case "zealous", "":
		cfg.Guard = guard.Zealous{}
	case "registrar":
		cfg.Guard = guard.NewRegistrar()
	default:
		return nil, fmt.Errorf("unknown --guard strategy: %s", guardChoice)
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	if statePath != "" {
		if err := c.Import(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// fail prints err's kind to stderr and exits non-zero, spec §6's "exit code
// 0 on success; non-zero on the first failing step with error kind on
// stderr."
func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", ferrors.Classify(err), err)
	os.Exit(1)
}

// maybeWriteState saves the container's staged overlay back to --state
// when -w was passed, spec §6's "-w (write state back)".
func maybeWriteState(c *container.Container) {
	if !writeState {
		return
	}
	if err := c.Save(); err != nil {
		fail(err)
	}
}
