// Package cmd implements the CLI surface: a thin cobra command tree over
// pkg/container, one file per verb.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	mountDir    string
	statePath   string
	writeState  bool
	guardChoice string
	mergeFlag   bool
	overwrite   bool
	recursive   bool
)

// RootCmd is the entry point every verb subcommand registers itself onto
// via init().
var RootCmd = &cobra.Command{
	Use:   "fc",
	Short: "FutureCommander: stage and apply virtual filesystem mutations",
	Long: `FutureCommander stages copies, moves, creations, and deletions
against a live directory as a virtual overlay, lets you preview their
combined effect, and then applies or resets the staged plan.`,
}

// Execute runs the command tree, exiting non-zero on any cobra-level error
// (flag parsing, unknown subcommand).
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&mountDir, "mount", "m", ".", "real directory the overlay is laid over")
	RootCmd.PersistentFlags().StringVarP(&statePath, "state", "s", "", "SQLite state file to save to / import from")
	RootCmd.PersistentFlags().BoolVarP(&writeState, "write", "w", false, "write the staged overlay back to --state after this command")
	RootCmd.PersistentFlags().StringVar(&guardChoice, "guard", "zealous", "capability arbitration strategy: zealous|registrar")
}

// outputIsHumanized reports whether tree/ls output should render
// human-readable sizes (TTY) or raw byte counts (piped / redirected).
func outputIsHumanized() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
