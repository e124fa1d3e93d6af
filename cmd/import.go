package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// importCmd replays a persisted overlay back into a fresh session and
// prints what it found, the generalization of cmd/pull.go's recursive
// ListDir walk onto delta records instead of real files.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a previously saved overlay from --state and preview it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if statePath == "" {
			fmt.Fprintln(os.Stderr, "import: --state is required")
			os.Exit(1)
		}
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Import(); err != nil {
			fail(err)
		}
		for _, line := range c.Preview() {
			fmt.Println(line)
		}
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}
