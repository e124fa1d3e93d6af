package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// saveCmd serializes the staged overlay to --state, the generalization of
// cmd/push.go's directory-walk-and-insert loop onto delta records instead
// of real files.
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the staged overlay to --state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if statePath == "" {
			fmt.Fprintln(os.Stderr, "save: --state is required")
			os.Exit(1)
		}
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Save(); err != nil {
			fail(err)
		}
		fmt.Println("saved")
	},
}

func init() {
	RootCmd.AddCommand(saveCmd)
}
