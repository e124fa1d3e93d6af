package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Commit the staged overlay to the real filesystem",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if statePath != "" {
			if err := c.Import(); err != nil {
				fail(err)
			}
		}
		if err := c.Apply(); err != nil {
			fail(err)
		}
		maybeWriteState(c)
		fmt.Println("applied")
	},
}

func init() {
	RootCmd.AddCommand(applyCmd)
}
