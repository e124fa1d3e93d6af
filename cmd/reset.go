package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the staged overlay",
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
		c.Reset()
		maybeWriteState(c)
		fmt.Println("reset")
	},
}

func init() {
	RootCmd.AddCommand(resetCmd)
}
