package cmd

import (
	"github.com/spf13/cobra"

	"futurecommander/pkg/vpath"
)

var touchCmd = &cobra.Command{
	Use:   "touch <path>",
	Short: "Stage the creation of an empty file at path",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Create(args[0], vpath.File, recursive, overwrite, ""); err != nil {
			fail(err)
		}
		maybeWriteState(c)
	},
}

func init() {
	touchCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "also create missing ancestor directories")
	touchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing endpoint of a different kind")
	RootCmd.AddCommand(touchCmd)
}
