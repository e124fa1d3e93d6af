package cmd

import (
	"github.com/spf13/cobra"

	"futurecommander/pkg/vpath"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Stage the creation of a directory at path",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Create(args[0], vpath.Directory, recursive, overwrite, ""); err != nil {
			fail(err)
		}
		maybeWriteState(c)
	},
}

func init() {
	mkdirCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "also create missing ancestor directories")
	mkdirCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing endpoint of a different kind")
	RootCmd.AddCommand(mkdirCmd)
}
