package cmd

import "github.com/spf13/cobra"

var mvCmd = &cobra.Command{
	Use:   "mv <src> <dst>",
	Short: "Stage a move of src to dst",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Move(args[0], args[1], mergeFlag, overwrite); err != nil {
			fail(err)
		}
		maybeWriteState(c)
	},
}

func init() {
	mvCmd.Flags().BoolVar(&mergeFlag, "merge", false, "merge into an existing destination directory")
	mvCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing destination file")
	RootCmd.AddCommand(mvCmd)
}
