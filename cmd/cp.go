package cmd

import "github.com/spf13/cobra"

var cpCmd = &cobra.Command{
	Use:   "cp <src> <dst>",
	Short: "Stage a copy of src to dst",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Copy(args[0], args[1], mergeFlag, overwrite); err != nil {
			fail(err)
		}
		maybeWriteState(c)
	},
}

func init() {
	cpCmd.Flags().BoolVar(&mergeFlag, "merge", false, "merge into an existing destination directory")
	cpCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing destination file")
	RootCmd.AddCommand(cpCmd)
}
