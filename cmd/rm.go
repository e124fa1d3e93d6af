package cmd

import "github.com/spf13/cobra"

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Stage the removal of path",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		if err := c.Remove(args[0], recursive); err != nil {
			fail(err)
		}
		maybeWriteState(c)
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "remove a non-empty directory and its contents")
	RootCmd.AddCommand(rmCmd)
}
