package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the staged overlay's immediate children of path",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}
		c, err := openContainer()
		if err != nil {
			fail(err)
		}
		entries, err := c.ReadDir(path)
		if err != nil {
			fail(err)
		}
		for _, e := range entries {
			size := ""
			if info, err := os.Stat(filepath.Join(mountDir, filepath.FromSlash(e.Record.Identity))); err == nil && !info.IsDir() {
				if outputIsHumanized() {
					size = humanize.Bytes(uint64(info.Size()))
				} else {
					size = fmt.Sprintf("%d", info.Size())
				}
			}
			fmt.Printf("%s %-6s %s\t%s\n", statusGlyph(e.Status), e.Record.Kind, e.Record.Name(), size)
		}
	},
}

func init() {
	RootCmd.AddCommand(lsCmd)
}
