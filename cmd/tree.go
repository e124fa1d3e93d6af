package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"futurecommander/pkg/container"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Render the staged overlay as a tree, real and virtual combined",
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
		if err := printTree(c, path, 0); err != nil {
			fail(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(treeCmd)
}

func printTree(c *container.Container, path string, depth int) error {
	entries, err := c.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), statusGlyph(e.Status), e.Record.Name())
		if e.Record.Kind == vpath.Directory {
			if err := printTree(c, e.Record.Identity, depth+1); err != nil {
				return err
			}
		} else if info, err := os.Stat(filepath.Join(mountDir, filepath.FromSlash(e.Record.Identity))); err == nil {
			size := fmt.Sprintf("%d", info.Size())
			if outputIsHumanized() {
				size = humanize.Bytes(uint64(info.Size()))
			}
			fmt.Printf("%s  (%s)\n", strings.Repeat("  ", depth+1), size)
		}
	}
	return nil
}

func statusGlyph(s overlay.Status) string {
	switch s {
	case overlay.ExistsVirtually, overlay.Replaced:
		return "+"
	case overlay.Removed, overlay.RemovedVirtually:
		return "-"
	default:
		return " "
	}
}
