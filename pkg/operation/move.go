package operation

import (
	"futurecommander/pkg/guard"
	"futurecommander/pkg/overlay"
)

// NewMoveGenerator returns the generator for a move(src, dst, merge,
// overwrite, guard) request (spec §6). It shares Copy's scheduling table
// (spec §4.6) and adds the fresh-directory two-phase bind-then-drain case.
func NewMoveGenerator(src, dst string, merge, overwrite bool, g guard.Guard) Generator {
	return &staged{init: func(view *overlay.Engine) (*Atomic, []Generator, *Atomic, error) {
		return initCopyOrMove(view, src, dst, merge, overwrite, g, true)
	}}
}
