package operation

import (
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/guard"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

// NewCopyGenerator returns the generator for a copy(src, dst, merge,
// overwrite, guard) request (spec §6).
func NewCopyGenerator(src, dst string, merge, overwrite bool, g guard.Guard) Generator {
	return &staged{init: func(view *overlay.Engine) (*Atomic, []Generator, *Atomic, error) {
		return initCopyOrMove(view, src, dst, merge, overwrite, g, false)
	}}
}

// initCopyOrMove is the shared Copy/Move scheduling decision (spec §4.6):
// only the atomic kinds and the fresh-directory two-phase case differ
// between the two request types.
func initCopyOrMove(view *overlay.Engine, src, dst string, merge, overwrite bool, g guard.Guard, isMove bool) (*Atomic, []Generator, *Atomic, error) {
	srcStatus := view.Status(src)
	dstStatus := view.Status(dst)

	if srcStatus.Record.Kind == vpath.Directory && vpath.IsContainedBy(dst, src) {
		return nil, nil, nil, ferrors.ErrCopyIntoItself
	}

	sched, err := decide(srcStatus, dstStatus, isMove)
	if err != nil {
		return nil, nil, nil, err
	}

	fileOp := OpCopyFileToFile
	if isMove {
		fileOp = OpMoveFileToFile
	}

	switch sched {
	case schedFileCopy:
		return &Atomic{Kind: fileOp, Src: src, Dst: dst}, nil, nil, nil

	case schedFileOverwrite:
		granted, err := g.Authorize(guard.Overwrite, overwrite, dst)
		if err != nil {
			return nil, nil, nil, err
		}
		if !granted {
			return nil, nil, nil, nil
		}
		return &Atomic{Kind: fileOp, Src: src, Dst: dst}, nil, nil, nil

	case schedDirectoryCopy:
		entries, err := view.ReadMaintained(src)
		if err != nil {
			return nil, nil, nil, err
		}
		pairs, err := childPairs(entries, dst)
		if err != nil {
			return nil, nil, nil, err
		}
		children := make([]Generator, 0, len(pairs))
		for _, p := range pairs {
			children = append(children, NewCopyGenerator(p[0], p[1], merge, overwrite, g))
		}
		return &Atomic{Kind: OpBindDirectoryToDirectory, Src: src, Dst: dst}, children, nil, nil

	case schedDirectoryMoveFresh:
		entries, err := view.ReadMaintained(src)
		if err != nil {
			return nil, nil, nil, err
		}
		pairs, err := childPairs(entries, dst)
		if err != nil {
			return nil, nil, nil, err
		}
		children := make([]Generator, 0, len(pairs))
		for _, p := range pairs {
			children = append(children, NewMoveGenerator(p[0], p[1], merge, overwrite, g))
		}
		selfBefore := &Atomic{Kind: OpBindDirectoryToDirectory, Src: src, Dst: dst}
		finalOp := &Atomic{Kind: OpRemoveMaintainedEmptyDirectory, Dst: src}
		return selfBefore, children, finalOp, nil

	case schedDirectoryMerge:
		granted, err := g.Authorize(guard.Merge, merge, dst)
		if err != nil {
			return nil, nil, nil, err
		}
		if !granted {
			return nil, nil, nil, nil
		}
		entries, err := view.ReadDir(src)
		if err != nil {
			return nil, nil, nil, err
		}
		pairs, err := childPairs(entries, dst)
		if err != nil {
			return nil, nil, nil, err
		}
		children := make([]Generator, 0, len(pairs))
		for _, p := range pairs {
			if isMove {
				children = append(children, NewMoveGenerator(p[0], p[1], merge, overwrite, g))
			} else {
				children = append(children, NewCopyGenerator(p[0], p[1], merge, overwrite, g))
			}
		}
		var finalOp *Atomic
		if isMove {
			finalOp = &Atomic{Kind: OpRemoveEmptyDirectory, Dst: src}
		}
		return nil, children, finalOp, nil

	default:
		return nil, nil, nil, nil
	}
}
