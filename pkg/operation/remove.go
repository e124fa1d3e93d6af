package operation

import (
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

// NewRemoveGenerator returns the generator for a remove(path, recursive,
// guard) request (spec §6). Remove scheduling (spec §4.6): a file is a
// single RemoveFile; an empty directory a single RemoveEmptyDirectory; a
// non-empty directory recurses depth-first into its children before
// emitting its own RemoveEmptyDirectory last.
func NewRemoveGenerator(path string, recursive bool) Generator {
	return &staged{init: func(view *overlay.Engine) (*Atomic, []Generator, *Atomic, error) {
		st := view.Status(path)
		if !st.Status.Visible() {
			return nil, nil, nil, ferrors.ErrDomainDoesNotExist
		}

		if isLeaf(st.Record.Kind) {
			return &Atomic{Kind: OpRemoveFile, Dst: path}, nil, nil, nil
		}
		if st.Record.Kind != vpath.Directory {
			return nil, nil, nil, ferrors.ErrUnknownKind
		}

		empty, err := view.IsDirectoryEmpty(path)
		if err != nil {
			return nil, nil, nil, err
		}
		if empty {
			return &Atomic{Kind: OpRemoveEmptyDirectory, Dst: path}, nil, nil, nil
		}
		if !recursive {
			return nil, nil, nil, ferrors.ErrDirectoryIsNotEmpty
		}

		entries, err := view.ReadDir(path)
		if err != nil {
			return nil, nil, nil, err
		}
		children := make([]Generator, 0, len(entries))
		for _, entry := range entries {
			children = append(children, NewRemoveGenerator(entry.Identity, true))
		}
		finalOp := &Atomic{Kind: OpRemoveEmptyDirectory, Dst: path}
		return nil, children, finalOp, nil
	}}
}
