package operation

import (
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/guard"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

// singleAtom is a trivial one-shot Generator that emits exactly one atomic
// then terminates — used to splice a bare Atomic into a children list.
func singleAtom(op *Atomic) Generator {
	return &staged{init: func(*overlay.Engine) (*Atomic, []Generator, *Atomic, error) {
		return op, nil, nil, nil
	}}
}

// NewCreateGenerator returns the generator for a create(path, kind,
// recursive, overwrite, guard) request (spec §6). linkTarget is only
// meaningful when kind == vpath.Link.
//
// Create scheduling (spec §4.6): if recursive, ancestor-directory
// generators for every non-existing ancestor are synthesized top-down and
// drained before the self-operation; overwriting an existing endpoint of a
// different kind is gated by the guard's Overwrite capability.
func NewCreateGenerator(path string, kind vpath.Kind, recursive, overwrite bool, linkTarget string, g guard.Guard) Generator {
	return &staged{init: func(view *overlay.Engine) (*Atomic, []Generator, *Atomic, error) {
		if kind != vpath.File && kind != vpath.Directory && kind != vpath.Link {
			return nil, nil, nil, ferrors.ErrCreateUnknown
		}

		var children []Generator
		if recursive {
			for _, ancestor := range missingAncestors(view, path) {
				children = append(children, singleAtom(&Atomic{Kind: OpCreateEmptyDirectory, Dst: ancestor}))
			}
		}

		selfOp, err := selfCreateOp(path, kind, linkTarget)
		if err != nil {
			return nil, nil, nil, err
		}

		st := view.Status(path)
		if !st.Status.Visible() {
			children = append(children, singleAtom(selfOp))
			return nil, children, nil, nil
		}

		if st.Record.Kind == kind {
			// Idempotent: the endpoint already has the requested kind.
			return nil, children, nil, nil
		}

		if st.Record.Kind == vpath.Directory {
			empty, err := view.IsDirectoryEmpty(path)
			if err != nil {
				return nil, nil, nil, err
			}
			if !empty {
				return nil, nil, nil, ferrors.ErrDirectoryOverwriteNotAllowed
			}
		}

		granted, err := g.Authorize(guard.Overwrite, overwrite, path)
		if err != nil {
			return nil, nil, nil, err
		}
		if !granted {
			return nil, children, nil, nil
		}

		if st.Record.Kind == vpath.Directory {
			children = append(children, singleAtom(&Atomic{Kind: OpRemoveEmptyDirectory, Dst: path}))
		} else {
			children = append(children, singleAtom(&Atomic{Kind: OpRemoveFile, Dst: path}))
		}
		children = append(children, singleAtom(selfOp))
		return nil, children, nil, nil
	}}
}

func selfCreateOp(path string, kind vpath.Kind, linkTarget string) (*Atomic, error) {
	switch kind {
	case vpath.Directory:
		return &Atomic{Kind: OpCreateEmptyDirectory, Dst: path}, nil
	case vpath.File:
		return &Atomic{Kind: OpCreateEmptyFile, Dst: path}, nil
	case vpath.Link:
		return &Atomic{Kind: OpCreateSymlink, Dst: path, LinkTarget: linkTarget}, nil
	default:
		return nil, ferrors.ErrCreateUnknown
	}
}

// missingAncestors returns path's ancestor directories, root-most first,
// that are not yet visible in view.
func missingAncestors(view *overlay.Engine, path string) []string {
	parts := vpath.Split(path)
	if len(parts) <= 1 {
		return nil
	}
	var out []string
	cur := ""
	for _, part := range parts[:len(parts)-1] {
		cur = vpath.Join(cur, part)
		if !view.Status(cur).Status.Visible() {
			out = append(out, cur)
		}
	}
	return out
}
