package operation

import (
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

// scheduling is the outcome of spec §4.6's Copy/Move decision table.
type scheduling int

const (
	schedDirectoryMerge scheduling = iota
	schedDirectoryCopy
	schedDirectoryMoveFresh // move only: dst absent, two-phase bind+drain
	schedFileOverwrite
	schedFileCopy
)

// isLeaf reports whether kind is copyable-as-opaque-content: a regular
// file, or the supplemented Link kind (SPEC_FULL.md §7 treats a symlink as
// an opaque leaf alongside files).
func isLeaf(kind vpath.Kind) bool {
	return kind == vpath.File || kind == vpath.Link
}

// decide implements spec §4.6's scheduling table. isMove selects the
// two-phase directory-move case when dst is absent; every other row is
// shared verbatim between Copy and Move.
func decide(src, dst overlay.Result, isMove bool) (scheduling, error) {
	if !src.Status.Visible() {
		return 0, ferrors.ErrSourceDoesNotExist
	}

	srcKind := src.Record.Kind
	dstVisible := dst.Status.Visible()
	dstKind := dst.Record.Kind

	switch {
	case srcKind == vpath.Directory:
		if dstVisible {
			switch dstKind {
			case vpath.Directory:
				return schedDirectoryMerge, nil
			case vpath.File, vpath.Link:
				return 0, ferrors.ErrMergeFileWithDirectory
			default:
				return 0, ferrors.ErrUnknownKind
			}
		}
		if isMove {
			return schedDirectoryMoveFresh, nil
		}
		return schedDirectoryCopy, nil

	case isLeaf(srcKind):
		if dstVisible {
			switch {
			case isLeaf(dstKind):
				return schedFileOverwrite, nil
			case dstKind == vpath.Directory:
				return 0, ferrors.ErrOverwriteDirWithFile
			default:
				return 0, ferrors.ErrUnknownKind
			}
		}
		return schedFileCopy, nil

	default:
		return 0, ferrors.ErrUnknownKind
	}
}

// childPairs turns a directory listing into (childSrc, childDst) identity
// pairs for a recursive child generator, failing with a structural error
// (spec §4.6 "tie-break") rather than synthesizing a root-like name.
func childPairs(entries []vpath.Record, dstParent string) ([][2]string, error) {
	out := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if name == "" {
			return nil, ferrors.ErrStructural
		}
		out = append(out, [2]string{entry.Identity, vpath.Join(dstParent, name)})
	}
	return out, nil
}
