// Package operation implements the operation generator from spec §4.6: one
// generator per request type (Copy, Move, Remove, Create), each recursive
// by composition and driven by an Uninitialized -> SelfOperation ->
// ChildrenOperation -> Terminated state machine.
//
// Nothing here touches a filesystem directly — a generator only consults
// overlay.Engine (the read side) and emits Atomic values; pkg/apply is what
// finally hands those atoms to a pkg/writeadapter.Target.
package operation

import (
	"fmt"

	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/writeadapter"
)

// AtomicKind names one of spec §3's eight Atomic variants, plus the
// supplemented symlink-creation primitive (SPEC_FULL.md §7).
type AtomicKind int

const (
	OpCreateEmptyFile AtomicKind = iota
	OpCreateEmptyDirectory
	OpCreateSymlink
	OpCopyFileToFile
	OpMoveFileToFile
	OpBindDirectoryToDirectory
	OpRemoveFile
	OpRemoveEmptyDirectory
	OpRemoveMaintainedEmptyDirectory
)

func (k AtomicKind) String() string {
	switch k {
	case OpCreateEmptyFile:
		return "create_empty_file"
	case OpCreateEmptyDirectory:
		return "create_empty_directory"
	case OpCreateSymlink:
		return "create_symlink"
	case OpCopyFileToFile:
		return "copy_file_to_file"
	case OpMoveFileToFile:
		return "move_file_to_file"
	case OpBindDirectoryToDirectory:
		return "bind_directory_to_directory"
	case OpRemoveFile:
		return "remove_file"
	case OpRemoveEmptyDirectory:
		return "remove_empty_directory"
	case OpRemoveMaintainedEmptyDirectory:
		return "remove_maintained_empty_directory"
	default:
		return "unknown"
	}
}

// Atomic is one emitted write-adapter call, carrying an explicit source
// and/or destination (spec §3 "Atomic").
type Atomic struct {
	Kind       AtomicKind
	Src        string // meaningful for Copy/Move/Bind
	Dst        string // the affected path for every kind
	LinkTarget string // meaningful only for OpCreateSymlink
}

// String renders a one-line preview of the atomic without applying it —
// the dry-run text container.Preview (and through it `cmd import.go`) uses.
func (a Atomic) String() string {
	switch a.Kind {
	case OpCopyFileToFile, OpMoveFileToFile, OpBindDirectoryToDirectory:
		return fmt.Sprintf("%s %s -> %s", a.Kind, a.Src, a.Dst)
	case OpCreateSymlink:
		return fmt.Sprintf("%s %s -> %s", a.Kind, a.Dst, a.LinkTarget)
	default:
		return fmt.Sprintf("%s %s", a.Kind, a.Dst)
	}
}

// Apply hands this atomic to target, dispatching on Kind.
func (a Atomic) Apply(target writeadapter.Target) error {
	switch a.Kind {
	case OpCreateEmptyFile:
		return target.CreateEmptyFile(a.Dst)
	case OpCreateEmptyDirectory:
		return target.CreateEmptyDirectory(a.Dst)
	case OpCreateSymlink:
		creator, ok := target.(writeadapter.SymlinkCreator)
		if !ok {
			return ferrors.ErrUnknownKind
		}
		return creator.CreateSymlink(a.Dst, a.LinkTarget)
	case OpCopyFileToFile:
		return target.CopyFileToFile(a.Src, a.Dst)
	case OpMoveFileToFile:
		return target.MoveFileToFile(a.Src, a.Dst)
	case OpBindDirectoryToDirectory:
		return target.BindDirectoryToDirectory(a.Src, a.Dst)
	case OpRemoveFile:
		return target.RemoveFile(a.Dst)
	case OpRemoveEmptyDirectory:
		return target.RemoveEmptyDirectory(a.Dst)
	case OpRemoveMaintainedEmptyDirectory:
		return target.RemoveMaintainedEmptyDirectory(a.Dst)
	default:
		return ferrors.ErrUnknownKind
	}
}
