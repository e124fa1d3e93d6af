package writeadapter

import (
	"futurecommander/pkg/delta"
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/hostfs"
	"futurecommander/pkg/vpath"
)

// VirtualTarget mutates a pair of deltas (adds, subs) instead of the real
// filesystem, the preview-side mirror of RealTarget: the same transactional
// Mkdir/Create/Remove/Rename shape and copy-on-write bookkeeping, but
// writing into a delta.Delta instead of a SQLite-backed store. It also
// holds a read-only handle onto the real filesystem, needed to tell a
// purely virtual addition from one that shadows a real entry (Replaced)
// when that addition is later removed.
type VirtualTarget struct {
	Real *hostfs.Adapter
	Adds *delta.Delta
	Subs *delta.Delta
}

// NewVirtualTarget returns a VirtualTarget writing into the given deltas,
// consulting real for removeRecord's Replaced-vs-purely-virtual check.
func NewVirtualTarget(real *hostfs.Adapter, adds, subs *delta.Delta) *VirtualTarget {
	return &VirtualTarget{Real: real, Adds: adds, Subs: subs}
}

// addRecord attaches identity into adds, clearing any stale sub entry the
// way the lifecycle in spec §3 requires: a fresh addition supersedes a
// pending subtraction at the same identity.
func (v *VirtualTarget) addRecord(identity, source string, kind vpath.Kind) error {
	if _, ok := v.Subs.Get(identity); ok {
		if err := v.Subs.Detach(identity); err != nil {
			return err
		}
	}
	if _, ok := v.Adds.Get(identity); ok {
		if err := v.Adds.Detach(identity); err != nil {
			return err
		}
	}
	return v.Adds.Attach(identity, source, kind)
}

// removeRecord retracts identity. If it is a pending addition with nothing
// real underneath it (purely virtual), the addition is simply detached —
// there is nothing on real disk to delete. If it is a pending addition that
// shadows a real entry at the same identity (Replaced), the add is detached
// *and* a subs entry is still written, since removing it must hide the real
// entry it was shadowing rather than silently revealing it again. Any other
// identity with no pending addition is backed by something already real and
// gets a subs entry directly (spec §4.8 pass 1).
func (v *VirtualTarget) removeRecord(identity, source string, kind vpath.Kind) error {
	if _, ok := v.Adds.Get(identity); ok {
		realBacked := v.Real != nil && v.Real.Exists(identity)
		if err := v.Adds.Detach(identity); err != nil {
			return err
		}
		if realBacked {
			return v.Subs.Attach(identity, source, kind)
		}
		return nil
	}
	if _, ok := v.Subs.Get(identity); ok {
		return nil
	}
	return v.Subs.Attach(identity, source, kind)
}

func (v *VirtualTarget) CreateEmptyFile(path string) error {
	if _, ok := v.Adds.Get(path); ok {
		return ferrors.ErrDestinationAlreadyExists
	}
	return v.addRecord(path, "", vpath.File)
}

func (v *VirtualTarget) CreateEmptyDirectory(path string) error {
	if _, ok := v.Adds.Get(path); ok {
		return ferrors.ErrDestinationAlreadyExists
	}
	return v.addRecord(path, "", vpath.Directory)
}

// CreateSymlink records path as an addition of kind Link carrying target.
// Not one of spec §4.5's eight named atomics (see RealTarget.CreateSymlink).
func (v *VirtualTarget) CreateSymlink(path, target string) error {
	if _, ok := v.Adds.Get(path); ok {
		return ferrors.ErrDestinationAlreadyExists
	}
	if _, ok := v.Subs.Get(path); ok {
		if err := v.Subs.Detach(path); err != nil {
			return err
		}
	}
	return v.Adds.AttachLink(path, "", target)
}

// CopyFileToFile records dst as an addition backed by src, leaving src
// untouched — the actual byte copy happens later, during apply, against
// RealTarget. If src is itself a pending, uncommitted addition, dst
// inherits src's own ultimate source directly (the same chain-collapse
// MoveFileToFile performs for its own src), so a later removal of src's
// virtual record cannot orphan dst's provenance.
func (v *VirtualTarget) CopyFileToFile(src, dst string) error {
	source := src
	if rec, ok := v.Adds.Get(src); ok {
		source = rec.Source
	}
	return v.addRecord(dst, source, vpath.File)
}

// MoveFileToFile records dst as an addition backed by src and src as a
// subtraction in the same step. If src is itself a pending, uncommitted
// addition, the chain is collapsed instead: dst inherits src's own source
// (possibly none, for a create-then-move) and src is dropped outright,
// since nothing real ever existed at src to delete.
func (v *VirtualTarget) MoveFileToFile(src, dst string) error {
	if rec, ok := v.Adds.Get(src); ok {
		source := rec.Source
		if err := v.Adds.Detach(src); err != nil {
			return err
		}
		return v.addRecord(dst, source, vpath.File)
	}
	if err := v.addRecord(dst, src, vpath.File); err != nil {
		return err
	}
	return v.removeRecord(src, src, vpath.File)
}

// BindDirectoryToDirectory rebinds dst onto src's backing without marking
// src for removal — the generator's second phase does that explicitly via
// RemoveMaintainedEmptyDirectory once src's children have drained.
func (v *VirtualTarget) BindDirectoryToDirectory(src, dst string) error {
	return v.addRecord(dst, src, vpath.Directory)
}

func (v *VirtualTarget) RemoveFile(path string) error {
	return v.removeRecord(path, path, vpath.File)
}

func (v *VirtualTarget) RemoveEmptyDirectory(path string) error {
	return v.removeRecord(path, path, vpath.Directory)
}

// RemoveMaintainedEmptyDirectory detaches path from adds only if it is
// still present there (purely virtual); otherwise it is a no-op, since
// there is nothing virtual left to retract.
func (v *VirtualTarget) RemoveMaintainedEmptyDirectory(path string) error {
	if _, ok := v.Adds.Get(path); ok {
		return v.Adds.Detach(path)
	}
	return nil
}
