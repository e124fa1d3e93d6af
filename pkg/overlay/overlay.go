// Package overlay implements the overlay engine from spec §4.3: the read
// side of the virtual overlay filesystem, composing a real filesystem view
// with two deltas (adds, subs) into a single effective Status per identity,
// and a directory listing that merges real and virtual children.
//
// Composition follows the same try-delta-then-base-minus-whiteouts shape as
// a classic overlay filesystem, against a real mounted directory rather than
// two in-memory tries.
package overlay

import (
	"futurecommander/pkg/delta"
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/hostfs"
	"futurecommander/pkg/vpath"
)

// Status is the composed existence state of one identity (spec §4.3).
type Status int

const (
	// NotExists means nothing real or virtual backs this identity.
	NotExists Status = iota
	// Exists means a real filesystem entry is visible unmodified.
	Exists
	// ExistsVirtually means an add record is visible with nothing real
	// underneath it.
	ExistsVirtually
	// ExistsThroughVirtualParent means identity resolves through a
	// rebound ancestor (a bind created by a directory move) onto a real
	// entry elsewhere.
	ExistsThroughVirtualParent
	// Replaced means an add record shadows a real entry at the same
	// identity.
	Replaced
	// Removed means a sub record hides a real entry that existed on
	// disk.
	Removed
	// RemovedVirtually means a sub record hides an identity that had
	// never existed for real — it was only ever virtual.
	RemovedVirtually
	// AddSubDangling is the fault state: the same identity is present in
	// both adds and subs at once (spec §3 invariant 4).
	AddSubDangling
)

func (s Status) String() string {
	switch s {
	case Exists:
		return "exists"
	case ExistsVirtually:
		return "exists_virtually"
	case ExistsThroughVirtualParent:
		return "exists_through_virtual_parent"
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	case RemovedVirtually:
		return "removed_virtually"
	case AddSubDangling:
		return "add_sub_dangling"
	default:
		return "not_exists"
	}
}

// Visible reports whether the status denotes an entry an observer can
// currently see and operate on.
func (s Status) Visible() bool {
	switch s {
	case Exists, ExistsVirtually, ExistsThroughVirtualParent, Replaced:
		return true
	default:
		return false
	}
}

// Result is the effective record reported alongside a Status: identity is
// always populated, Source/Kind reflect whatever backs the identity in the
// composed view (empty/Unknown when there is none).
type Result struct {
	Status Status
	Record vpath.Record
}

// Engine composes a real filesystem with an adds delta and a subs delta
// into the single effective view spec §4.3 describes.
type Engine struct {
	Real *hostfs.Adapter
	Adds *delta.Delta
	Subs *delta.Delta
}

// New returns an Engine over a real root and the two deltas it overlays.
func New(real *hostfs.Adapter, adds, subs *delta.Delta) *Engine {
	return &Engine{Real: real, Adds: adds, Subs: subs}
}

// Status answers spec §4.3's composition for one identity.
func (e *Engine) Status(identity string) Result {
	addsRec, inAdds := e.Adds.Get(identity)
	_, inSubs := e.Subs.Get(identity)

	if inAdds && inSubs {
		return Result{Status: AddSubDangling, Record: vpath.Record{Identity: identity}}
	}

	if inAdds {
		if e.Real.Exists(identity) {
			return Result{Status: Replaced, Record: *addsRec}
		}
		return Result{Status: ExistsVirtually, Record: *addsRec}
	}

	if inSubs {
		subsRec, _ := e.Subs.Get(identity)
		if e.Real.Exists(identity) {
			return Result{Status: Removed, Record: *subsRec}
		}
		return Result{Status: RemovedVirtually, Record: *subsRec}
	}

	if depth, ancestor, ok := e.Adds.FirstVirtualAncestor(identity); ok && depth > 0 && ancestor.HasSource() {
		if resolved, ok := e.Adds.Resolve(identity); ok {
			kind, _, err := e.Real.Stat(resolved)
			if err == nil {
				return Result{Status: ExistsThroughVirtualParent, Record: vpath.Record{
					Identity: identity, Source: resolved, Kind: kind,
				}}
			}
		}
		return Result{Status: NotExists, Record: vpath.Record{Identity: identity}}
	}

	kind, _, err := e.Real.Stat(identity)
	if err != nil {
		return Result{Status: NotExists, Record: vpath.Record{Identity: identity}}
	}
	if e.maskedByRemovedAncestor(identity) {
		return Result{Status: NotExists, Record: vpath.Record{Identity: identity}}
	}
	return Result{Status: Exists, Record: vpath.Record{Identity: identity, Source: identity, Kind: kind}}
}

// maskedByRemovedAncestor walks identity's ancestors and reports whether any
// of them is subtracted without a covering re-addition, which hides every
// descendant regardless of what the real filesystem still holds (spec §4.3
// composition rule).
func (e *Engine) maskedByRemovedAncestor(identity string) bool {
	for ancestor := vpath.Dir(identity); ancestor != ""; ancestor = vpath.Dir(ancestor) {
		if _, inSubs := e.Subs.Get(ancestor); inSubs {
			if _, inAdds := e.Adds.Get(ancestor); !inAdds {
				return true
			}
		}
		if vpath.IsRoot(ancestor) {
			break
		}
	}
	return false
}

// Entry is one child produced by a directory listing, carrying both its
// effective record and the status it was restated through.
type Entry struct {
	Record vpath.Record
	Status Status
}

// readDir implements spec §4.3's read_dir: real children of the effective
// source (minus anything subtracted) union adds' recorded children (minus
// anything subtracted), each re-stated through Status so its reported
// source and kind reflect the overlay.
func (e *Engine) readDir(path string) ([]Entry, error) {
	st := e.Status(path)
	if !st.Status.Visible() {
		return nil, ferrors.ErrReadTargetDoesNotExist
	}
	if st.Record.Kind != vpath.Directory {
		return nil, ferrors.ErrQueryIsNotADirectory
	}

	byName := make(map[string]Entry)

	var realSource string
	switch st.Status {
	case Exists, Replaced:
		realSource = path
	case ExistsThroughVirtualParent:
		realSource = st.Record.Source
	case ExistsVirtually:
		if st.Record.HasSource() {
			realSource = st.Record.Source
		}
	}

	if realSource != "" {
		if children, err := e.Real.Readdir(realSource); err == nil {
			for _, child := range children {
				childIdentity := vpath.Join(path, child.Name)
				if _, inSubs := e.Subs.Get(childIdentity); inSubs {
					continue
				}
				childStatus := e.Status(childIdentity)
				if childStatus.Status.Visible() {
					byName[child.Name] = Entry{Record: childStatus.Record, Status: childStatus.Status}
				}
			}
		}
	}

	for _, rec := range e.Adds.Children(path) {
		if _, inSubs := e.Subs.Get(rec.Identity); inSubs {
			continue
		}
		childStatus := e.Status(rec.Identity)
		if childStatus.Status.Visible() {
			byName[rec.Name()] = Entry{Record: childStatus.Record, Status: childStatus.Status}
		}
	}

	out := make([]Entry, 0, len(byName))
	for _, entry := range byName {
		out = append(out, entry)
	}
	return out, nil
}

// ReadDir lists path's effective children (spec §4.3, §6 "ls"/"tree").
func (e *Engine) ReadDir(path string) ([]vpath.Record, error) {
	entries, err := e.readDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]vpath.Record, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Record)
	}
	return out, nil
}

// ReadMaintained lists only the children that exist purely virtually (spec
// §6's maintained-entries view: what a commit would actually have to write).
func (e *Engine) ReadMaintained(path string) ([]vpath.Record, error) {
	entries, err := e.readDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]vpath.Record, 0)
	for _, entry := range entries {
		if entry.Status == ExistsVirtually {
			out = append(out, entry.Record)
		}
	}
	return out, nil
}

// IsDirectoryEmpty reports whether path is a visible, empty directory in the
// composed view — the precondition spec §4.5 requires for a bare rmdir.
func (e *Engine) IsDirectoryEmpty(path string) (bool, error) {
	st := e.Status(path)
	if !st.Status.Visible() {
		return false, ferrors.ErrReadTargetDoesNotExist
	}
	if st.Record.Kind != vpath.Directory {
		return false, ferrors.ErrQueryIsNotADirectory
	}
	children, err := e.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(children) == 0, nil
}
