// Package guard implements the capability-arbitration layer from spec §4.7:
// one decision point the operation generator consults before a merge or an
// overwrite, with two concrete strategies.
package guard

import "github.com/google/uuid"

// Capability names the one of two decisions a generator ever asks a guard
// to arbitrate.
type Capability int

const (
	// Merge gates recursing into an already-existing destination directory.
	Merge Capability = iota
	// Overwrite gates replacing an already-existing destination file.
	Overwrite
)

func (c Capability) String() string {
	if c == Merge {
		return "merge"
	}
	return "overwrite"
}

// Guard answers authorize(capability, default, path) -> bool | error (spec
// §4.7). A guard may also refuse outright by returning an error, which
// aborts the whole request rather than merely skipping the subtree.
type Guard interface {
	Authorize(capability Capability, def bool, path string) (bool, error)
}

// Zealous returns the caller-supplied default unconditionally — the guard a
// request gets when it passes --merge/--overwrite flags directly through
// with no further arbitration.
type Zealous struct{}

func (Zealous) Authorize(_ Capability, def bool, _ string) (bool, error) {
	return def, nil
}

// Decision is one recorded authorize call, kept for replay by Registrar.
type Decision struct {
	ID         string
	Capability Capability
	Path       string
	Default    bool
	Granted    bool
}

// Registrar records every decision it makes (using the default verbatim)
// so a session can later inspect or replay exactly what was authorized —
// the spec §4.7 "records the decision for replay" strategy.
type Registrar struct {
	Decisions []Decision
}

// NewRegistrar returns an empty Registrar.
func NewRegistrar() *Registrar {
	return &Registrar{}
}

func (r *Registrar) Authorize(capability Capability, def bool, path string) (bool, error) {
	d := Decision{
		ID:         uuid.NewString(),
		Capability: capability,
		Path:       path,
		Default:    def,
		Granted:    def,
	}
	r.Decisions = append(r.Decisions, d)
	return d.Granted, nil
}
