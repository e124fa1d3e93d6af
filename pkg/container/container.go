// Package container wires delta + overlay + guard + operation + apply
// behind the single external interface spec §6 names: copy, move, remove,
// create, status, read_dir, reset, apply. A base filesystem, two delta
// stores, and a guard are wired together behind one type, the way a
// constructor wires a base filesystem, a delta store, and a whiteout cache
// behind one fs.FS-shaped type — except here the wiring threads through
// every component this module adds instead of a single SQLite-backed
// delta.
package container

import (
	"fmt"

	"futurecommander/pkg/apply"
	"futurecommander/pkg/delta"
	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/guard"
	"futurecommander/pkg/hostfs"
	"futurecommander/pkg/operation"
	"futurecommander/pkg/overlay"
	"futurecommander/pkg/store"
	"futurecommander/pkg/vpath"
	"futurecommander/pkg/writeadapter"
)

// Config configures a Container, the same struct-plus-DefaultXxx idiom the
// teacher uses for db.Config, extended with the overlay root and the
// guard strategy selector spec §6's CLI surface exposes as --guard.
type Config struct {
	// Root is the real directory the overlay is laid over.
	Root string
	// StatePath, if non-empty, is the SQLite file save/import persist to.
	StatePath string
	// Guard authorizes merges and overwrites; Zealous{} if nil.
	Guard guard.Guard
}

// DefaultConfig returns a Config rooted at root with a Zealous guard and no
// persisted state path.
func DefaultConfig(root string) Config {
	return Config{Root: root, Guard: guard.Zealous{}}
}

// Container owns one overlay's deltas and every component needed to stage
// and commit mutations against it (spec §5 "the overlay state is owned by
// a single container; all mutation goes through its write-adapter
// interface").
type Container struct {
	cfg  Config
	real *hostfs.Adapter
	adds *delta.Delta
	subs *delta.Delta
}

// New opens a Container rooted at cfg.Root.
func New(cfg Config) (*Container, error) {
	if cfg.Guard == nil {
		cfg.Guard = guard.Zealous{}
	}
	real, err := hostfs.New(cfg.Root)
	if err != nil {
		return nil, err
	}
	return &Container{cfg: cfg, real: real, adds: delta.New(), subs: delta.New()}, nil
}

func (c *Container) view() *overlay.Engine {
	return overlay.New(c.real, c.adds, c.subs)
}

// Copy stages src → dst (spec §6 copy(src, dst, merge, overwrite, guard)).
func (c *Container) Copy(src, dst string, merge, overwrite bool) error {
	if err := requireAbsolute(src, dst); err != nil {
		return err
	}
	return c.stage(operation.NewCopyGenerator(src, dst, merge, overwrite, c.cfg.Guard))
}

// Move stages src → dst, subtracting src (spec §6 move).
func (c *Container) Move(src, dst string, merge, overwrite bool) error {
	if err := requireAbsolute(src, dst); err != nil {
		return err
	}
	return c.stage(operation.NewMoveGenerator(src, dst, merge, overwrite, c.cfg.Guard))
}

// Remove stages the subtraction of path (spec §6 remove).
func (c *Container) Remove(path string, recursive bool) error {
	if err := requireAbsolute(path); err != nil {
		return err
	}
	return c.stage(operation.NewRemoveGenerator(path, recursive))
}

// Create stages a fresh entry at path (spec §6 create).
func (c *Container) Create(path string, kind vpath.Kind, recursive, overwrite bool, linkTarget string) error {
	if err := requireAbsolute(path); err != nil {
		return err
	}
	return c.stage(operation.NewCreateGenerator(path, kind, recursive, overwrite, linkTarget, c.cfg.Guard))
}

// requireAbsolute rejects any relative identity at the container boundary
// (SPEC_FULL.md §5, recovered from the original shell's requirement to
// resolve relative input before handing it to the core), before any
// generator is even constructed.
func requireAbsolute(paths ...string) error {
	for _, p := range paths {
		if err := vpath.RequireAbsolute(p); err != nil {
			return err
		}
	}
	return nil
}

// stage drains a generator against this container's virtual write target.
func (c *Container) stage(g operation.Generator) error {
	target := writeadapter.NewVirtualTarget(c.real, c.adds, c.subs)
	view := c.view()
	for {
		op, err := g.Next(view)
		if err != nil {
			if ferrors.Recoverable(err) {
				return nil
			}
			return err
		}
		if op == nil {
			return nil
		}
		if err := op.Apply(target); err != nil {
			return err
		}
	}
}

// Status answers spec §6's status(path) → Status.
func (c *Container) Status(path string) overlay.Result {
	return c.view().Status(path)
}

// ReadDir answers spec §6's read_dir(path) → iterable<Entry>.
func (c *Container) ReadDir(path string) ([]overlay.Entry, error) {
	view := c.view()
	records, err := view.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]overlay.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, overlay.Entry{Record: rec, Status: view.Status(rec.Identity).Status})
	}
	return entries, nil
}

// Reset discards both deltas (spec §6 reset() → ()).
func (c *Container) Reset() {
	c.adds = delta.New()
	c.subs = delta.New()
}

// Apply commits the staged deltas to the real filesystem and clears them on
// success (spec §6 apply() → (), spec §4.8).
func (c *Container) Apply() error {
	target := writeadapter.NewRealTarget(c.cfg.Root)
	engine := apply.New(target)
	if err := engine.Apply(c.adds, c.subs); err != nil {
		return err
	}
	c.Reset()
	return nil
}

// Preview renders every atomic the currently staged deltas would produce
// if applied, without performing any write.
func (c *Container) Preview() []string {
	plan := apply.Plan(c.adds, c.subs)
	lines := make([]string, len(plan))
	for i, op := range plan {
		lines[i] = op.String()
	}
	return lines
}

// Save persists the staged deltas to cfg.StatePath (spec §6 "save").
func (c *Container) Save() error {
	if c.cfg.StatePath == "" {
		return fmt.Errorf("container: no state path configured")
	}
	s, err := store.Open(store.DefaultConfig(c.cfg.StatePath))
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Save(c.adds, c.subs)
}

// Import replaces the staged deltas with whatever is persisted at
// cfg.StatePath (spec §6 "import").
func (c *Container) Import() error {
	if c.cfg.StatePath == "" {
		return fmt.Errorf("container: no state path configured")
	}
	s, err := store.Open(store.DefaultConfig(c.cfg.StatePath))
	if err != nil {
		return err
	}
	defer s.Close()
	adds, subs, err := s.Import()
	if err != nil {
		return err
	}
	c.adds, c.subs = adds, subs
	return nil
}
