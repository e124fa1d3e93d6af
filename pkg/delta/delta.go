// Package delta implements the delta store from spec §3/§4.2: a trie of
// virtual path records layered over parent-identity, supporting attach,
// detach, resolution of a virtual identity back to its real backing source,
// and the nearest-virtual-ancestor walk the overlay engine needs for both
// reads and writes.
//
// The trie shape generalizes a whiteout-cache idea: instead of a boolean
// "is this path whited out" leaf, each node optionally carries a full
// vpath.Record, and instead of one cache per overlay there are two
// independent Delta values (adds, subs) composed by the overlay engine.
package delta

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/vpath"
)

// resolution is the cached outcome of a Resolve call, kept as a struct
// rather than a bare string so a cached "no ancestor with a source" miss
// is distinguishable from "not yet cached."
type resolution struct {
	real string
	ok   bool
}

func newResolveCache() *lru.Cache[string, resolution] {
	cache, _ := lru.New[string, resolution](4096)
	return cache
}

// node is one path component's slot in the trie.
type node struct {
	children map[string]*node
	record   *vpath.Record
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Delta is a map from parent identity to children set, represented as a
// trie for O(depth) ancestor and resolution walks. The zero value is not
// usable; construct with New.
type Delta struct {
	root *node
	// resolveCache memoizes Resolve lookups keyed by the queried path, an
	// LRU over path -> resolved real path. Any call that mutates the trie
	// purges it rather than tracking fine-grained invalidation, since a
	// single rebind can change the resolution of an arbitrarily large
	// subtree beneath it.
	resolveCache *lru.Cache[string, resolution]
}

// New returns an empty delta.
func New() *Delta {
	return &Delta{root: newNode(), resolveCache: newResolveCache()}
}

// Attach records a new virtual path. It fails AlreadyExists if identity is
// already present, or VirtualParentIsFile if any ancestor entry already in
// this delta is recorded as a File (spec §4.2).
func (d *Delta) Attach(identity, source string, kind vpath.Kind) error {
	parts := vpath.Split(identity)
	cur := d.root
	for _, part := range parts {
		if cur.record != nil && cur.record.Kind == vpath.File {
			return ferrors.ErrVirtualParentFile
		}
		child, ok := cur.children[part]
		if !ok {
			child = newNode()
			cur.children[part] = child
		}
		cur = child
	}
	if cur.record != nil {
		return ferrors.ErrAlreadyExists
	}
	cur.record = &vpath.Record{Identity: identity, Source: source, Kind: kind}
	d.resolveCache.Purge()
	return nil
}

// AttachLink is a convenience over Attach for a symlink carrying a target.
func (d *Delta) AttachLink(identity, source, target string) error {
	if err := d.Attach(identity, source, vpath.Link); err != nil {
		return err
	}
	rec, _ := d.Get(identity)
	rec.Target = target
	return nil
}

// Detach removes a record. It fails DoesNotExist if identity is absent, and
// cleans up any now-empty hierarchy of transit nodes above it.
func (d *Delta) Detach(identity string) error {
	parts := vpath.Split(identity)
	path := make([]*node, 0, len(parts)+1)
	names := make([]string, 0, len(parts))
	cur := d.root
	path = append(path, cur)

	for _, part := range parts {
		child, ok := cur.children[part]
		if !ok {
			return ferrors.ErrDoesNotExist
		}
		path = append(path, child)
		names = append(names, part)
		cur = child
	}

	if cur.record == nil {
		return ferrors.ErrDoesNotExist
	}
	cur.record = nil

	// Clean up empty transit nodes bottom-up, stopping at root or at the
	// first node still needed (has a record or remaining children).
	for i := len(names) - 1; i >= 0; i-- {
		parent := path[i]
		child := path[i+1]
		name := names[i]
		if child.record == nil && len(child.children) == 0 {
			delete(parent.children, name)
		} else {
			break
		}
	}
	d.resolveCache.Purge()
	return nil
}

// Get returns the record at identity, if any.
func (d *Delta) Get(identity string) (*vpath.Record, bool) {
	n := d.walk(identity)
	if n == nil || n.record == nil {
		return nil, false
	}
	return n.record, true
}

// IsDirectory reports whether identity is present and recorded as a Directory.
func (d *Delta) IsDirectory(identity string) bool {
	rec, ok := d.Get(identity)
	return ok && rec.Kind == vpath.Directory
}

// IsFile reports whether identity is present and recorded as a File.
func (d *Delta) IsFile(identity string) bool {
	rec, ok := d.Get(identity)
	return ok && rec.Kind == vpath.File
}

// Children returns the records directly filed under parent in this delta,
// uniquely keyed by name (spec §3 "Children set").
func (d *Delta) Children(parent string) []*vpath.Record {
	n := d.walk(parent)
	if n == nil {
		return nil
	}
	out := make([]*vpath.Record, 0, len(n.children))
	for _, child := range n.children {
		if child.record != nil {
			out = append(out, child.record)
		}
	}
	return out
}

// walk returns the trie node at identity, or nil if no such node exists
// (meaning nothing at or under identity is in this delta).
func (d *Delta) walk(identity string) *node {
	cur := d.root
	for _, part := range vpath.Split(identity) {
		child, ok := cur.children[part]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

// FirstVirtualAncestor returns the deepest ancestor of path (including path
// itself) present in this delta, along with the depth (number of matched
// components) at which it was found.
func (d *Delta) FirstVirtualAncestor(path string) (depth int, record *vpath.Record, ok bool) {
	cur := d.root
	if cur.record != nil {
		record, depth, ok = cur.record, 0, true
	}
	for i, part := range vpath.Split(path) {
		child, exists := cur.children[part]
		if !exists {
			break
		}
		cur = child
		if cur.record != nil {
			record, depth, ok = cur.record, i+1, true
		}
	}
	return depth, record, ok
}

// Resolve locates the nearest ancestor of path that is in this delta with a
// source, then rebases path's tail onto that source (spec §4.2). It
// returns ok=false if no such ancestor exists.
func (d *Delta) Resolve(path string) (realPath string, ok bool) {
	if cached, hit := d.resolveCache.Get(path); hit {
		return cached.real, cached.ok
	}

	parts := vpath.Split(path)
	cur := d.root
	var lastSource *vpath.Record
	var lastDepth int
	if cur.record != nil && cur.record.HasSource() {
		lastSource, lastDepth = cur.record, 0
	}
	for i, part := range parts {
		child, exists := cur.children[part]
		if !exists {
			break
		}
		cur = child
		if cur.record != nil && cur.record.HasSource() {
			lastSource, lastDepth = cur.record, i+1
		}
	}
	if lastSource == nil {
		d.resolveCache.Add(path, resolution{ok: false})
		return "", false
	}
	tail := parts[lastDepth:]
	real := lastSource.Source
	for _, part := range tail {
		real = vpath.Join(real, part)
	}
	d.resolveCache.Add(path, resolution{real: real, ok: true})
	return real, true
}

// allRecords appends every record in this delta to out, depth-first.
func (d *Delta) allRecords(n *node, out *[]*vpath.Record) {
	if n.record != nil {
		*out = append(*out, n.record)
	}
	for _, child := range n.children {
		d.allRecords(child, out)
	}
}

// All returns every record currently held by this delta.
func (d *Delta) All() []*vpath.Record {
	var out []*vpath.Record
	d.allRecords(d.root, &out)
	return out
}

// Clone returns a deep copy, the cheap-clone-by-value behavior spec §5
// relies on for concurrent previews.
func (d *Delta) Clone() *Delta {
	return &Delta{root: cloneNode(d.root), resolveCache: newResolveCache()}
}

func cloneNode(n *node) *node {
	c := newNode()
	if n.record != nil {
		rec := *n.record
		c.record = &rec
	}
	for name, child := range n.children {
		c.children[name] = cloneNode(child)
	}
	return c
}

// upsert force-sets a record regardless of prior existence, bypassing
// Attach's AlreadyExists check. It backs the Add/Sub set operations, which
// are plain data combination rather than the invariant-checked live API.
func (d *Delta) upsert(rec *vpath.Record) {
	cur := d.root
	for _, part := range vpath.Split(rec.Identity) {
		child, ok := cur.children[part]
		if !ok {
			child = newNode()
			cur.children[part] = child
		}
		cur = child
	}
	copyRec := *rec
	cur.record = &copyRec
}

// remove force-clears a record and prunes empty transit nodes, bypassing
// Detach's DoesNotExist check.
func (d *Delta) remove(identity string) {
	parts := vpath.Split(identity)
	path := make([]*node, 0, len(parts)+1)
	names := make([]string, 0, len(parts))
	cur := d.root
	path = append(path, cur)
	for _, part := range parts {
		child, ok := cur.children[part]
		if !ok {
			return
		}
		path = append(path, child)
		names = append(names, part)
		cur = child
	}
	cur.record = nil
	for i := len(names) - 1; i >= 0; i-- {
		parent := path[i]
		child := path[i+1]
		if child.record == nil && len(child.children) == 0 {
			delete(parent.children, names[i])
		} else {
			break
		}
	}
}

// Add returns a new delta containing exactly the identities required to
// carry this delta's state modified by other's attachments (spec §4.2 "Set
// operations"). It is the `Δ + Δ'` operation from spec §8's round-trip law.
func (d *Delta) Add(other *Delta) *Delta {
	out := d.Clone()
	for _, rec := range other.All() {
		out.upsert(rec)
	}
	return out
}

// Sub returns a new delta containing this delta's state with every
// identity attached in other detached again (spec §4.2, the `Δ - Δ'`
// operation). (Δ + Δ') - Δ' == Δ whenever Δ' ∩ Δ = ∅ (spec §8).
func (d *Delta) Sub(other *Delta) *Delta {
	out := d.Clone()
	for _, rec := range other.All() {
		out.remove(rec.Identity)
	}
	return out
}

// Empty reports whether the delta carries no records at all.
func (d *Delta) Empty() bool {
	return len(d.root.children) == 0 && d.root.record == nil
}
