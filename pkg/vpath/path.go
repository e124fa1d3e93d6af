// Package vpath implements the path identity used throughout the virtual
// overlay filesystem: normalization, kind tagging, and the small helpers the
// rest of the core builds on.
package vpath

import (
	"errors"
	"strings"
)

// ErrRelative is returned by RequireAbsolute when a caller-supplied path is
// not rooted.
var ErrRelative = errors.New("vpath: path is relative")

// Kind tags the role a virtual path record plays.
type Kind int

const (
	// Unknown means neither file, directory, nor link could be
	// determined; generators abort rather than guess.
	Unknown Kind = iota
	Directory
	File
	Link
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

const sep = "/"

// component classifies one slash-delimited piece of a raw path during
// normalization.
type componentKind int

const (
	compNormal componentKind = iota
	compCurrent                // "."
	compParent                 // ".."
	compRoot                   // the leading "/" itself
	compPrefix                 // a drive-style prefix, e.g. "C:"
)

func classify(part string, isFirst bool) componentKind {
	switch part {
	case "", ".":
		return compCurrent
	case "..":
		return compParent
	}
	if isFirst && len(part) == 2 && part[1] == ':' {
		return compPrefix
	}
	return compNormal
}

// Normalize removes "." components and collapses ".." against real
// (non-parent, non-prefix, non-root) ancestors already on the stack. A root
// marker and any leading drive-style prefix are preserved. In a rooted path
// a ".." directly under the root is dropped ("/.." is "/"); in a relative
// path a leading run of ".." is kept as is ("../.." stays "../.."). An
// entirely empty result normalizes to ".". Normalize is pure and total: it
// never errors.
func Normalize(path string) string {
	if path == "" {
		return "."
	}

	rooted := strings.HasPrefix(path, sep)
	raw := strings.Split(path, sep)

	type stackEntry struct {
		kind componentKind
		text string
	}
	var stack []stackEntry

	for i, part := range raw {
		isFirst := i == 0
		kind := classify(part, isFirst)

		switch kind {
		case compCurrent:
			continue
		case compPrefix:
			stack = append(stack, stackEntry{kind: compPrefix, text: part})
		case compParent:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == compNormal {
					stack = stack[:len(stack)-1]
					continue
				}
				if top.kind == compRoot {
					// ".." at the root is a no-op: it can never escape.
					continue
				}
				if top.kind == compPrefix {
					// ".." right after a drive-style prefix cannot collapse
					// against it (the prefix isn't a real ancestor to climb
					// past) and is preserved unresolved, unlike compRoot.
					stack = append(stack, stackEntry{kind: compParent, text: ".."})
					continue
				}
				// top.kind == compParent: cannot collapse, push another.
			}
			if rooted && len(stack) == 0 {
				// ".." immediately under the root is a no-op.
				continue
			}
			stack = append(stack, stackEntry{kind: compParent, text: ".."})
		default:
			stack = append(stack, stackEntry{kind: compNormal, text: part})
		}
	}

	var b strings.Builder
	if rooted {
		b.WriteString(sep)
	}
	for i, e := range stack {
		if i > 0 {
			if !(rooted && i == 0) {
				b.WriteString(sep)
			}
		}
		b.WriteString(e.text)
	}

	out := b.String()
	if out == "" {
		if rooted {
			return sep
		}
		return "."
	}
	return out
}

// RequireAbsolute rejects any path that is not rooted, for callers that need
// a hard identity boundary (container entry points). Normalize itself never
// rejects relative input — that rejection lives only at this boundary.
func RequireAbsolute(path string) error {
	if !strings.HasPrefix(path, sep) {
		return ErrRelative
	}
	return nil
}

// Join appends a single name component to a normalized path, the way a
// directory copy/move names its children's destinations.
func Join(base, name string) string {
	if base == sep {
		return sep + name
	}
	return base + sep + name
}

// Base returns the final component of a normalized path ("" for the root).
func Base(path string) string {
	path = strings.TrimSuffix(path, sep)
	idx := strings.LastIndex(path, sep)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Dir returns the parent of a normalized path ("" if path has no parent,
// i.e. is the root).
func Dir(path string) string {
	path = strings.TrimSuffix(path, sep)
	idx := strings.LastIndex(path, sep)
	if idx <= 0 {
		if idx == 0 {
			return sep
		}
		return ""
	}
	return path[:idx]
}

// IsRoot reports whether path is the filesystem root.
func IsRoot(path string) bool {
	return path == sep
}

// IsContainedBy reports whether path is child equal to or nested under
// ancestor — used by the CopyIntoItself guard (spec §4.6).
func IsContainedBy(path, ancestor string) bool {
	if path == ancestor {
		return true
	}
	if ancestor == sep {
		return strings.HasPrefix(path, sep)
	}
	return strings.HasPrefix(path, ancestor+sep)
}

// Split breaks a normalized absolute path into its components, e.g.
// "/a/b/c" -> ["a", "b", "c"]; the root normalizes to an empty slice.
func Split(path string) []string {
	if path == "" || path == sep {
		return nil
	}
	trimmed := strings.TrimPrefix(path, sep)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, sep)
}
