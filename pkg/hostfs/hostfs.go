// Package hostfs implements the read adapter from spec §4.4: enumerating a
// real directory's immediate children and probing real metadata. Mutation
// lives separately in pkg/writeadapter's RealTarget; this package is
// read-only.
package hostfs

import (
	"fmt"
	"os"

	"futurecommander/pkg/ferrors"
	"futurecommander/pkg/vpath"
)

// Entry is one child observed on the real filesystem.
type Entry struct {
	Name string
	Kind vpath.Kind
}

// Adapter enumerates and probes a real directory tree rooted at Root.
// Every path handed to its methods is an absolute virtual identity; Adapter
// joins it onto Root to reach the real filesystem.
type Adapter struct {
	Root string
}

// New returns an Adapter rooted at root. The root must already exist as a
// directory.
func New(root string) (*Adapter, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("hostfs: cannot stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("hostfs: root is not a directory: %s", root)
	}
	return &Adapter{Root: root}, nil
}

func (a *Adapter) real(identity string) string {
	if identity == "/" {
		return a.Root
	}
	return a.Root + identity
}

// Stat probes real metadata for identity. It returns
// ferrors.ErrReadTargetDoesNotExist if nothing exists at identity.
func (a *Adapter) Stat(identity string) (vpath.Kind, int64, error) {
	info, err := os.Lstat(a.real(identity))
	if err != nil {
		if os.IsNotExist(err) {
			return vpath.Unknown, 0, ferrors.ErrReadTargetDoesNotExist
		}
		return vpath.Unknown, 0, err
	}
	return kindOf(info), info.Size(), nil
}

// Exists reports whether identity exists on the real filesystem.
func (a *Adapter) Exists(identity string) bool {
	_, _, err := a.Stat(identity)
	return err == nil
}

// Readdir enumerates the immediate children of identity. It fails
// ferrors.ErrReadTargetDoesNotExist if identity is absent and
// ferrors.ErrQueryIsNotADirectory if identity is not a directory.
func (a *Adapter) Readdir(identity string) ([]Entry, error) {
	real := a.real(identity)
	info, err := os.Lstat(real)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ErrReadTargetDoesNotExist
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, ferrors.ErrQueryIsNotADirectory
	}

	entries, err := os.ReadDir(real)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue // entry disappeared mid-listing; skip it
		}
		out = append(out, Entry{Name: e.Name(), Kind: kindOf(info)})
	}
	return out, nil
}

func kindOf(info os.FileInfo) vpath.Kind {
	switch {
	case info.IsDir():
		return vpath.Directory
	case info.Mode()&os.ModeSymlink != 0:
		return vpath.Link
	case info.Mode().IsRegular():
		return vpath.File
	default:
		return vpath.Unknown
	}
}

// Readlink returns the target of a symbolic link at identity.
func (a *Adapter) Readlink(identity string) (string, error) {
	target, err := os.Readlink(a.real(identity))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ferrors.ErrReadTargetDoesNotExist
		}
		return "", err
	}
	return target, nil
}
