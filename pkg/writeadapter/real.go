package writeadapter

import (
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"

	"futurecommander/pkg/ferrors"
)

// RealTarget mutates the real filesystem rooted at Root, implementing the
// Target contract's Mkdir/Create/Remove/Rename family with direct os.*
// calls against that root rather than a FileSystem-interface passthrough.
type RealTarget struct {
	Root string
}

// NewRealTarget returns a RealTarget rooted at root.
func NewRealTarget(root string) *RealTarget {
	return &RealTarget{Root: root}
}

func (r *RealTarget) real(identity string) string {
	if identity == "/" {
		return r.Root
	}
	return r.Root + identity
}

// statKind reports identity's shape without following symlinks. isFile is
// true for a regular file or a symlink — both are treated as copyable leaf
// content by CopyFileToFile/MoveFileToFile, which branch internally on
// os.ModeSymlink to read-link-and-relink instead of streaming bytes.
func (r *RealTarget) statKind(identity string) (isDir, isFile bool, exists bool, err error) {
	info, statErr := os.Lstat(r.real(identity))
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return false, false, false, nil
		}
		return false, false, false, statErr
	}
	isFile = info.Mode().IsRegular() || info.Mode()&os.ModeSymlink != 0
	return info.IsDir(), isFile, true, nil
}

func (r *RealTarget) checkParent(identity string) error {
	parent := parentOf(identity)
	isDir, _, exists, err := r.statKind(parent)
	if err != nil {
		return err
	}
	if !exists {
		return ferrors.ErrParentDoesNotExist
	}
	if !isDir {
		return ferrors.ErrParentIsNotADirectory
	}
	return nil
}

func parentOf(identity string) string {
	idx := lastSlash(identity)
	if idx <= 0 {
		return "/"
	}
	return identity[:idx]
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// CreateEmptyFile creates an empty regular file at path.
func (r *RealTarget) CreateEmptyFile(path string) error {
	if err := r.checkParent(path); err != nil {
		return err
	}
	_, _, exists, err := r.statKind(path)
	if err != nil {
		return err
	}
	if exists {
		return ferrors.ErrDestinationAlreadyExists
	}
	f, err := os.OpenFile(r.real(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// CreateSymlink creates a symbolic link at path pointing at target. It is
// not one of spec §4.5's eight named atomics — Link is a supplemented leaf
// kind (SPEC_FULL.md §7) whose creation still needs a real-side primitive,
// since CreateEmptyFile cannot carry a link target.
func (r *RealTarget) CreateSymlink(path, target string) error {
	if err := r.checkParent(path); err != nil {
		return err
	}
	_, _, exists, err := r.statKind(path)
	if err != nil {
		return err
	}
	if exists {
		return ferrors.ErrDestinationAlreadyExists
	}
	return os.Symlink(target, r.real(path))
}

// CreateEmptyDirectory creates an empty directory at path.
func (r *RealTarget) CreateEmptyDirectory(path string) error {
	if err := r.checkParent(path); err != nil {
		return err
	}
	_, _, exists, err := r.statKind(path)
	if err != nil {
		return err
	}
	if exists {
		return ferrors.ErrDestinationAlreadyExists
	}
	return os.Mkdir(r.real(path), 0o755)
}

// CopyFileToFile streams src's content onto dst in bounded buffers (spec
// §4.5), flushing on completion. dst is created if absent, truncated if it
// already exists as a file.
func (r *RealTarget) CopyFileToFile(src, dst string) error {
	_, srcIsFile, srcExists, err := r.statKind(src)
	if err != nil {
		return err
	}
	if !srcExists {
		return ferrors.ErrInfraSourceDoesNotExist
	}
	if !srcIsFile {
		return ferrors.ErrSourceIsNotAFile
	}
	if err := r.checkParent(dst); err != nil {
		return err
	}
	_, dstIsFile, dstExists, err := r.statKind(dst)
	if err != nil {
		return err
	}
	if dstExists && !dstIsFile {
		return ferrors.ErrDestinationIsNotAFile
	}

	if srcInfo, err := os.Lstat(r.real(src)); err == nil && srcInfo.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(r.real(src))
		if err != nil {
			return err
		}
		if dstExists {
			if err := os.Remove(r.real(dst)); err != nil {
				return err
			}
		}
		return os.Symlink(target, r.real(dst))
	}

	in, err := os.Open(r.real(src))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(r.real(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	reader := bufio.NewReaderSize(in, copyReadBufferSize)
	writer := bufio.NewWriterSize(out, copyWriteBufferSize)
	if _, err := io.Copy(writer, reader); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return out.Sync()
}

// MoveFileToFile renames src onto dst, falling back to copy+remove when the
// two paths straddle a device boundary (EXDEV).
func (r *RealTarget) MoveFileToFile(src, dst string) error {
	_, srcIsFile, srcExists, err := r.statKind(src)
	if err != nil {
		return err
	}
	if !srcExists {
		return ferrors.ErrInfraSourceDoesNotExist
	}
	if !srcIsFile {
		return ferrors.ErrSourceIsNotAFile
	}
	if err := r.checkParent(dst); err != nil {
		return err
	}
	_, dstIsFile, dstExists, err := r.statKind(dst)
	if err != nil {
		return err
	}
	if dstExists && !dstIsFile {
		return ferrors.ErrDestinationIsNotAFile
	}

	err = os.Rename(r.real(src), r.real(dst))
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := r.CopyFileToFile(src, dst); err != nil {
		return err
	}
	return os.Remove(r.real(src))
}

// BindDirectoryToDirectory rebinds src's directory onto dst, leaving src
// intact. On the real target this is a rename when same-device, or a
// recursive copy when it straddles a device boundary — src is left in place
// either way (the generator removes it later via
// RemoveMaintainedEmptyDirectory once its children have drained).
func (r *RealTarget) BindDirectoryToDirectory(src, dst string) error {
	srcIsDir, _, srcExists, err := r.statKind(src)
	if err != nil {
		return err
	}
	if !srcExists {
		return ferrors.ErrInfraSourceDoesNotExist
	}
	if !srcIsDir {
		return ferrors.ErrSourceIsNotADirectory
	}
	if err := r.checkParent(dst); err != nil {
		return err
	}
	_, _, dstExists, err := r.statKind(dst)
	if err != nil {
		return err
	}
	if dstExists {
		return ferrors.ErrDestinationAlreadyExists
	}

	if err := os.Rename(r.real(src), r.real(dst)); err == nil {
		return os.Mkdir(r.real(src), 0o755)
	} else if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return r.copyTree(src, dst)
}

func (r *RealTarget) copyTree(src, dst string) error {
	if err := os.Mkdir(r.real(dst), 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(r.real(src))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc := src + "/" + entry.Name()
		childDst := dst + "/" + entry.Name()
		if entry.IsDir() {
			if err := r.copyTree(childSrc, childDst); err != nil {
				return err
			}
			continue
		}
		if err := r.CopyFileToFile(childSrc, childDst); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFile removes the regular file at path.
func (r *RealTarget) RemoveFile(path string) error {
	_, isFile, exists, err := r.statKind(path)
	if err != nil {
		return err
	}
	if !exists {
		return ferrors.ErrPathDoesNotExist
	}
	if !isFile {
		return ferrors.ErrSourceIsNotAFile
	}
	return os.Remove(r.real(path))
}

// RemoveEmptyDirectory removes the directory at path, which must be empty.
func (r *RealTarget) RemoveEmptyDirectory(path string) error {
	isDir, _, exists, err := r.statKind(path)
	if err != nil {
		return err
	}
	if !exists {
		return ferrors.ErrPathDoesNotExist
	}
	if !isDir {
		return ferrors.ErrSourceIsNotADirectory
	}
	entries, err := os.ReadDir(r.real(path))
	if err != nil {
		return err
	}
	if len(entries) != 0 {
		return ferrors.ErrDirectoryIsNotEmpty
	}
	return os.Remove(r.real(path))
}

// RemoveMaintainedEmptyDirectory never touches real disk: a maintained
// directory is by definition purely virtual, so the real target has
// nothing to remove.
func (r *RealTarget) RemoveMaintainedEmptyDirectory(path string) error {
	return nil
}
