// Package writeadapter implements the write adapter from spec §4.5: two
// concrete targets — RealTarget (mutates the real filesystem) and
// VirtualTarget (mutates a delta) — sharing one Target contract, so the
// apply engine and the operation generator's self-operations can be written
// once against an interface and pointed at either side.
//
// RealTarget issues direct os.* calls against a root. VirtualTarget carries
// the same transactional Mkdir/Create/Remove/Rename shape and
// copy-on-write path, but against a delta.Delta instead of a SQLite store.
package writeadapter

// Target is the shared contract for the eight atomic write operations spec
// §3 enumerates under Atomic.
type Target interface {
	CreateEmptyFile(path string) error
	CreateEmptyDirectory(path string) error
	CopyFileToFile(src, dst string) error
	MoveFileToFile(src, dst string) error
	BindDirectoryToDirectory(src, dst string) error
	RemoveFile(path string) error
	RemoveEmptyDirectory(path string) error
	RemoveMaintainedEmptyDirectory(path string) error
}

// SymlinkCreator is implemented by both targets for the supplemented Link
// leaf kind (SPEC_FULL.md §7), which needs its own primitive because
// CreateEmptyFile cannot carry a link target.
type SymlinkCreator interface {
	CreateSymlink(path, target string) error
}

// Bounded buffer sizes for the real target's streamed file copy (spec §4.5).
const (
	copyReadBufferSize  = 10 << 20 // 10 MiB
	copyWriteBufferSize = 2 << 20  // 2 MiB
)
