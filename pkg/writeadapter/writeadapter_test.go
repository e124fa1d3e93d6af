package writeadapter

import (
	"os"
	"path/filepath"
	"testing"

	"futurecommander/pkg/delta"
	"futurecommander/pkg/hostfs"
	"futurecommander/pkg/vpath"
)

func newTestAdapter(t *testing.T) *hostfs.Adapter {
	t.Helper()
	a, err := hostfs.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestRealTargetCreateAndRemoveFile(t *testing.T) {
	root := t.TempDir()
	r := NewRealTarget(root)

	if err := r.CreateEmptyFile("/a.txt"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a.txt")); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if err := r.CreateEmptyFile("/a.txt"); err == nil {
		t.Fatal("expected DestinationAlreadyExists on second create")
	}
	if err := r.RemoveFile("/a.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a.txt")); !os.IsNotExist(err) {
		t.Fatal("expected file to be gone")
	}
}

func TestRealTargetCopyFileToFile(t *testing.T) {
	root := t.TempDir()
	r := NewRealTarget(root)
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.CopyFileToFile("/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("copy content mismatch: %q", got)
	}
}

func TestRealTargetMoveFileToFile(t *testing.T) {
	root := t.TempDir()
	r := NewRealTarget(root)
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.MoveFileToFile("/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src.txt")); !os.IsNotExist(err) {
		t.Fatal("expected src to be gone")
	}
	if _, err := os.Stat(filepath.Join(root, "dst.txt")); err != nil {
		t.Fatal("expected dst to exist")
	}
}

func TestRealTargetRemoveEmptyDirectoryRejectsNonEmpty(t *testing.T) {
	root := t.TempDir()
	r := NewRealTarget(root)
	if err := os.MkdirAll(filepath.Join(root, "d", "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := r.RemoveEmptyDirectory("/d"); err == nil {
		t.Fatal("expected DirectoryIsNotEmpty")
	}
}

func TestVirtualTargetCreateAndRemove(t *testing.T) {
	adds, subs := delta.New(), delta.New()
	v := NewVirtualTarget(newTestAdapter(t), adds, subs)

	if err := v.CreateEmptyFile("/a"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := adds.Get("/a"); !ok {
		t.Fatal("expected /a in adds")
	}
	if err := v.RemoveFile("/a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := adds.Get("/a"); ok {
		t.Fatal("expected /a cleared from adds after remove")
	}
	if _, ok := subs.Get("/a"); ok {
		t.Fatal("/a was only ever a pending addition: removing it must not leave a subs entry")
	}
}

func TestVirtualTargetRemoveRealEntryRecordsSub(t *testing.T) {
	adds, subs := delta.New(), delta.New()
	real := newTestAdapter(t)
	if err := os.WriteFile(filepath.Join(real.Root, "real-on-disk"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	v := NewVirtualTarget(real, adds, subs)

	if err := v.RemoveFile("/real-on-disk"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := subs.Get("/real-on-disk"); !ok {
		t.Fatal("expected a real entry's removal to be recorded in subs")
	}
}

// TestVirtualTargetRemoveReplacedEntryStillRecordsSub covers the case an
// addition shadows a real entry at the same identity (overwrite copy): a
// later remove of that identity must not just detach the add and silently
// reveal the real entry again, it must also subtract it.
func TestVirtualTargetRemoveReplacedEntryStillRecordsSub(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "dst.txt"), []byte("real"), 0o644); err != nil {
		t.Fatal(err)
	}
	real, err := hostfs.New(root)
	if err != nil {
		t.Fatal(err)
	}
	adds, subs := delta.New(), delta.New()
	v := NewVirtualTarget(real, adds, subs)

	if err := v.CopyFileToFile("/src.txt", "/dst.txt"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if _, ok := adds.Get("/dst.txt"); !ok {
		t.Fatal("expected /dst.txt staged as an overwrite addition")
	}

	if err := v.RemoveFile("/dst.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := adds.Get("/dst.txt"); ok {
		t.Fatal("expected /dst.txt cleared from adds after remove")
	}
	if _, ok := subs.Get("/dst.txt"); !ok {
		t.Fatal("expected /dst.txt recorded in subs so the shadowed real file stays hidden")
	}
}

func TestVirtualTargetMoveFileToFile(t *testing.T) {
	adds, subs := delta.New(), delta.New()
	v := NewVirtualTarget(newTestAdapter(t), adds, subs)

	if err := v.MoveFileToFile("/src", "/dst"); err != nil {
		t.Fatalf("move: %v", err)
	}
	rec, ok := adds.Get("/dst")
	if !ok || rec.Source != "/src" {
		t.Fatalf("expected /dst bound to /src, got %+v ok=%v", rec, ok)
	}
	if _, ok := subs.Get("/src"); !ok {
		t.Fatal("expected /src recorded as subtracted")
	}
}

func TestVirtualTargetBindThenRemoveMaintained(t *testing.T) {
	adds, subs := delta.New(), delta.New()
	v := NewVirtualTarget(newTestAdapter(t), adds, subs)

	if err := adds.Attach("/srcdir", "", vpath.Directory); err != nil {
		t.Fatal(err)
	}
	if err := v.BindDirectoryToDirectory("/srcdir", "/dstdir"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, ok := adds.Get("/srcdir"); !ok {
		t.Fatal("expected /srcdir to remain in adds after bind")
	}
	if err := v.RemoveMaintainedEmptyDirectory("/srcdir"); err != nil {
		t.Fatalf("remove maintained: %v", err)
	}
	if _, ok := adds.Get("/srcdir"); ok {
		t.Fatal("expected /srcdir to be gone after remove maintained")
	}
	if _, ok := subs.Get("/srcdir"); ok {
		t.Fatal("remove maintained must never write a sub entry")
	}
}
