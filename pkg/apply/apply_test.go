package apply

import (
	"os"
	"path/filepath"
	"testing"

	"futurecommander/pkg/delta"
	"futurecommander/pkg/vpath"
	"futurecommander/pkg/writeadapter"
)

func TestApplyCreatesFromNoSourceAdd(t *testing.T) {
	root := t.TempDir()
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/new.txt", "", vpath.File); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "new.txt")); err != nil {
		t.Fatalf("expected file created: %v", err)
	}
}

func TestApplyCopiesWhenSourceNotSubtracted(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/dst.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src.txt")); err != nil {
		t.Fatal("expected source to survive a plain copy")
	}
	if _, err := os.Stat(filepath.Join(root, "dst.txt")); err != nil {
		t.Fatal("expected destination to exist")
	}
}

func TestApplyMovesWhenSourceClaimed(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/dst.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := subs.Attach("/src.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src.txt")); !os.IsNotExist(err) {
		t.Fatal("expected source to be consumed by the move")
	}
	if _, err := os.Stat(filepath.Join(root, "dst.txt")); err != nil {
		t.Fatal("expected destination to exist")
	}
}

func TestApplyDegradesToCopyWhenSourceSharedByTwoAdds(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "src.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/a.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := adds.Attach("/b.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := subs.Attach("/src.txt", "/src.txt", vpath.File); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a.txt")); err != nil {
		t.Fatal("expected a.txt to exist (either the winning move or the degraded copy)")
	}
	if _, err := os.Stat(filepath.Join(root, "b.txt")); err != nil {
		t.Fatal("expected b.txt to exist (either the winning move or the degraded copy)")
	}
}

func TestApplyBindsDirectoryAddWithSource(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "srcdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "srcdir", "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/dstdir", "/srcdir", vpath.Directory); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "dstdir", "f.txt")); err != nil {
		t.Fatalf("expected moved directory's contents at dstdir: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "srcdir"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected srcdir to remain as an empty directory: %v", err)
	}
}

func TestApplyRemovesDeepestFirst(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "d", "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "d", "child", "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := writeadapter.NewRealTarget(root)
	adds, subs := delta.New(), delta.New()
	if err := subs.Attach("/d/child/f.txt", "/d/child/f.txt", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := subs.Attach("/d/child", "/d/child", vpath.Directory); err != nil {
		t.Fatal(err)
	}
	if err := subs.Attach("/d", "/d", vpath.Directory); err != nil {
		t.Fatal(err)
	}

	if err := New(target).Apply(adds, subs); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "d")); !os.IsNotExist(err) {
		t.Fatal("expected /d to be fully removed")
	}
}
