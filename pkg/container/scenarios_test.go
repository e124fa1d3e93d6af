package container

import (
	"os"
	"path/filepath"
	"testing"

	"futurecommander/pkg/overlay"
	"futurecommander/pkg/vpath"
)

// newChrootContainer returns a Container over an empty temporary root, with
// no fixture files (unlike newTestContainer). The scenarios address paths
// directly under that root (/p/q/r rather than /T/p/q/r).
func newChrootContainer(t *testing.T) *Container {
	t.Helper()
	root := t.TempDir()
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c
}

// Scenario 1: No-dangling roundtrip.
func TestScenarioNoDanglingRoundtrip(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "A"), 0o755); err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := c.Copy("/A", "/APRIME", false, false); err != nil {
		t.Fatalf("cp /A /APRIME: %v", err)
	}
	if err := c.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := c.Remove("/A", false); err != nil {
		t.Fatalf("rm /A: %v", err)
	}
	if err := c.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := c.Copy("/APRIME", "/A", false, false); err != nil {
		t.Fatalf("cp /APRIME /A: %v", err)
	}
	if err := c.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := c.Remove("/APRIME", false); err != nil {
		t.Fatalf("rm /APRIME: %v", err)
	}
	if err := c.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}

	res := c.Status("/A")
	if res.Record.Kind != vpath.Directory {
		t.Fatalf("expected /A to remain a directory, got kind %v", res.Record.Kind)
	}
	if res.Record.Source != "/A" {
		t.Fatalf("expected status(/A).source == /A, got %q", res.Record.Source)
	}
	if c.Status("/APRIME").Status != overlay.NotExists {
		t.Fatal("expected /APRIME to no longer exist")
	}
}

// Scenario 2: File<->Directory interversion.
func TestScenarioFileDirectoryInterversion(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "A"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "A", "C"), []byte("c"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "B"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	steps := []struct {
		op        string
		src, dst  string
		recursive bool
	}{
		{"cp", "/A/C", "/C", false},
		{"rm", "/A/C", "", false},
		{"cp", "/C", "/Z", false},
		{"rm", "/C", "", false},
		{"cp", "/B", "/C", false},
		{"rm", "/B", "", false},
		{"cp", "/Z", "/B", false},
		{"rm", "/Z", "", false},
	}
	// The whole sequence stays staged (no Apply between steps): committing
	// early would flatten each identity back to a plain real entry and
	// erase exactly the chained provenance this scenario checks.
	for _, s := range steps {
		var err error
		switch s.op {
		case "cp":
			err = c.Copy(s.src, s.dst, false, false)
		case "rm":
			err = c.Remove(s.src, s.recursive)
		}
		if err != nil {
			t.Fatalf("%s %s: %v", s.op, s.src, err)
		}
	}

	resB := c.Status("/B")
	if resB.Record.Kind != vpath.File {
		t.Fatalf("expected /B to be a file, got kind %v", resB.Record.Kind)
	}
	if resB.Record.Source != "/A/C" {
		t.Fatalf("expected status(/B).source == /A/C, got %q", resB.Record.Source)
	}
	resC := c.Status("/C")
	if resC.Record.Kind != vpath.File {
		t.Fatalf("expected /C to be a file (every step touching it is a file copy), got kind %v", resC.Record.Kind)
	}
	if resC.Record.Source != "/B" {
		t.Fatalf("expected status(/C).source == /B, got %q", resC.Record.Source)
	}
}

// Scenario 3: Directory merge with overwrite.
func TestScenarioDirectoryMergeWithOverwrite(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "X"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "Y"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "X", "f"), []byte("longer-payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Y", "f"), []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := c.Copy("/X", "/Y", true, true); err != nil {
		t.Fatalf("cp --merge --overwrite /X /Y: %v", err)
	}
	if err := c.Apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "Y", "f"))
	if err != nil {
		t.Fatalf("read /Y/f: %v", err)
	}
	want, err := os.ReadFile(filepath.Join(root, "X", "f"))
	if err != nil {
		t.Fatalf("read /X/f: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected /Y/f length %d (from /X/f), got %d", len(want), len(got))
	}
}

// Scenario 4: Recursive create.
func TestScenarioRecursiveCreate(t *testing.T) {
	c := newChrootContainer(t)

	if err := c.Create("/p/q/r", vpath.Directory, true, false, ""); err != nil {
		t.Fatalf("mkdir --recursive /p/q/r: %v", err)
	}
	lines := c.Preview()
	want := []string{
		"create_empty_directory /p",
		"create_empty_directory /p/q",
		"create_empty_directory /p/q/r",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d atomics, got %d: %+v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("atomic %d: expected %q, got %q (full: %+v)", i, w, lines[i], lines)
		}
	}
}

// Scenario 5: Recursive remove.
func TestScenarioRecursiveRemove(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "D", "s"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "D", "x"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "D", "s", "y"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := c.Remove("/D", true); err != nil {
		t.Fatalf("rm --recursive /D: %v", err)
	}
	lines := c.Preview()
	if len(lines) == 0 {
		t.Fatal("expected a non-empty atomic stream")
	}
	last := lines[len(lines)-1]
	if last != "remove_empty_directory /D" {
		t.Fatalf("expected the stream to end with remove_empty_directory /D, got %q (full: %+v)", last, lines)
	}

	seen := map[string]int{}
	for i, l := range lines {
		seen[l] = i
	}
	if idx, ok := seen["remove_empty_directory /D/s"]; ok {
		if idx >= seen["remove_empty_directory /D"] {
			t.Fatal("expected /D/s removed before its parent /D")
		}
	}
}

// Scenario 6: Rename optimization during apply.
func TestScenarioRenameOptimizationDuringApply(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "f"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(root))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := c.Move("/f", "/g", false, false); err != nil {
		t.Fatalf("mv /f /g: %v", err)
	}
	lines := c.Preview()
	if len(lines) != 1 {
		t.Fatalf("expected a single optimized atomic, got %d: %+v", len(lines), lines)
	}
	if lines[0] != "move_file_to_file /f -> /g" {
		t.Fatalf("expected a single move_file_to_file /f -> /g, got %q", lines[0])
	}
}
