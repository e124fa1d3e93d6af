package store

import (
	"path/filepath"
	"testing"

	"futurecommander/pkg/delta"
	"futurecommander/pkg/vpath"
)

func TestSaveAndImportRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "overlay.db")
	s, err := Open(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	adds, subs := delta.New(), delta.New()
	if err := adds.Attach("/dir", "", vpath.Directory); err != nil {
		t.Fatal(err)
	}
	if err := adds.Attach("/dir/file.txt", "/real/file.txt", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := adds.AttachLink("/dir/link", "", "/real/target"); err != nil {
		t.Fatal(err)
	}
	if err := subs.Attach("/removed.txt", "/removed.txt", vpath.File); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(adds, subs); err != nil {
		t.Fatalf("save: %v", err)
	}

	importedAdds, importedSubs, err := s.Import()
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	rec, ok := importedAdds.Get("/dir/file.txt")
	if !ok || rec.Source != "/real/file.txt" || rec.Kind != vpath.File {
		t.Fatalf("unexpected imported add: %+v ok=%v", rec, ok)
	}
	link, ok := importedAdds.Get("/dir/link")
	if !ok || link.Kind != vpath.Link || link.Target != "/real/target" {
		t.Fatalf("unexpected imported link: %+v ok=%v", link, ok)
	}
	if _, ok := importedSubs.Get("/removed.txt"); !ok {
		t.Fatal("expected /removed.txt in imported subs")
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "overlay.db")
	s, err := Open(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	firstAdds := delta.New()
	if err := firstAdds.Attach("/a.txt", "", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(firstAdds, delta.New()); err != nil {
		t.Fatalf("save: %v", err)
	}

	secondAdds := delta.New()
	if err := secondAdds.Attach("/b.txt", "", vpath.File); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(secondAdds, delta.New()); err != nil {
		t.Fatalf("save: %v", err)
	}

	imported, _, err := s.Import()
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := imported.Get("/a.txt"); ok {
		t.Fatal("expected /a.txt to be gone after replacing save")
	}
	if _, ok := imported.Get("/b.txt"); !ok {
		t.Fatal("expected /b.txt to be present")
	}
}
