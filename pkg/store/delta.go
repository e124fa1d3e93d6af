package store

import (
	"fmt"

	"futurecommander/pkg/delta"
	"futurecommander/pkg/vpath"
)

// Save serializes adds and subs into the database, replacing whatever was
// previously persisted. It is the generalization of cmd/push.go's
// walk-and-insert loop: instead of walking a real directory tree and
// inserting one dentry+inode pair per file, it walks delta.All() and
// inserts one row per record.
func (s *Store) Save(adds, subs *delta.Delta) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM fs_delta_add`); err != nil {
		return fmt.Errorf("failed to clear fs_delta_add: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM fs_delta_sub`); err != nil {
		return fmt.Errorf("failed to clear fs_delta_sub: %w", err)
	}

	for _, rec := range adds.All() {
		if _, err := tx.Exec(
			`INSERT INTO fs_delta_add (identity, source, kind, target) VALUES (?, ?, ?, ?)`,
			rec.Identity, rec.Source, int(rec.Kind), rec.Target,
		); err != nil {
			return fmt.Errorf("failed to insert add %s: %w", rec.Identity, err)
		}
	}
	for _, rec := range subs.All() {
		if _, err := tx.Exec(
			`INSERT INTO fs_delta_sub (identity, source, kind) VALUES (?, ?, ?)`,
			rec.Identity, rec.Source, int(rec.Kind),
		); err != nil {
			return fmt.Errorf("failed to insert sub %s: %w", rec.Identity, err)
		}
	}

	return tx.Commit()
}

// Import replays the persisted rows back into a fresh pair of deltas, the
// generalization of cmd/pull.go's recursive ListDir-and-recreate walk:
// instead of recreating real files from inode rows, it re-attaches records
// into delta.Delta values via the same Attach call the live API uses, so
// an imported overlay obeys the exact invariants (no record under a File
// parent, no duplicate identity) a freshly built one would.
func (s *Store) Import() (adds, subs *delta.Delta, err error) {
	adds, subs = delta.New(), delta.New()

	addRows, err := s.db.Query(`SELECT identity, source, kind, target FROM fs_delta_add`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query fs_delta_add: %w", err)
	}
	defer addRows.Close()

	type pending struct {
		identity, source, target string
		kind                     vpath.Kind
	}
	var pendingAdds []pending
	for addRows.Next() {
		var identity, source, target string
		var kind int
		if err := addRows.Scan(&identity, &source, &kind, &target); err != nil {
			return nil, nil, err
		}
		pendingAdds = append(pendingAdds, pending{identity, source, target, vpath.Kind(kind)})
	}
	if err := addRows.Err(); err != nil {
		return nil, nil, err
	}

	for _, p := range pendingAdds {
		if p.kind == vpath.Link {
			if err := adds.AttachLink(p.identity, p.source, p.target); err != nil {
				return nil, nil, fmt.Errorf("failed to replay add %s: %w", p.identity, err)
			}
			continue
		}
		if err := adds.Attach(p.identity, p.source, p.kind); err != nil {
			return nil, nil, fmt.Errorf("failed to replay add %s: %w", p.identity, err)
		}
	}

	subRows, err := s.db.Query(`SELECT identity, source, kind FROM fs_delta_sub`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query fs_delta_sub: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var identity, source string
		var kind int
		if err := subRows.Scan(&identity, &source, &kind); err != nil {
			return nil, nil, err
		}
		if err := subs.Attach(identity, source, vpath.Kind(kind)); err != nil {
			return nil, nil, fmt.Errorf("failed to replay sub %s: %w", identity, err)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, nil, err
	}

	return adds, subs, nil
}
