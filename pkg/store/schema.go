package store

import "fmt"

// schema backs a persisted overlay with a flat record of the two deltas
// (spec §6): identity, source, kind, and which side (add or sub) a record
// sits on. There is no fs_inode/fs_dentry/fs_data here — a persisted
// overlay never stores file content, only the triples/quads needed to
// replay Attach/AttachLink calls on import.
const schema = `
CREATE TABLE IF NOT EXISTS fs_config (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fs_delta_add (
	identity TEXT PRIMARY KEY,
	source   TEXT NOT NULL,
	kind     INTEGER NOT NULL,
	target   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fs_delta_sub (
	identity TEXT PRIMARY KEY,
	source   TEXT NOT NULL,
	kind     INTEGER NOT NULL
);
`

func (s *Store) initSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO fs_config (key, value) VALUES ('schema_version', '1')`)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	return nil
}
