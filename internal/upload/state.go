package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileRecord is what the state DB remembers about a sent session file.
type FileRecord struct {
	Size      int64
	Hash      string
	SessionID string
}

// Matches reports whether the file on disk still has the recorded contents.
func (r *FileRecord) Matches(size int64, hash string) bool {
	return r != nil && r.Size == size && r.Hash == hash
}

// StateDB is a local SQLite ledger of session files keyed by their path
// relative to the walked root.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens dir/state.db, creating dir and the schema on first use.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sent_files (
		rel_path   TEXT PRIMARY KEY,
		size       INTEGER NOT NULL,
		sha256     TEXT NOT NULL,
		session_id TEXT NOT NULL,
		sent_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}
	return &StateDB{db: db}, nil
}

// Lookup returns the record for relPath, or nil if the file was never sent.
func (s *StateDB) Lookup(relPath string) (*FileRecord, error) {
	var r FileRecord
	err := s.db.QueryRow(
		`SELECT size, sha256, session_id FROM sent_files WHERE rel_path = ?`, relPath,
	).Scan(&r.Size, &r.Hash, &r.SessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", relPath, err)
	}
	return &r, nil
}

// Record stores r for relPath, replacing any earlier record.
func (s *StateDB) Record(relPath string, r FileRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO sent_files (rel_path, size, sha256, session_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT (rel_path) DO UPDATE SET size = excluded.size, sha256 = excluded.sha256,
		 session_id = excluded.session_id, sent_at = CURRENT_TIMESTAMP`,
		relPath, r.Size, r.Hash, r.SessionID,
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", relPath, err)
	}
	return nil
}

// Count returns how many files are recorded.
func (s *StateDB) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sent_files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sent files: %w", err)
	}
	return n, nil
}

func (s *StateDB) Close() error {
	return s.db.Close()
}

// Hash is the hex SHA-256 fingerprint stored in FileRecord.Hash.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
