// Package store persists proof records in SQLite. It implements
// session.Archive so a ProofSession can write through to disk and rebuild its
// history across runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"axion/internal/logging"
	"axion/internal/session"
)

// ProofStore is a SQLite-backed archive of proof records.
type ProofStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewProofStore opens (or creates) the database at the given path.
func NewProofStore(path string) (*ProofStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &ProofStore{db: db, dbPath: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("Proof store opened at %s", path)
	return store, nil
}

// initialize creates the required tables. The hash index is partial because
// failed proofs carry an empty hash and may repeat.
func (s *ProofStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS proofs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		theorem TEXT NOT NULL,
		theory TEXT NOT NULL,
		proof_hash TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL,
		axioms_used TEXT NOT NULL DEFAULT '[]',
		step_count INTEGER NOT NULL DEFAULT 0,
		is_valid INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_proofs_theorem ON proofs(theorem);
	CREATE INDEX IF NOT EXISTS idx_proofs_theory ON proofs(theory);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_proofs_hash ON proofs(proof_hash)
		WHERE proof_hash != '';
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create proofs table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *ProofStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRecord inserts a proof record. Saving a validated record whose hash is
// already present is a no-op so replayed proofs do not duplicate rows.
func (s *ProofStore) SaveRecord(record session.ProofRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	axioms, err := json.Marshal(record.AxiomsUsed)
	if err != nil {
		return fmt.Errorf("failed to encode axiom list: %w", err)
	}

	query := `
	INSERT INTO proofs (theorem, theory, proof_hash, timestamp, axioms_used, step_count, is_valid)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if record.ProofHash != "" {
		query += `ON CONFLICT(proof_hash) WHERE proof_hash != '' DO NOTHING`
	}
	_, err = s.db.Exec(query,
		record.Theorem, record.Theory, record.ProofHash, record.Timestamp,
		string(axioms), record.StepCount, boolToInt(record.IsValid))
	if err != nil {
		return fmt.Errorf("failed to save proof record: %w", err)
	}
	logging.StoreDebug("Saved record for %q (theory=%s)", record.Theorem, record.Theory)
	return nil
}

// LoadRecords returns every stored record in insertion order.
func (s *ProofStore) LoadRecords() ([]session.ProofRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT theorem, theory, proof_hash, timestamp, axioms_used, step_count, is_valid
		FROM proofs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load proof records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetByHash returns the record with the given certificate hash.
func (s *ProofStore) GetByHash(hash string) (session.ProofRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if hash == "" {
		return session.ProofRecord{}, false, nil
	}
	rows, err := s.db.Query(`
		SELECT theorem, theory, proof_hash, timestamp, axioms_used, step_count, is_valid
		FROM proofs WHERE proof_hash = ?
	`, hash)
	if err != nil {
		return session.ProofRecord{}, false, fmt.Errorf("failed to query proof by hash: %w", err)
	}
	defer rows.Close()
	records, err := scanRecords(rows)
	if err != nil || len(records) == 0 {
		return session.ProofRecord{}, false, err
	}
	return records[0], true, nil
}

// ListByTheory returns the records proved in the given theory, in insertion
// order.
func (s *ProofStore) ListByTheory(theory string) ([]session.ProofRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT theorem, theory, proof_hash, timestamp, axioms_used, step_count, is_valid
		FROM proofs WHERE theory = ? ORDER BY id
	`, theory)
	if err != nil {
		return nil, fmt.Errorf("failed to query proofs by theory: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Count returns the number of stored records.
func (s *ProofStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM proofs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count proof records: %w", err)
	}
	return count, nil
}

func scanRecords(rows *sql.Rows) ([]session.ProofRecord, error) {
	var records []session.ProofRecord
	for rows.Next() {
		var record session.ProofRecord
		var axioms string
		var valid int
		if err := rows.Scan(&record.Theorem, &record.Theory, &record.ProofHash,
			&record.Timestamp, &axioms, &record.StepCount, &valid); err != nil {
			return nil, fmt.Errorf("failed to scan proof record: %w", err)
		}
		if err := json.Unmarshal([]byte(axioms), &record.AxiomsUsed); err != nil {
			return nil, fmt.Errorf("failed to decode axiom list: %w", err)
		}
		record.IsValid = valid != 0
		records = append(records, record)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
