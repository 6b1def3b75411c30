package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"axion/internal/kernel"
	"axion/internal/logging"
)

// Archive is a durable backend for proof records. The session writes through
// to it when one is attached and can rehydrate its history from it on start.
type Archive interface {
	SaveRecord(record ProofRecord) error
	LoadRecords() ([]ProofRecord, error)
}

// ProofSession is an in-memory proof history. All methods are safe for
// concurrent use.
type ProofSession struct {
	mu        sync.RWMutex
	id        string
	context   string
	history   []ProofRecord
	byTheorem map[string][]int
	archive   Archive
}

// NewSession creates an empty session. The context string labels exports and
// may be empty.
func NewSession(context string) *ProofSession {
	return &ProofSession{
		id:        uuid.New().String(),
		context:   context,
		byTheorem: make(map[string][]int),
	}
}

// ID returns the session's unique identifier.
func (s *ProofSession) ID() string {
	return s.id
}

// SetArchive attaches a durable backend. Subsequent records are written
// through to it.
func (s *ProofSession) SetArchive(archive Archive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive = archive
}

// Restore replaces the in-memory history with the archive's contents.
func (s *ProofSession) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archive == nil {
		return fmt.Errorf("no archive attached")
	}
	records, err := s.archive.LoadRecords()
	if err != nil {
		return fmt.Errorf("loading archived records: %w", err)
	}
	s.history = nil
	s.byTheorem = make(map[string][]int)
	for _, record := range records {
		s.append(record)
	}
	logging.Session("Restored %d proof records from archive", len(records))
	return nil
}

// RecordProof appends a record built from the proof and writes it through to
// the archive when one is attached.
func (s *ProofSession) RecordProof(proof *kernel.Proof) (ProofRecord, error) {
	record := NewRecord(proof)
	return record, s.Record(record)
}

// Record appends an already-built record.
func (s *ProofSession) Record(record ProofRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(record)
	logging.SessionDebug("Recorded proof of %q (valid=%v, hash=%.12s)",
		record.Theorem, record.IsValid, record.ProofHash)
	if s.archive != nil {
		if err := s.archive.SaveRecord(record); err != nil {
			logging.SessionError("Archiving proof record: %v", err)
			return fmt.Errorf("archiving proof record: %w", err)
		}
	}
	return nil
}

// append assumes the write lock is held.
func (s *ProofSession) append(record ProofRecord) {
	s.byTheorem[record.Theorem] = append(s.byTheorem[record.Theorem], len(s.history))
	s.history = append(s.history, record)
}

// GetProofByHash returns the record with the given certificate hash.
func (s *ProofSession) GetProofByHash(hash string) (ProofRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if hash == "" {
		return ProofRecord{}, false
	}
	for _, record := range s.history {
		if record.ProofHash == hash {
			return record, true
		}
	}
	return ProofRecord{}, false
}

// GetProofsByTheorem returns every record for the exact theorem text, in
// recording order.
func (s *ProofSession) GetProofsByTheorem(theorem string) []ProofRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	indexes := s.byTheorem[theorem]
	records := make([]ProofRecord, 0, len(indexes))
	for _, i := range indexes {
		records = append(records, s.history[i])
	}
	return records
}

// VerifyProof reports whether a record with the given hash exists and was
// validated when recorded.
func (s *ProofSession) VerifyProof(hash string) bool {
	record, ok := s.GetProofByHash(hash)
	return ok && record.IsValid
}

// ListProofs returns a copy of the full history in recording order.
func (s *ProofSession) ListProofs() []ProofRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]ProofRecord, len(s.history))
	copy(records, s.history)
	return records
}

// Theorems returns the distinct theorem texts seen so far, sorted.
func (s *ProofSession) Theorems() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	theorems := make([]string, 0, len(s.byTheorem))
	for theorem := range s.byTheorem {
		theorems = append(theorems, theorem)
	}
	sort.Strings(theorems)
	return theorems
}

// Len returns the number of recorded proofs.
func (s *ProofSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Clear drops the in-memory history. The archive, if any, is untouched.
func (s *ProofSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.byTheorem = make(map[string][]int)
	logging.Session("Session history cleared")
}

// AxiomUsage pairs an axiom name with how many recorded proofs used it.
type AxiomUsage struct {
	Axiom string `json:"axiom"`
	Count int    `json:"count"`
}

// Statistics summarizes the session history.
type Statistics struct {
	TotalProofs  int            `json:"total_proofs"`
	ValidProofs  int            `json:"valid_proofs"`
	ByTheory     map[string]int `json:"by_theory"`
	TopAxioms    []AxiomUsage   `json:"top_axioms"`
	AverageSteps float64        `json:"average_steps"`
}

// Stats computes summary statistics over the history. TopAxioms holds at most
// the five most used axioms, ties broken by name.
func (s *ProofSession) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{ByTheory: make(map[string]int)}
	axiomCounts := make(map[string]int)
	totalSteps := 0
	for _, record := range s.history {
		stats.TotalProofs++
		if record.IsValid {
			stats.ValidProofs++
		}
		stats.ByTheory[record.Theory]++
		totalSteps += record.StepCount
		for _, axiom := range record.AxiomsUsed {
			axiomCounts[axiom]++
		}
	}
	if stats.TotalProofs > 0 {
		stats.AverageSteps = float64(totalSteps) / float64(stats.TotalProofs)
	}

	usage := make([]AxiomUsage, 0, len(axiomCounts))
	for axiom, count := range axiomCounts {
		usage = append(usage, AxiomUsage{Axiom: axiom, Count: count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Axiom < usage[j].Axiom
	})
	if len(usage) > 5 {
		usage = usage[:5]
	}
	stats.TopAxioms = usage
	return stats
}

// exportEnvelope is the on-disk shape of an exported session.
type exportEnvelope struct {
	SessionInfo exportInfo    `json:"session_info"`
	Proofs      []ProofRecord `json:"proofs"`
}

type exportInfo struct {
	ExportTime string `json:"export_time"`
	ProofCount int    `json:"proof_count"`
	Context    string `json:"context"`
}

// Export writes the session history as indented JSON.
func (s *ProofSession) Export(path string) error {
	s.mu.RLock()
	envelope := exportEnvelope{
		SessionInfo: exportInfo{
			ExportTime: time.Now().Format(time.RFC3339),
			ProofCount: len(s.history),
			Context:    s.context,
		},
		Proofs: make([]ProofRecord, len(s.history)),
	}
	copy(envelope.Proofs, s.history)
	s.mu.RUnlock()

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing session export: %w", err)
	}
	logging.Session("Exported %d proof records to %s", envelope.SessionInfo.ProofCount, path)
	return nil
}

// Import appends the records from an exported session file to the current
// history. Records are written through to the archive like fresh ones.
func (s *ProofSession) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading session export: %w", err)
	}
	var envelope exportEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return 0, fmt.Errorf("decoding session export: %w", err)
	}
	for _, record := range envelope.Proofs {
		if err := s.Record(record); err != nil {
			return 0, err
		}
	}
	logging.Session("Imported %d proof records from %s", len(envelope.Proofs), path)
	return len(envelope.Proofs), nil
}
