// Package session tracks proof history: an append-only log of proof records
// with a theorem index, statistics, JSON export/import, and an optional
// durable archive behind it.
package session

import (
	"time"

	"axion/internal/kernel"
)

// ProofRecord is the persistable summary of a completed proof attempt. It
// carries exactly the fields needed to rebuild a history entry; the full step
// list stays with the Proof.
type ProofRecord struct {
	Theorem    string   `json:"theorem"`
	Theory     string   `json:"theory"`
	ProofHash  string   `json:"proof_hash"`
	Timestamp  string   `json:"timestamp"`
	AxiomsUsed []string `json:"axioms_used"`
	StepCount  int      `json:"step_count"`
	IsValid    bool     `json:"is_valid"`
}

// NewRecord builds a record from a proof, stamped with the current time.
func NewRecord(proof *kernel.Proof) ProofRecord {
	return ProofRecord{
		Theorem:    proof.Theorem.Content,
		Theory:     proof.TheoryContext,
		ProofHash:  proof.ProofHash,
		Timestamp:  time.Now().Format(time.RFC3339),
		AxiomsUsed: proof.AxiomIDs(),
		StepCount:  proof.StepCount(),
		IsValid:    proof.IsValid,
	}
}
