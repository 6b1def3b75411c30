package kernel

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// ProofStep is a single line of a formal proof.
type ProofStep struct {
	Statement     Expression
	Rule          Rule
	Premises      []Expression
	Justification string
	LineNumber    int // 1-based, assigned at append time
}

// Proof is a derivation record. Steps are append-only and line numbers are
// monotonic. A proof starts incomplete; ValidateProof is the only path to the
// valid+hashed state, and a finalized proof is read-only.
type Proof struct {
	Theorem       Expression
	AxiomsUsed    map[string]bool // qualified "<Theory>.<axiom>" ids
	Steps         []ProofStep
	Assumptions   []Expression
	TheoryContext string
	IsValid       bool
	ProofHash     string // empty until finalized; 64-char lowercase hex after
}

// stepDigest mirrors ProofStep for certificate hashing.
type stepDigest struct {
	Statement     string   `json:"statement"`
	Rule          string   `json:"rule"`
	Premises      []string `json:"premises"`
	Justification string   `json:"justification"`
	Line          int      `json:"line"`
}

// proofDigest is the canonical structure the certificate binds. Axioms are
// sorted; every other list is hashed in encounter order.
type proofDigest struct {
	Theorem     string       `json:"theorem"`
	Axioms      []string     `json:"axioms"`
	Steps       []stepDigest `json:"steps"`
	Assumptions []string     `json:"assumptions"`
	Theory      string       `json:"theory"`
}

// ComputeHash returns the SHA-256 certificate of the proof as a lowercase hex
// string. The digest is a pure function of (theorem, sorted axiom ids,
// ordered steps, assumptions, theory label).
func (p *Proof) ComputeHash() string {
	axioms := make([]string, 0, len(p.AxiomsUsed))
	for id := range p.AxiomsUsed {
		axioms = append(axioms, id)
	}
	sort.Strings(axioms)

	steps := make([]stepDigest, 0, len(p.Steps))
	for _, step := range p.Steps {
		premises := make([]string, 0, len(step.Premises))
		for _, prem := range step.Premises {
			premises = append(premises, prem.Content)
		}
		steps = append(steps, stepDigest{
			Statement:     step.Statement.Content,
			Rule:          string(step.Rule),
			Premises:      premises,
			Justification: step.Justification,
			Line:          step.LineNumber,
		})
	}

	assumptions := make([]string, 0, len(p.Assumptions))
	for _, a := range p.Assumptions {
		assumptions = append(assumptions, a.Content)
	}

	data, err := json.Marshal(proofDigest{
		Theorem:     p.Theorem.Content,
		Axioms:      axioms,
		Steps:       steps,
		Assumptions: assumptions,
		Theory:      p.TheoryContext,
	})
	if err != nil {
		// proofDigest contains only strings and ints; Marshal cannot fail.
		panic(fmt.Sprintf("kernel: proof digest marshal: %v", err))
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// finalize performs the one-way incomplete -> valid+hashed transition.
// Only ValidateProof calls this.
func (p *Proof) finalize() {
	p.ProofHash = p.ComputeHash()
	p.IsValid = true
}

// StepCount returns the number of steps in the proof.
func (p *Proof) StepCount() int {
	return len(p.Steps)
}

// AxiomIDs returns the sorted qualified axiom ids the proof depends on.
func (p *Proof) AxiomIDs() []string {
	ids := make([]string, 0, len(p.AxiomsUsed))
	for id := range p.AxiomsUsed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String implements fmt.Stringer.
func (p *Proof) String() string {
	status := "incomplete"
	if p.IsValid {
		status = "valid"
	}
	return fmt.Sprintf("Proof[%s]: %s (%d steps)", status, p.Theorem.Content, len(p.Steps))
}
