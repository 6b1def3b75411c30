// Package prover implements the forward-chaining automated theorem prover.
// It orchestrates the inference kernel against a theory's axiom set,
// searching for a derivation of a target theorem within a step budget.
package prover

import (
	"fmt"
	"strings"

	"axion/internal/axioms"
	"axion/internal/kernel"
	"axion/internal/logging"
)

// Library supplies axiom sets per theory. Consumed read-only.
type Library interface {
	GetTheory(name string) (*axioms.Theory, bool)
}

// Config bounds the forward-chaining search.
type Config struct {
	// MaxSteps caps outer-loop iterations. Search termination is guaranteed
	// solely by this bound; there is no other cancellation mechanism.
	MaxSteps int
	// InstantiationTerms is the candidate vocabulary for universal
	// instantiation.
	InstantiationTerms []string
}

// DefaultConfig returns the standard search bounds.
func DefaultConfig() Config {
	return Config{
		MaxSteps:           100,
		InstantiationTerms: []string{"0", "1", "x", "a", "n"},
	}
}

// TheoremProver runs bounded forward chaining. A prover is stateless between
// calls; each Prove builds and privately owns one Proof, so concurrent Prove
// calls are safe.
type TheoremProver struct {
	kernel  *kernel.Kernel
	library Library
	config  Config
}

// New creates a theorem prover.
func New(k *kernel.Kernel, library Library, cfg Config) *TheoremProver {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultConfig().MaxSteps
	}
	if len(cfg.InstantiationTerms) == 0 {
		cfg.InstantiationTerms = DefaultConfig().InstantiationTerms
	}
	return &TheoremProver{kernel: k, library: library, config: cfg}
}

// Prove attempts to derive the theorem from the axioms of the named theory.
//
// An unknown theory is a reported lookup failure: Prove returns a nil proof
// and a non-nil error, and the caller degrades gracefully. Exhausting the
// step budget or stagnating is not an error: Prove returns the best-effort
// Proof with IsValid false and no certificate hash.
func (p *TheoremProver) Prove(theorem, theory string) (*kernel.Proof, error) {
	timer := logging.StartTimer(logging.CategoryProver, "Prove "+theorem)
	defer timer.Stop()

	theoremExpr := kernel.NewExpression(theorem)
	proof := p.kernel.CreateProof(theoremExpr, theory)

	theoryObj, ok := p.library.GetTheory(theory)
	if !ok {
		logging.ProverWarn("Theory %q not found", theory)
		return nil, fmt.Errorf("theory %q not found", theory)
	}

	// Seed: every axiom becomes an assumption and an axiom_application step,
	// and its qualified id is recorded.
	derivedList := make([]kernel.Expression, 0, theoryObj.Len())
	derivedSet := make(map[string]bool, theoryObj.Len())
	for _, axiom := range theoryObj.Axioms {
		expr := kernel.NewExpression(axiom.Statement)
		proof.Assumptions = append(proof.Assumptions, expr)
		proof.AxiomsUsed[theory+"."+axiom.Name] = true
		if _, err := p.kernel.AddStep(proof, expr, kernel.AxiomApplication, nil,
			fmt.Sprintf("Axiom: %s.%s", theory, axiom.Name)); err != nil {
			return nil, err
		}
		if !derivedSet[expr.Content] {
			derivedSet[expr.Content] = true
			derivedList = append(derivedList, expr)
		}
	}

	for i := 0; i < p.config.MaxSteps; i++ {
		if derivedSet[theoremExpr.Content] {
			p.conclude(proof, theoremExpr)
			return proof, nil
		}

		added, err := p.expand(proof, &derivedList, derivedSet)
		if err != nil {
			return nil, err
		}
		if added == 0 {
			logging.ProverDebug("Stagnation after %d rounds (%d statements derived)", i, len(derivedList))
			break
		}
	}

	logging.Prover("No derivation found for %q in %s (%d steps)", theorem, theory, len(proof.Steps))
	return proof, nil
}

// expand runs one round of rule application over a snapshot of the derived
// set and appends a proof step for every previously-unseen statement.
// Returns the number of new derivations.
func (p *TheoremProver) expand(proof *kernel.Proof, derivedList *[]kernel.Expression, derivedSet map[string]bool) (int, error) {
	snapshot := *derivedList
	added := 0

	record := func(result kernel.Expression, rule kernel.Rule, premises []kernel.Expression, justification string) error {
		if derivedSet[result.Content] {
			return nil
		}
		if _, err := p.kernel.AddStep(proof, result, rule, premises, justification); err != nil {
			return err
		}
		derivedSet[result.Content] = true
		*derivedList = append(*derivedList, result)
		added++
		return nil
	}

	// Modus ponens over every ordered pair whose first element is an
	// implication.
	for _, s1 := range snapshot {
		if !strings.Contains(s1.Content, kernel.ConnectiveImplies) {
			continue
		}
		for _, s2 := range snapshot {
			result := p.kernel.ModusPonens(s1, s2)
			if result == nil {
				continue
			}
			if err := record(*result, kernel.ModusPonens,
				[]kernel.Expression{s1, s2}, "Modus ponens"); err != nil {
				return added, err
			}
		}
	}

	// Universal instantiation against the candidate term vocabulary.
	for _, s := range snapshot {
		if !strings.HasPrefix(s.Content, kernel.ConnectiveForall) {
			continue
		}
		for _, term := range p.config.InstantiationTerms {
			result := p.kernel.UniversalInstantiation(s, term)
			if result == nil {
				continue
			}
			if err := record(*result, kernel.UniversalInstantiation,
				[]kernel.Expression{s}, "Universal instantiation with "+term); err != nil {
				return added, err
			}
		}
	}

	return added, nil
}

// conclude closes out a successful search. The goal statement is always some
// step's statement, so the proof is truncated to the prefix ending at the
// first step that states the theorem (later steps are surplus derivations
// from the same round) and then replay-validated, which finalizes it.
func (p *TheoremProver) conclude(proof *kernel.Proof, theorem kernel.Expression) {
	for i, step := range proof.Steps {
		if step.Statement.Content == theorem.Content {
			proof.Steps = proof.Steps[:i+1]
			break
		}
	}
	if p.kernel.ValidateProof(proof) {
		logging.Prover("Proved %q in %s: %d steps, hash=%s",
			theorem.Content, proof.TheoryContext, len(proof.Steps), proof.ProofHash)
	} else {
		logging.ProverWarn("Derivation of %q reached the goal but failed replay validation", theorem.Content)
	}
}
