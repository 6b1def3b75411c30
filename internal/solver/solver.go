// Package solver is the main dispatch surface: it auto-detects what kind of
// problem a request is and routes it to the theorem prover or the symbolic
// manipulator.
package solver

import (
	"fmt"
	"strings"

	"axion/internal/axioms"
	"axion/internal/cas"
	"axion/internal/kernel"
	"axion/internal/prover"
)

// ProblemKind identifies how a problem should be handled.
type ProblemKind string

const (
	KindAuto          ProblemKind = "auto"
	KindProve         ProblemKind = "prove"
	KindDifferentiate ProblemKind = "differentiate"
	KindIntegrate     ProblemKind = "integrate"
	KindSimplify      ProblemKind = "simplify"
	KindSolve         ProblemKind = "solve"
)

// Result holds the outcome of a dispatched problem. Exactly one of Proof,
// Output, or Solutions is populated depending on Kind.
type Result struct {
	Kind      ProblemKind
	Proof     *kernel.Proof
	Output    string
	Solutions []string
}

// UniversalSolver wires the kernel, prover, axiom library, and manipulator
// behind a single entry point.
type UniversalSolver struct {
	kernel      *kernel.Kernel
	library     *axioms.Library
	prover      *prover.TheoremProver
	manipulator *cas.Manipulator
}

// New builds a solver over a fresh kernel and the standard axiom library.
func New(cfg prover.Config) *UniversalSolver {
	k := kernel.New()
	lib := axioms.NewLibrary()
	return &UniversalSolver{
		kernel:      k,
		library:     lib,
		prover:      prover.New(k, lib, cfg),
		manipulator: cas.New(),
	}
}

// Library exposes the axiom library for registration and lookup.
func (s *UniversalSolver) Library() *axioms.Library {
	return s.library
}

// Prover exposes the theorem prover.
func (s *UniversalSolver) Prover() *prover.TheoremProver {
	return s.prover
}

// Solve dispatches a problem. KindAuto triggers detection; theory selects the
// axiom set for proofs.
func (s *UniversalSolver) Solve(problem, theory string, kind ProblemKind) (*Result, error) {
	if theory == "" {
		theory = "Logic"
	}
	if kind == KindAuto || kind == "" {
		kind = DetectProblemKind(problem)
	}

	switch kind {
	case KindProve:
		proof, err := s.prover.Prove(problem, theory)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindProve, Proof: proof}, nil

	case KindDifferentiate:
		expr := problem
		if strings.Contains(problem, "d/dx") || strings.Contains(problem, "'") {
			expr = ExtractExpression(problem)
		}
		return &Result{Kind: KindDifferentiate, Output: s.manipulator.Differentiate(expr, "x")}, nil

	case KindIntegrate:
		expr := problem
		if strings.Contains(problem, "∫") {
			expr = ExtractExpression(problem)
		}
		return &Result{Kind: KindIntegrate, Output: s.manipulator.Integrate(expr, "x")}, nil

	case KindSimplify:
		return &Result{Kind: KindSimplify, Output: s.manipulator.Simplify(problem)}, nil

	case KindSolve:
		return &Result{Kind: KindSolve, Solutions: s.manipulator.SolveEquation(problem, "x")}, nil

	default:
		return nil, fmt.Errorf("unknown problem kind: %s", kind)
	}
}

// DetectProblemKind guesses what kind of problem a request is.
func DetectProblemKind(problem string) ProblemKind {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(problem, "∫") || strings.Contains(lower, "integrate"):
		return KindIntegrate
	case strings.Contains(problem, "d/dx") || strings.Contains(lower, "derivative") || strings.Contains(problem, "'"):
		return KindDifferentiate
	case strings.Contains(lower, "simplify"):
		return KindSimplify
	case strings.Contains(problem, "=") && !containsAny(problem, "∀", "∃", "⟹"):
		return KindSolve
	case containsAny(problem, "∀", "∃", "⟹") || strings.Contains(lower, "prove") || strings.Contains(lower, "show that"):
		return KindProve
	default:
		return KindSimplify
	}
}

// containsAny returns true if s contains any of the patterns.
func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ExtractExpression strips calculus keywords and notation from a problem
// statement, leaving the core expression.
func ExtractExpression(problem string) string {
	expr := problem
	for _, token := range []string{"differentiate", "integrate", "d/dx", "∫", "dx", "[", "]"} {
		expr = strings.ReplaceAll(expr, token, "")
	}
	return strings.TrimSpace(expr)
}

// ListTheories lists all available theories.
func (s *UniversalSolver) ListTheories() []string {
	return s.library.ListTheories()
}

// Axioms returns a theory's axioms in declaration order.
func (s *UniversalSolver) Axioms(theory string) ([]axioms.Axiom, bool) {
	t, ok := s.library.GetTheory(theory)
	if !ok {
		return nil, false
	}
	return t.Axioms, true
}

// AddAxiom adds a custom axiom to a theory, creating it when missing.
func (s *UniversalSolver) AddAxiom(theory, name, statement string) {
	s.library.AddAxiom(theory, name, statement)
}

// AddTheory registers a new theory from a name, description and axiom list.
func (s *UniversalSolver) AddTheory(name, description string, axiomList []axioms.Axiom) {
	theory := axioms.NewTheory(name, description)
	for _, ax := range axiomList {
		theory.AddAxiom(ax.Name, ax.Statement)
	}
	s.library.AddTheory(theory)
}
