package kernel

import (
	"errors"
	"fmt"
	"strings"

	"axion/internal/logging"
)

// ErrProofFinalized is returned when a caller tries to append to a proof that
// has already been finalized.
var ErrProofFinalized = errors.New("proof is finalized and read-only")

// Kernel applies inference rules and validates proofs. It holds no state, so
// a single Kernel may be shared freely across goroutines; each Proof under
// construction is privately owned by its caller.
type Kernel struct{}

// New returns an inference kernel.
func New() *Kernel {
	return &Kernel{}
}

// Every rule applier below is total: a syntactic pattern that does not match
// yields a nil result, which callers must treat as "rule not applicable
// here", never as a fault.

// ModusPonens derives Q from (P ⟹ Q) and P. The implication must contain
// exactly one ⟹ and its antecedent must equal the second expression's full
// content after whitespace trimming.
func (k *Kernel) ModusPonens(implication, antecedent Expression) *Expression {
	if !strings.Contains(implication.Content, ConnectiveImplies) {
		return nil
	}
	parts := strings.Split(implication.Content, ConnectiveImplies)
	if len(parts) != 2 {
		return nil
	}
	premise := strings.TrimSpace(parts[0])
	conclusion := strings.TrimSpace(parts[1])
	if premise != strings.TrimSpace(antecedent.Content) {
		return nil
	}
	result := NewExpression(conclusion)
	return &result
}

// UniversalInstantiation derives P(t) from ∀x: P(x) (or ∀x. P(x)) for a term
// t. The bound variable is the text between ∀ and the first ":" or ".", and
// the replacement is a literal substring substitution: a term that
// coincidentally matches other substrings of the body is replaced there too.
func (k *Kernel) UniversalInstantiation(universal Expression, term string) *Expression {
	if !strings.HasPrefix(universal.Content, ConnectiveForall) {
		return nil
	}
	content := strings.TrimPrefix(universal.Content, ConnectiveForall)

	var variable, body string
	if idx := strings.Index(content, ":"); idx >= 0 {
		variable, body = content[:idx], content[idx+1:]
	} else if idx := strings.Index(content, "."); idx >= 0 {
		variable, body = content[:idx], content[idx+1:]
	} else {
		return nil
	}

	variable = strings.TrimSpace(variable)
	body = strings.TrimSpace(body)

	result := NewExpression(strings.ReplaceAll(body, variable, term))
	return &result
}

// Replacement is a single old -> new token rewrite.
type Replacement struct {
	Old string
	New string
}

// Substitute applies the replacements in the caller-given order. There is no
// cycle detection; a later replacement sees the output of earlier ones.
func (k *Kernel) Substitute(expr Expression, replacements []Replacement) Expression {
	result := expr.Content
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.Old, r.New)
	}
	return NewExpression(result)
}

// ConjunctionIntro derives (P ∧ Q) from P and Q. Always succeeds.
func (k *Kernel) ConjunctionIntro(left, right Expression) Expression {
	return NewExpression(fmt.Sprintf("(%s %s %s)", left.Content, ConnectiveAnd, right.Content))
}

// ConjunctionElimLeft derives P from P ∧ Q. Splitting is on every ∧, so a
// triple conjunction yields the leftmost of three parts, not a pairwise
// decomposition.
func (k *Kernel) ConjunctionElimLeft(conjunction Expression) *Expression {
	if !strings.Contains(conjunction.Content, ConnectiveAnd) {
		return nil
	}
	parts := strings.Split(conjunction.Content, ConnectiveAnd)
	if len(parts) < 2 {
		return nil
	}
	left := strings.Trim(strings.TrimSpace(parts[0]), "()")
	result := NewExpression(left)
	return &result
}

// ConjunctionElimRight derives Q from P ∧ Q, taking the rightmost operand.
func (k *Kernel) ConjunctionElimRight(conjunction Expression) *Expression {
	if !strings.Contains(conjunction.Content, ConnectiveAnd) {
		return nil
	}
	parts := strings.Split(conjunction.Content, ConnectiveAnd)
	if len(parts) < 2 {
		return nil
	}
	right := strings.Trim(strings.TrimSpace(parts[len(parts)-1]), "()")
	result := NewExpression(right)
	return &result
}

// Transitive derives "a <rel> c" from "a <rel> b" and "b <rel> c". Each
// operand must split on the relation into exactly two parts, and the middle
// terms must be textually equal after trimming. A relation symbol absent from
// either operand yields no result.
func (k *Kernel) Transitive(first, second Expression, relation string) *Expression {
	if relation == "" {
		relation = ConnectiveEquals
	}
	if !strings.Contains(first.Content, relation) || !strings.Contains(second.Content, relation) {
		return nil
	}
	parts1 := strings.Split(first.Content, relation)
	parts2 := strings.Split(second.Content, relation)
	if len(parts1) != 2 || len(parts2) != 2 {
		return nil
	}
	a, b1 := strings.TrimSpace(parts1[0]), strings.TrimSpace(parts1[1])
	b2, c := strings.TrimSpace(parts2[0]), strings.TrimSpace(parts2[1])
	if b1 != b2 {
		return nil
	}
	result := NewExpression(fmt.Sprintf("%s %s %s", a, relation, c))
	return &result
}

// CreateProof initializes an empty proof for the theorem in the given theory
// context.
func (k *Kernel) CreateProof(theorem Expression, theory string) *Proof {
	if theory == "" {
		theory = "Pure Logic"
	}
	logging.KernelDebug("Creating proof: theorem=%q theory=%s", theorem.Content, theory)
	return &Proof{
		Theorem:       theorem,
		AxiomsUsed:    make(map[string]bool),
		TheoryContext: theory,
	}
}

// AddStep appends a step to the proof and assigns its line number. It is the
// only step-creation entry point; appending out-of-band breaks the line
// number invariant. Appending to a finalized proof fails.
func (k *Kernel) AddStep(proof *Proof, statement Expression, rule Rule, premises []Expression, justification string) (*ProofStep, error) {
	if proof.IsValid {
		return nil, ErrProofFinalized
	}
	step := ProofStep{
		Statement:     statement,
		Rule:          rule,
		Premises:      premises,
		Justification: justification,
		LineNumber:    len(proof.Steps) + 1,
	}
	proof.Steps = append(proof.Steps, step)
	return &proof.Steps[len(proof.Steps)-1], nil
}
