// Package kernel implements the pure inference kernel: expressions, inference
// rules, proof construction, and proof validation with cryptographic
// certificates. The kernel carries no mathematical knowledge of its own -
// only formal rules. Rule application is syntactic: formulas are opaque
// strings and matching is literal substring matching, never unification.
package kernel

// Logical connectives used in formula notation.
const (
	ConnectiveAnd     = "∧"
	ConnectiveOr      = "∨"
	ConnectiveImplies = "⟹"
	ConnectiveIff     = "⟺"
	ConnectiveNot     = "¬"
	ConnectiveForall  = "∀"
	ConnectiveExists  = "∃"
	ConnectiveEquals  = "="
)

// Rule identifies a domain-independent inference rule.
type Rule string

const (
	ModusPonens               Rule = "modus_ponens"
	ModusTollens              Rule = "modus_tollens"
	UniversalInstantiation    Rule = "universal_instantiation"
	ExistentialGeneralization Rule = "existential_generalization"
	ConjunctionIntroduction   Rule = "conjunction_intro"
	ConjunctionElimination    Rule = "conjunction_elim"
	DisjunctionIntroduction   Rule = "disjunction_intro"
	DisjunctionElimination    Rule = "disjunction_elim"
	Substitution              Rule = "substitution"
	Reflexivity               Rule = "reflexivity"
	Symmetry                  Rule = "symmetry"
	Transitivity              Rule = "transitivity"
	AxiomApplication          Rule = "axiom_application"
)

// Expression is an immutable formula value. Two expressions are equal iff
// their content strings are equal: "(P ∧ Q)" and "(Q ∧ P)" are distinct.
//
// The variable sets and type signature are declared metadata; no kernel
// operation computes or reads them, and the proof certificate does not cover
// them.
type Expression struct {
	Content        string
	Variables      map[string]bool
	FreeVariables  map[string]bool
	BoundVariables map[string]bool
	TypeSignature  string
}

// NewExpression wraps a formula string in an Expression.
func NewExpression(content string) Expression {
	return Expression{Content: content}
}

// Equal reports content equality. Structural, not semantic.
func (e Expression) Equal(other Expression) bool {
	return e.Content == other.Content
}

// String implements fmt.Stringer.
func (e Expression) String() string {
	return "Expr(" + e.Content + ")"
}
