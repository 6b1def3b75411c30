// Package axioms holds the axiom library: named theories, each owning an
// ordered collection of axioms, with optional dependencies on other theories.
// The library is consumed read-only by the prover and may be extended at
// runtime with custom theories, loaded from YAML files, and hot-reloaded.
package axioms

// Axiom is a named, theory-scoped formula assumed true without proof.
type Axiom struct {
	Name      string `yaml:"name"`
	Statement string `yaml:"statement"`
}

// Theory is a collection of axioms for a mathematical theory. Axiom order is
// the declaration order; the prover seeds proofs in this order.
type Theory struct {
	Name         string
	Description  string
	Axioms       []Axiom
	Dependencies []string
	Reference    string

	index map[string]int // axiom name -> position in Axioms
}

// NewTheory creates an empty theory.
func NewTheory(name, description string) *Theory {
	return &Theory{
		Name:        name,
		Description: description,
		index:       make(map[string]int),
	}
}

// AddAxiom adds an axiom, replacing the statement in place if the name
// already exists so declaration order is preserved.
func (t *Theory) AddAxiom(name, statement string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[name]; ok {
		t.Axioms[i].Statement = statement
		return
	}
	t.index[name] = len(t.Axioms)
	t.Axioms = append(t.Axioms, Axiom{Name: name, Statement: statement})
}

// Axiom retrieves an axiom statement by name.
func (t *Theory) Axiom(name string) (string, bool) {
	if t.index == nil {
		return "", false
	}
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.Axioms[i].Statement, true
}

// AxiomNames lists axiom names in declaration order.
func (t *Theory) AxiomNames() []string {
	names := make([]string, len(t.Axioms))
	for i, a := range t.Axioms {
		names[i] = a.Name
	}
	return names
}

// Len returns the number of axioms.
func (t *Theory) Len() int {
	return len(t.Axioms)
}
