package axioms

import (
	"sort"
	"sync"

	"axion/internal/logging"
)

// Library is the central repository for all mathematical theories. Safe for
// concurrent use; the reload watcher writes while provers read.
type Library struct {
	mu       sync.RWMutex
	theories map[string]*Theory
}

// NewLibrary returns a library loaded with the standard theories.
func NewLibrary() *Library {
	lib := &Library{theories: make(map[string]*Theory)}
	lib.initializeStandardTheories()
	return lib
}

// GetTheory retrieves a theory by name. A missing theory is a normal lookup
// miss, not an error.
func (l *Library) GetTheory(name string) (*Theory, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.theories[name]
	return t, ok
}

// AddTheory registers or replaces a theory.
func (l *Library) AddTheory(theory *Theory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.theories[theory.Name] = theory
	logging.Axioms("Registered theory %s (%d axioms)", theory.Name, theory.Len())
}

// ListTheories returns all theory names, sorted.
func (l *Library) ListTheories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.theories))
	for name := range l.theories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAxiom fetches a specific axiom statement from a theory.
func (l *Library) GetAxiom(theoryName, axiomName string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	theory, ok := l.theories[theoryName]
	if !ok {
		return "", false
	}
	return theory.Axiom(axiomName)
}

// AddAxiom adds an axiom to an existing theory, creating a custom theory when
// the name is unknown.
func (l *Library) AddAxiom(theoryName, axiomName, statement string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	theory, ok := l.theories[theoryName]
	if !ok {
		theory = NewTheory(theoryName, "Custom theory: "+theoryName)
		l.theories[theoryName] = theory
	}
	theory.AddAxiom(axiomName, statement)
	logging.AxiomsDebug("Added axiom %s.%s", theoryName, axiomName)
}

// initializeStandardTheories loads the built-in mathematical theories.
func (l *Library) initializeStandardTheories() {
	logic := NewTheory("Logic", "Classical first-order logic")
	logic.Reference = "Standard logical axioms"
	logic.AddAxiom("excluded_middle", "∀P: P ∨ ¬P")
	logic.AddAxiom("non_contradiction", "∀P: ¬(P ∧ ¬P)")
	logic.AddAxiom("identity", "∀x: x = x")
	logic.AddAxiom("leibniz_equality", "∀x,y: (x = y) ⟹ (∀P: P(x) ⟺ P(y))")
	l.theories["Logic"] = logic

	peano := NewTheory("Peano", "Natural number arithmetic")
	peano.Reference = "Peano (1889), Axioms for natural numbers"
	peano.AddAxiom("zero_natural", "0 ∈ ℕ")
	peano.AddAxiom("successor_natural", "∀n ∈ ℕ: S(n) ∈ ℕ")
	peano.AddAxiom("zero_not_successor", "∀n ∈ ℕ: S(n) ≠ 0")
	peano.AddAxiom("successor_injective", "∀m,n ∈ ℕ: S(m) = S(n) ⟹ m = n")
	peano.AddAxiom("induction", "∀P: [P(0) ∧ (∀n: P(n) ⟹ P(S(n)))] ⟹ ∀n: P(n)")
	peano.AddAxiom("addition_zero", "∀n: n + 0 = n")
	peano.AddAxiom("addition_successor", "∀m,n: m + S(n) = S(m + n)")
	peano.AddAxiom("multiplication_zero", "∀n: n × 0 = 0")
	peano.AddAxiom("multiplication_successor", "∀m,n: m × S(n) = m × n + m")
	l.theories["Peano"] = peano

	zfc := NewTheory("ZFC", "Zermelo-Fraenkel Set Theory with Choice")
	zfc.Reference = "Standard ZFC axioms"
	zfc.AddAxiom("extensionality", "∀A,B: (∀x: x ∈ A ⟺ x ∈ B) ⟹ A = B")
	zfc.AddAxiom("empty_set", "∃∅: ∀x: x ∉ ∅")
	zfc.AddAxiom("pairing", "∀a,b: ∃P: ∀x: x ∈ P ⟺ (x = a ∨ x = b)")
	zfc.AddAxiom("union", "∀F: ∃U: ∀x: x ∈ U ⟺ ∃A ∈ F: x ∈ A")
	zfc.AddAxiom("power_set", "∀A: ∃P: ∀B: B ∈ P ⟺ B ⊆ A")
	zfc.AddAxiom("infinity", "∃I: ∅ ∈ I ∧ (∀x ∈ I: x ∪ {x} ∈ I)")
	zfc.AddAxiom("replacement", "∀A: ∀F: ∃B: ∀y: y ∈ B ⟺ ∃x ∈ A: F(x) = y")
	zfc.AddAxiom("regularity", "∀A: A ≠ ∅ ⟹ ∃x ∈ A: x ∩ A = ∅")
	zfc.AddAxiom("choice", "∀F: (∀A ∈ F: A ≠ ∅) ⟹ ∃f: ∀A ∈ F: f(A) ∈ A")
	l.theories["ZFC"] = zfc

	groups := NewTheory("Groups", "Abstract group theory")
	groups.Reference = "Standard group axioms"
	groups.AddAxiom("closure", "∀a,b ∈ G: a · b ∈ G")
	groups.AddAxiom("associativity", "∀a,b,c ∈ G: (a · b) · c = a · (b · c)")
	groups.AddAxiom("identity", "∃e ∈ G: ∀a ∈ G: e · a = a · e = a")
	groups.AddAxiom("inverse", "∀a ∈ G: ∃a⁻¹ ∈ G: a · a⁻¹ = a⁻¹ · a = e")
	l.theories["Groups"] = groups

	rings := NewTheory("Rings", "Ring theory axioms")
	rings.Reference = "Standard ring axioms"
	rings.Dependencies = []string{"Groups"}
	rings.AddAxiom("additive_group", "(R, +) is an abelian group")
	rings.AddAxiom("multiplicative_closure", "∀a,b ∈ R: a × b ∈ R")
	rings.AddAxiom("multiplicative_associativity", "∀a,b,c ∈ R: (a × b) × c = a × (b × c)")
	rings.AddAxiom("distributivity_left", "∀a,b,c ∈ R: a × (b + c) = a × b + a × c")
	rings.AddAxiom("distributivity_right", "∀a,b,c ∈ R: (a + b) × c = a × c + b × c")
	l.theories["Rings"] = rings

	fields := NewTheory("Fields", "Field theory axioms")
	fields.Reference = "Standard field axioms"
	fields.Dependencies = []string{"Rings"}
	fields.AddAxiom("ring", "(F, +, ×) is a commutative ring")
	fields.AddAxiom("multiplicative_identity", "∃1 ∈ F: 1 ≠ 0 ∧ ∀a ∈ F: 1 × a = a")
	fields.AddAxiom("multiplicative_inverse", "∀a ∈ F \\{0}: ∃a⁻¹ ∈ F: a × a⁻¹ = 1")
	l.theories["Fields"] = fields

	vectorSpaces := NewTheory("VectorSpaces", "Vector space axioms over a field")
	vectorSpaces.Reference = "Standard vector space axioms"
	vectorSpaces.Dependencies = []string{"Fields"}
	vectorSpaces.AddAxiom("additive_group", "(V, +) is an abelian group")
	vectorSpaces.AddAxiom("scalar_multiplication", "∀c ∈ F, v ∈ V: c · v ∈ V")
	vectorSpaces.AddAxiom("scalar_distributivity", "∀c ∈ F, u,v ∈ V: c · (u + v) = c · u + c · v")
	vectorSpaces.AddAxiom("field_distributivity", "∀c,d ∈ F, v ∈ V: (c + d) · v = c · v + d · v")
	vectorSpaces.AddAxiom("scalar_associativity", "∀c,d ∈ F, v ∈ V: (c × d) · v = c · (d · v)")
	vectorSpaces.AddAxiom("scalar_identity", "∀v ∈ V: 1 · v = v")
	l.theories["VectorSpaces"] = vectorSpaces

	realAnalysis := NewTheory("RealAnalysis", "Real number system and analysis")
	realAnalysis.Reference = "Standard real analysis axioms"
	realAnalysis.Dependencies = []string{"Fields"}
	realAnalysis.AddAxiom("ordered_field", "ℝ is an ordered field")
	realAnalysis.AddAxiom("completeness", "Every non-empty bounded subset of ℝ has a supremum")
	realAnalysis.AddAxiom("archimedean", "∀x,y ∈ ℝ, x > 0: ∃n ∈ ℕ: nx > y")
	l.theories["RealAnalysis"] = realAnalysis

	calculus := NewTheory("Calculus", "Differential and integral calculus")
	calculus.Reference = "Standard calculus axioms and definitions"
	calculus.Dependencies = []string{"RealAnalysis"}
	calculus.AddAxiom("derivative_def", "f'(x) = lim[h→0] (f(x+h) - f(x))/h")
	calculus.AddAxiom("integral_def", "∫[a,b] f(x)dx = lim[n→∞] Σ f(xᵢ)Δx")
	calculus.AddAxiom("fundamental_theorem_1", "d/dx[∫[a,x] f(t)dt] = f(x)")
	calculus.AddAxiom("fundamental_theorem_2", "∫[a,b] f'(x)dx = f(b) - f(a)")
	calculus.AddAxiom("power_rule", "d/dx[xⁿ] = n·xⁿ⁻¹")
	calculus.AddAxiom("chain_rule", "d/dx[f(g(x))] = f'(g(x))·g'(x)")
	calculus.AddAxiom("product_rule", "d/dx[f(x)g(x)] = f'(x)g(x) + f(x)g'(x)")
	calculus.AddAxiom("linearity_derivative", "d/dx[af(x) + bg(x)] = a·f'(x) + b·g'(x)")
	calculus.AddAxiom("linearity_integral", "∫[a,b] [af(x) + bg(x)]dx = a·∫[a,b]f(x)dx + b·∫[a,b]g(x)dx")
	l.theories["Calculus"] = calculus

	topology := NewTheory("Topology", "General topology axioms")
	topology.Reference = "Standard topological space axioms"
	topology.Dependencies = []string{"ZFC"}
	topology.AddAxiom("empty_and_full", "∅ ∈ τ ∧ X ∈ τ")
	topology.AddAxiom("arbitrary_union", "∀F ⊆ τ: ⋃F ∈ τ")
	topology.AddAxiom("finite_intersection", "∀U,V ∈ τ: U ∩ V ∈ τ")
	l.theories["Topology"] = topology

	categoryTheory := NewTheory("CategoryTheory", "Category theory axioms")
	categoryTheory.Reference = "Standard category axioms"
	categoryTheory.AddAxiom("composition", "∀f: A → B, g: B → C: ∃(g ∘ f): A → C")
	categoryTheory.AddAxiom("associativity", "∀f,g,h: (h ∘ g) ∘ f = h ∘ (g ∘ f)")
	categoryTheory.AddAxiom("identity", "∀A: ∃idₐ: A → A: ∀f: A → B: f ∘ idₐ = f ∧ id_B ∘ f = f")
	categoryTheory.AddAxiom("yoneda", "Nat(Hom(A,-), F) ≅ F(A)")
	l.theories["CategoryTheory"] = categoryTheory

	numberTheory := NewTheory("NumberTheory", "Elementary number theory")
	numberTheory.Reference = "Standard number theory results"
	numberTheory.Dependencies = []string{"Peano"}
	numberTheory.AddAxiom("division_algorithm", "∀a,b ∈ ℤ, b ≠ 0: ∃!q,r: a = bq + r ∧ 0 ≤ r < |b|")
	numberTheory.AddAxiom("fundamental_theorem_arithmetic", "Every n > 1 has unique prime factorization")
	numberTheory.AddAxiom("euclid_gcd", "gcd(a,b) = gcd(b, a mod b)")
	l.theories["NumberTheory"] = numberTheory
}
