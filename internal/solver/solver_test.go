package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axion/internal/axioms"
	"axion/internal/prover"
)

func TestDetectProblemKind(t *testing.T) {
	tests := []struct {
		problem string
		want    ProblemKind
	}{
		{"∫ x^2 dx", KindIntegrate},
		{"integrate x^3", KindIntegrate},
		{"d/dx[x^2]", KindDifferentiate},
		{"derivative of x", KindDifferentiate},
		{"f'(x)", KindDifferentiate},
		{"simplify x + 0", KindSimplify},
		{"2*x + 1 = 5", KindSolve},
		{"∀x: x = x", KindProve},
		{"∃x: x > 0", KindProve},
		{"P ⟹ Q", KindProve},
		{"a = b ⟹ b = a", KindProve},
		{"prove the identity", KindProve},
		{"x + 0", KindSimplify},
	}
	for _, tt := range tests {
		t.Run(tt.problem, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProblemKind(tt.problem))
		})
	}
}

func TestExtractExpression(t *testing.T) {
	assert.Equal(t, "x^2", ExtractExpression("d/dx[x^2]"))
	assert.Equal(t, "x^3", ExtractExpression("∫ x^3 dx"))
	assert.Equal(t, "x^2", ExtractExpression("differentiate x^2"))
}

func TestSolveDispatch(t *testing.T) {
	s := New(prover.DefaultConfig())

	t.Run("prove routes to the prover", func(t *testing.T) {
		result, err := s.Solve("∀x: x = x", "Logic", KindAuto)
		require.NoError(t, err)
		require.NotNil(t, result.Proof)
		assert.Equal(t, KindProve, result.Kind)
		assert.True(t, result.Proof.IsValid)
	})

	t.Run("differentiate", func(t *testing.T) {
		result, err := s.Solve("d/dx[x^2]", "Calculus", KindAuto)
		require.NoError(t, err)
		assert.Equal(t, "2*x", result.Output)
	})

	t.Run("integrate", func(t *testing.T) {
		result, err := s.Solve("∫ x^2 dx", "Calculus", KindAuto)
		require.NoError(t, err)
		assert.Equal(t, "x^3/3", result.Output)
	})

	t.Run("simplify", func(t *testing.T) {
		result, err := s.Solve("x + 0", "", KindSimplify)
		require.NoError(t, err)
		assert.Equal(t, "x", result.Output)
	})

	t.Run("solve equation", func(t *testing.T) {
		result, err := s.Solve("2*x + 1 = 5", "", KindAuto)
		require.NoError(t, err)
		assert.Equal(t, []string{"x = 2"}, result.Solutions)
	})

	t.Run("unknown theory surfaces the lookup failure", func(t *testing.T) {
		_, err := s.Solve("∀x: x = x", "Astrology", KindProve)
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := s.Solve("x", "", ProblemKind("transmogrify"))
		assert.Error(t, err)
	})
}

func TestCustomTheoryRegistration(t *testing.T) {
	s := New(prover.DefaultConfig())

	s.AddTheory("Probability", "Kolmogorov probability axioms", []axioms.Axiom{
		{Name: "non_negativity", Statement: "∀A ⊆ Ω: P(A) ≥ 0"},
		{Name: "normalization", Statement: "P(Ω) = 1"},
	})
	s.AddAxiom("Probability", "complement", "∀A ⊆ Ω: P(Ā) = 1 - P(A)")

	axs, ok := s.Axioms("Probability")
	require.True(t, ok)
	assert.Len(t, axs, 3)
	assert.Contains(t, s.ListTheories(), "Probability")

	result, err := s.Solve("P(Ω) = 1", "Probability", KindProve)
	require.NoError(t, err)
	assert.True(t, result.Proof.IsValid)
}
