package session

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axion/internal/kernel"
)

type memoryArchive struct {
	records []ProofRecord
	failing bool
}

func (a *memoryArchive) SaveRecord(record ProofRecord) error {
	if a.failing {
		return fmt.Errorf("archive unavailable")
	}
	a.records = append(a.records, record)
	return nil
}

func (a *memoryArchive) LoadRecords() ([]ProofRecord, error) {
	if a.failing {
		return nil, fmt.Errorf("archive unavailable")
	}
	return a.records, nil
}

func validRecord(t *testing.T, theorem string) ProofRecord {
	t.Helper()
	k := kernel.New()
	proof := k.CreateProof(kernel.NewExpression(theorem), "Logic")
	_, err := k.AddStep(proof, kernel.NewExpression(theorem), kernel.AxiomApplication,
		nil, "Axiom: identity")
	require.NoError(t, err)
	proof.AxiomsUsed["identity"] = true
	require.True(t, k.ValidateProof(proof))
	return NewRecord(proof)
}

func TestSessionRecording(t *testing.T) {
	t.Run("records are indexed by hash and theorem", func(t *testing.T) {
		s := NewSession("test")
		record := validRecord(t, "∀x: x = x")
		require.NoError(t, s.Record(record))

		byHash, ok := s.GetProofByHash(record.ProofHash)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(record, byHash))

		byTheorem := s.GetProofsByTheorem("∀x: x = x")
		require.Len(t, byTheorem, 1)
		assert.Empty(t, cmp.Diff(record, byTheorem[0]))
	})

	t.Run("verify requires a valid recorded proof", func(t *testing.T) {
		s := NewSession("test")
		record := validRecord(t, "∀x: x = x")
		require.NoError(t, s.Record(record))
		assert.True(t, s.VerifyProof(record.ProofHash))

		failed := ProofRecord{Theorem: "∀x: x ≠ x", Theory: "Logic", IsValid: false}
		require.NoError(t, s.Record(failed))
		assert.False(t, s.VerifyProof(""))
		assert.False(t, s.VerifyProof("deadbeef"))
	})

	t.Run("record proof builds and stores in one call", func(t *testing.T) {
		s := NewSession("test")
		k := kernel.New()
		proof := k.CreateProof(kernel.NewExpression("P"), "Logic")
		_, err := k.AddStep(proof, kernel.NewExpression("P"), kernel.AxiomApplication,
			nil, "Axiom: p_holds")
		require.NoError(t, err)
		require.True(t, k.ValidateProof(proof))

		record, err := s.RecordProof(proof)
		require.NoError(t, err)
		assert.Equal(t, "P", record.Theorem)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("clear keeps session id", func(t *testing.T) {
		s := NewSession("test")
		id := s.ID()
		require.NoError(t, s.Record(validRecord(t, "∀x: x = x")))
		s.Clear()
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, id, s.ID())
		assert.Empty(t, s.Theorems())
	})
}

func TestSessionStats(t *testing.T) {
	s := NewSession("test")
	require.NoError(t, s.Record(ProofRecord{
		Theorem: "A", Theory: "Peano", IsValid: true, StepCount: 4,
		AxiomsUsed: []string{"addition_zero", "successor_injective"},
	}))
	require.NoError(t, s.Record(ProofRecord{
		Theorem: "B", Theory: "Peano", IsValid: false, StepCount: 9,
		AxiomsUsed: []string{"addition_zero"},
	}))
	require.NoError(t, s.Record(ProofRecord{
		Theorem: "C", Theory: "Logic", IsValid: true, StepCount: 1,
		AxiomsUsed: []string{"identity"},
	}))

	stats := s.Stats()
	assert.Equal(t, 3, stats.TotalProofs)
	assert.Equal(t, 2, stats.ValidProofs)
	assert.Equal(t, map[string]int{"Peano": 2, "Logic": 1}, stats.ByTheory)
	assert.InDelta(t, 14.0/3.0, stats.AverageSteps, 1e-9)
	require.NotEmpty(t, stats.TopAxioms)
	assert.Equal(t, AxiomUsage{Axiom: "addition_zero", Count: 2}, stats.TopAxioms[0])
}

func TestSessionArchive(t *testing.T) {
	t.Run("records write through", func(t *testing.T) {
		s := NewSession("test")
		archive := &memoryArchive{}
		s.SetArchive(archive)
		record := validRecord(t, "∀x: x = x")
		require.NoError(t, s.Record(record))
		require.Len(t, archive.records, 1)
		assert.Empty(t, cmp.Diff(record, archive.records[0]))
	})

	t.Run("restore replaces history", func(t *testing.T) {
		archive := &memoryArchive{records: []ProofRecord{
			{Theorem: "A", Theory: "Logic", IsValid: true, StepCount: 1},
			{Theorem: "B", Theory: "Peano", IsValid: false, StepCount: 3},
		}}
		s := NewSession("test")
		require.NoError(t, s.Record(ProofRecord{Theorem: "stale"}))
		s.SetArchive(archive)
		require.NoError(t, s.Restore())
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, []string{"A", "B"}, s.Theorems())
	})

	t.Run("archive failure surfaces", func(t *testing.T) {
		s := NewSession("test")
		s.SetArchive(&memoryArchive{failing: true})
		err := s.Record(ProofRecord{Theorem: "A"})
		assert.Error(t, err)
	})

	t.Run("restore without archive errors", func(t *testing.T) {
		s := NewSession("test")
		assert.Error(t, s.Restore())
	})
}

func TestSessionExportImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	src := NewSession("export test")
	first := validRecord(t, "∀x: x = x")
	require.NoError(t, src.Record(first))
	require.NoError(t, src.Record(ProofRecord{
		Theorem: "∀n: 0 + n = n", Theory: "Peano", StepCount: 9,
		AxiomsUsed: []string{"addition_zero"},
	}))
	require.NoError(t, src.Export(path))

	dst := NewSession("import test")
	count, err := dst.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, cmp.Diff(src.ListProofs(), dst.ListProofs()))

	_, err = dst.Import(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
