package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"axion/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *ProofStore {
	t.Helper()
	store, err := NewProofStore(filepath.Join(t.TempDir(), "proofs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func sampleRecord(theorem, theory, hash string, valid bool) session.ProofRecord {
	return session.ProofRecord{
		Theorem:    theorem,
		Theory:     theory,
		ProofHash:  hash,
		Timestamp:  "2026-08-29T12:00:00Z",
		AxiomsUsed: []string{"addition_zero"},
		StepCount:  3,
		IsValid:    valid,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	first := sampleRecord("∀x: x = x", "Logic", "aa11", true)
	second := sampleRecord("∀n: 0 + n = n", "Peano", "", false)
	require.NoError(t, store.SaveRecord(first))
	require.NoError(t, store.SaveRecord(second))

	records, err := store.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, cmp.Diff(first, records[0]))
	assert.Empty(t, cmp.Diff(second, records[1]))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDuplicateHashIsIgnored(t *testing.T) {
	store := openTestStore(t)

	record := sampleRecord("∀x: x = x", "Logic", "aa11", true)
	require.NoError(t, store.SaveRecord(record))
	require.NoError(t, store.SaveRecord(record))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Failed proofs have no hash and may repeat freely.
	failed := sampleRecord("∀n: 0 + n = n", "Peano", "", false)
	require.NoError(t, store.SaveRecord(failed))
	require.NoError(t, store.SaveRecord(failed))
	count, err = store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGetByHash(t *testing.T) {
	store := openTestStore(t)

	record := sampleRecord("∀x: x = x", "Logic", "aa11", true)
	require.NoError(t, store.SaveRecord(record))

	got, ok, err := store.GetByHash("aa11")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(record, got))

	_, ok, err = store.GetByHash("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.GetByHash("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListByTheory(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveRecord(sampleRecord("A", "Peano", "01", true)))
	require.NoError(t, store.SaveRecord(sampleRecord("B", "Logic", "02", true)))
	require.NoError(t, store.SaveRecord(sampleRecord("C", "Peano", "03", false)))

	peano, err := store.ListByTheory("Peano")
	require.NoError(t, err)
	require.Len(t, peano, 2)
	assert.Equal(t, "A", peano[0].Theorem)
	assert.Equal(t, "C", peano[1].Theorem)

	empty, err := store.ListByTheory("ZFC")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionRestoreFromStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proofs.db")

	store, err := NewProofStore(path)
	require.NoError(t, err)
	s := session.NewSession("persistence test")
	s.SetArchive(store)
	require.NoError(t, s.Record(sampleRecord("∀x: x = x", "Logic", "aa11", true)))
	require.NoError(t, s.Record(sampleRecord("∀n: 0 + n = n", "Peano", "", false)))
	require.NoError(t, store.Close())

	reopened, err := NewProofStore(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	restored := session.NewSession("persistence test")
	restored.SetArchive(reopened)
	require.NoError(t, restored.Restore())
	assert.Equal(t, 2, restored.Len())
	assert.True(t, restored.VerifyProof("aa11"))
	assert.False(t, restored.VerifyProof(""))
}
