package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cases.json"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func testCase(t *testing.T) model.CaseFile {
	t.Helper()
	now := time.Now()
	return model.CaseFile{
		ID:        uuid.NewString(),
		Title:     "TypeError in javascript",
		CreatedAt: now,
		UpdatedAt: now,
		Status:    model.StatusOpen,
		Analysis: model.BugAnalysis{
			ID:            uuid.NewString(),
			CreatedAt:     now,
			ErrorMessage:  "TypeError: undefined",
			Language:      "javascript",
			RootCause:     "missing null check",
			ErrorType:     "TypeError",
			Category:      model.CategoryRuntime,
			Location:      model.LocationFrontend,
			SeverityScore: 4,
			FixStrategy:   []string{"add a guard"},
		},
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.List())
}

func TestSaveAndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	cf := testCase(t)
	require.NoError(t, s.Save(cf))

	got := s.List()
	require.Len(t, got, 1)

	// Timestamps must come back as structured time values equal to what was
	// saved, not raw strings.
	assert.True(t, got[0].CreatedAt.Equal(cf.CreatedAt))
	assert.True(t, got[0].UpdatedAt.Equal(cf.UpdatedAt))
	assert.True(t, got[0].Analysis.CreatedAt.Equal(cf.Analysis.CreatedAt))
	assert.Equal(t, cf.Analysis.RootCause, got[0].Analysis.RootCause)
}

func TestSaveOrdering(t *testing.T) {
	s := newTestStore(t)
	first := testCase(t)
	second := testCase(t)
	require.NoError(t, s.Save(first))
	require.NoError(t, s.Save(second))

	got := s.List()
	require.Len(t, got, 2)
	// Most recently created first.
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestUpsertKeepsPosition(t *testing.T) {
	s := newTestStore(t)
	older := testCase(t)
	newer := testCase(t)
	require.NoError(t, s.Save(older))
	require.NoError(t, s.Save(newer))

	// Update the older entry's status; it must stay in place, not move to
	// the front, and there must still be exactly two entries.
	updated := older
	updated.Status = model.StatusResolved
	require.NoError(t, s.Save(updated))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, model.StatusResolved, got[1].Status)
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	cf := testCase(t)
	require.NoError(t, s.Save(cf))

	require.NoError(t, s.Delete("no-such-id"))
	require.Len(t, s.List(), 1)

	require.NoError(t, s.Delete(cf.ID))
	assert.Empty(t, s.List())

	// Deleting again is still not an error.
	require.NoError(t, s.Delete(cf.ID))
}

func TestDeleteAbsentDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	s, err := New(path, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Delete("no-such-id"))

	// The no-op path must not touch the backing file.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	cf := testCase(t)
	require.NoError(t, s.Save(cf))

	got, err := s.Get(cf.ID)
	require.NoError(t, err)
	assert.Equal(t, cf.Title, got.Title)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	s := newTestStore(t)
	cf := testCase(t)
	require.NoError(t, s.Save(cf))

	got, err := s.SetStatus(cf.ID, model.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, got.Status)
	assert.True(t, got.UpdatedAt.After(cf.UpdatedAt) || got.UpdatedAt.Equal(cf.UpdatedAt))

	_, err = s.SetStatus(cf.ID, model.CaseStatus("closed"))
	require.Error(t, err)

	_, err = s.SetStatus("missing", model.StatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetNotes(t *testing.T) {
	s := newTestStore(t)
	cf := testCase(t)
	require.NoError(t, s.Save(cf))

	got, err := s.SetNotes(cf.ID, "reproduced on staging")
	require.NoError(t, err)
	assert.Equal(t, "reproduced on staging", got.Notes)
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := New(path, zap.NewNop())
	require.NoError(t, err)

	// Corruption is swallowed, not surfaced.
	assert.Empty(t, s.List())

	// A write recovers the store.
	cf := testCase(t)
	require.NoError(t, s.Save(cf))
	assert.Len(t, s.List(), 1)
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.json")

	s1, err := New(path, zap.NewNop())
	require.NoError(t, err)
	cf := testCase(t)
	require.NoError(t, s1.Save(cf))

	s2, err := New(path, zap.NewNop())
	require.NoError(t, err)
	got := s2.List()
	require.Len(t, got, 1)
	assert.Equal(t, cf.ID, got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(cf.CreatedAt))
}
