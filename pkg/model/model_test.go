package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{1, "Low"},
		{3, "Low"},
		{4, "Medium"},
		{5, "Medium"},
		{6, "High"},
		{7, "High"},
		{8, "Critical"},
		{10, "Critical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityLabel(tt.score), "score %d", tt.score)
	}
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryAsync.Valid())
	assert.True(t, Category("memory").Valid())
	assert.False(t, Category("weather").Valid())
}

func TestLocationValid(t *testing.T) {
	assert.True(t, LocationUnknown.Valid())
	assert.False(t, Location("cloud").Valid())
}

func TestCaseStatusValid(t *testing.T) {
	assert.True(t, StatusOpen.Valid())
	assert.True(t, StatusArchived.Valid())
	assert.False(t, CaseStatus("closed").Valid())
}

func validAnalysis() BugAnalysis {
	return BugAnalysis{
		RootCause:            "nil dereference",
		ErrorType:            "NullPointerException",
		Category:             CategoryRuntime,
		Location:             LocationBackend,
		HumanExplanation:     "x",
		Eli5Explanation:      "x",
		SeniorExplanation:    "x",
		InterviewExplanation: "x",
		FixStrategy:          []string{"check for nil"},
		SeverityScore:        5,
		Language:             "java",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid analysis passes", func(t *testing.T) {
		a := validAnalysis()
		require.NoError(t, a.Validate())
	})

	t.Run("whitespace-only explanation fails", func(t *testing.T) {
		a := validAnalysis()
		a.Eli5Explanation = "   "
		require.Error(t, a.Validate())
	})

	t.Run("empty fix strategy fails", func(t *testing.T) {
		a := validAnalysis()
		a.FixStrategy = nil
		require.Error(t, a.Validate())
	})

	t.Run("severity bounds", func(t *testing.T) {
		a := validAnalysis()
		a.SeverityScore = 0
		require.Error(t, a.Validate())
		a.SeverityScore = 10
		require.NoError(t, a.Validate())
	})
}

func TestNewCaseFile(t *testing.T) {
	a := validAnalysis()
	a.ID = "abc-123"

	cf := NewCaseFile(a)
	assert.Equal(t, "abc-123", cf.ID)
	assert.Equal(t, "NullPointerException in java", cf.Title)
	assert.Equal(t, StatusOpen, cf.Status)
	assert.False(t, cf.CreatedAt.IsZero())
	assert.Equal(t, cf.CreatedAt, cf.UpdatedAt)
	assert.Equal(t, a, cf.Analysis)
}
