package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

func validAnalysisFields() map[string]any {
	return map[string]any{
		"rootCause":            "The variable is read before it is assigned.",
		"errorType":            "TypeError",
		"category":             "logic",
		"location":             "frontend",
		"failureLineNumber":    12,
		"failureLine":          "return user.name;",
		"misleadingLine":       "const user = fetchUser();",
		"misleadingLineNumber": 8,
		"humanExplanation":     "The object is undefined when accessed.",
		"eli5Explanation":      "You opened the box before anything was put inside.",
		"seniorExplanation":    "The async fetch resolves after the render path dereferences the value.",
		"interviewExplanation": "I would describe the race between fetch and render.",
		"fixStrategy":          []string{"Guard the access", "Await the fetch"},
		"bestPractices":        []string{"Use optional chaining"},
		"fixedCode":            "return user?.name;",
		"severityScore":        6,
		"productionRisk": map[string]bool{
			"canCrash":                       true,
			"canCauseDataLoss":               false,
			"canCauseSecurityBreach":         false,
			"canCausePerformanceDegradation": false,
		},
		"hasInfiniteLoop":   false,
		"hasRaceCondition":  true,
		"hasNullError":      true,
		"hasMemoryLeak":     false,
		"hasBadApiHandling": false,
		"isDevOnly":         false,
		"tags":              []string{"async", "runtime"},
	}
}

func validAnalysisJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(validAnalysisFields())
	require.NoError(t, err)
	return string(data)
}

func TestParseAnalysisResponse(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		analysis, err := ParseAnalysisResponse(validAnalysisJSON(t))
		require.NoError(t, err)
		assert.Equal(t, "TypeError", analysis.ErrorType)
		assert.Equal(t, model.CategoryLogic, analysis.Category)
		assert.Equal(t, 6, analysis.SeverityScore)
		require.NotNil(t, analysis.FailureLineNumber)
		assert.Equal(t, 12, *analysis.FailureLineNumber)
		assert.True(t, analysis.HasRaceCondition)
		assert.Equal(t, []string{"Guard the access", "Await the fetch"}, analysis.FixStrategy)
	})

	t.Run("JSON embedded in surrounding prose", func(t *testing.T) {
		raw := "Here is the result: " + validAnalysisJSON(t) + "\nLet me know if you need more."
		analysis, err := ParseAnalysisResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "The variable is read before it is assigned.", analysis.RootCause)
	})

	t.Run("JSON wrapped in markdown fences", func(t *testing.T) {
		raw := "```json\n" + validAnalysisJSON(t) + "\n```"
		analysis, err := ParseAnalysisResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, model.LocationFrontend, analysis.Location)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := ParseAnalysisResponse("Sorry, I cannot analyze this bug.")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse analysis response")
	})

	t.Run("missing required field fails the whole record", func(t *testing.T) {
		fields := validAnalysisFields()
		delete(fields, "rootCause")
		data, err := json.Marshal(fields)
		require.NoError(t, err)

		_, err = ParseAnalysisResponse(string(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rootCause")
	})

	t.Run("missing boolean flag fails the whole record", func(t *testing.T) {
		fields := validAnalysisFields()
		delete(fields, "isDevOnly")
		data, err := json.Marshal(fields)
		require.NoError(t, err)

		_, err = ParseAnalysisResponse(string(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "isDevOnly")
	})

	t.Run("invalid category fails validation", func(t *testing.T) {
		fields := validAnalysisFields()
		fields["category"] = "cosmic-rays"
		data, err := json.Marshal(fields)
		require.NoError(t, err)

		_, err = ParseAnalysisResponse(string(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("severity out of range fails validation", func(t *testing.T) {
		fields := validAnalysisFields()
		fields["severityScore"] = 11
		data, err := json.Marshal(fields)
		require.NoError(t, err)

		_, err = ParseAnalysisResponse(string(data))
		require.Error(t, err)
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		fields := validAnalysisFields()
		delete(fields, "failureLineNumber")
		delete(fields, "failureLine")
		delete(fields, "misleadingLine")
		delete(fields, "misleadingLineNumber")
		delete(fields, "fixedCode")
		data, err := json.Marshal(fields)
		require.NoError(t, err)

		analysis, err := ParseAnalysisResponse(string(data))
		require.NoError(t, err)
		assert.Nil(t, analysis.FailureLineNumber)
		assert.Empty(t, analysis.FixedCode)
	})
}
