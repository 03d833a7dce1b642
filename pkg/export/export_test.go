package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

func sampleAnalysis() model.BugAnalysis {
	line := 42
	return model.BugAnalysis{
		Language:             "go",
		RootCause:            "write to a nil map",
		ErrorType:            "panic",
		Category:             model.CategoryRuntime,
		Location:             model.LocationBackend,
		FailureLineNumber:    &line,
		FailureLine:          "m[\"k\"] = 1",
		HumanExplanation:     "Maps must be initialized before use.",
		Eli5Explanation:      "x",
		SeniorExplanation:    "x",
		InterviewExplanation: "x",
		FixStrategy:          []string{"initialize the map with make"},
		BestPractices:        []string{"initialize maps at declaration"},
		SeverityScore:        8,
		ProductionRisk:       model.ProductionRisk{CanCrash: true},
		HasNullError:         true,
		Tags:                 []string{"maps"},
	}
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Render(&sb, sampleAnalysis()))
	html := sb.String()

	assert.Contains(t, html, "Bug Autopsy Report")
	assert.Contains(t, html, "write to a nil map")
	assert.Contains(t, html, "8/10 (Critical)")
	assert.Contains(t, html, "severity-critical")
	assert.Contains(t, html, "Line 42")
	assert.Contains(t, html, "initialize the map with make")
	assert.Contains(t, html, "App Crash: Yes")
	assert.Contains(t, html, "Data Loss: No")
	assert.Contains(t, html, "Null Error")
	assert.Contains(t, html, "maps")
}

func TestRenderSkipsEmptySections(t *testing.T) {
	a := sampleAnalysis()
	a.FailureLine = ""
	a.FixedCode = ""
	a.OptimizedCode = ""

	var sb strings.Builder
	require.NoError(t, Render(&sb, a))
	html := sb.String()

	assert.NotContains(t, html, "Failure Location")
	assert.NotContains(t, html, "Fixed Code")
	assert.NotContains(t, html, "Optimized Version")
}
