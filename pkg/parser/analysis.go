package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

// jsonObjectPattern grabs the first '{' through the last '}' so a JSON
// object embedded in conversational text still parses.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// requiredFields must all be present in the model's JSON for the analysis to
// count as valid. A missing field fails the whole record; the raw text is
// never partially trusted.
var requiredFields = []string{
	"rootCause", "errorType", "category", "location",
	"humanExplanation", "eli5Explanation", "seniorExplanation", "interviewExplanation",
	"fixStrategy", "bestPractices",
	"severityScore", "productionRisk",
	"hasInfiniteLoop", "hasRaceCondition", "hasNullError",
	"hasMemoryLeak", "hasBadApiHandling", "isDevOnly",
	"tags",
}

// ParseAnalysisResponse extracts and validates the BugAnalysis object from a
// raw completion. Markdown fences are stripped first; then the first {...}
// substring is tried, falling back to the whole body.
func ParseAnalysisResponse(raw string) (*model.BugAnalysis, error) {
	cleaned := stripFences(raw)

	candidate := jsonObjectPattern.FindString(cleaned)
	if candidate == "" {
		candidate = cleaned
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("failed to parse analysis response: missing required field %q", key)
		}
	}

	var analysis model.BugAnalysis
	if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return &analysis, nil
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	re := regexp.MustCompile("```[a-zA-Z]*\n|```")
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}
