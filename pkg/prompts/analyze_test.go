package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	t.Run("minimal request has no optional sections", func(t *testing.T) {
		got := BuildAnalysisPrompt(Request{
			ErrorMessage: "boom",
			Language:     "javascript",
		})
		assert.Contains(t, got, "**Error Message:**\nboom")
		assert.Contains(t, got, "**Programming Language:** javascript")
		assert.NotContains(t, got, "**Stack Trace:**")
		assert.NotContains(t, got, "**Code Snippet:**")
		assert.NotContains(t, got, "**Framework:**")
	})

	t.Run("full request fences the snippet with its language", func(t *testing.T) {
		got := BuildAnalysisPrompt(Request{
			ErrorMessage: "IndexError",
			StackTrace:   "trace.py:3",
			CodeSnippet:  "print(xs[9])",
			Language:     "python",
			Framework:    "django",
		})
		assert.Contains(t, got, "**Stack Trace:**\ntrace.py:3")
		assert.Contains(t, got, "```python\nprint(xs[9])\n```")
		assert.Contains(t, got, "**Framework:** django")
	})
}

func TestSystemPromptNamesEverySchemaField(t *testing.T) {
	for _, field := range []string{
		"rootCause", "errorType", "category", "location",
		"failureLineNumber", "failureLine", "misleadingLine",
		"humanExplanation", "eli5Explanation", "seniorExplanation",
		"interviewExplanation", "fixStrategy", "bestPractices",
		"severityScore", "productionRisk", "hasBadApiHandling",
		"isDevOnly", "tags",
	} {
		assert.Contains(t, SystemPrompt, `"`+field+`"`, field)
	}
}
