package languages

import "strings"

// Option is one entry in a selector list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Languages the input form offers. "other" doubles as the detector's
// no-match sentinel.
var Languages = []Option{
	{Value: "javascript", Label: "JavaScript"},
	{Value: "typescript", Label: "TypeScript"},
	{Value: "python", Label: "Python"},
	{Value: "java", Label: "Java"},
	{Value: "csharp", Label: "C#"},
	{Value: "cpp", Label: "C++"},
	{Value: "go", Label: "Go"},
	{Value: "rust", Label: "Rust"},
	{Value: "ruby", Label: "Ruby"},
	{Value: "php", Label: "PHP"},
	{Value: "swift", Label: "Swift"},
	{Value: "kotlin", Label: "Kotlin"},
	{Value: "sql", Label: "SQL"},
	{Value: "html", Label: "HTML"},
	{Value: "css", Label: "CSS"},
	{Value: "shell", Label: "Shell/Bash"},
	{Value: "other", Label: "Other"},
}

// Frameworks the input form offers.
var Frameworks = []Option{
	{Value: "react", Label: "React"},
	{Value: "vue", Label: "Vue.js"},
	{Value: "angular", Label: "Angular"},
	{Value: "nextjs", Label: "Next.js"},
	{Value: "svelte", Label: "Svelte"},
	{Value: "node", Label: "Node.js"},
	{Value: "express", Label: "Express"},
	{Value: "django", Label: "Django"},
	{Value: "flask", Label: "Flask"},
	{Value: "fastapi", Label: "FastAPI"},
	{Value: "spring", Label: "Spring Boot"},
	{Value: "rails", Label: "Ruby on Rails"},
	{Value: "laravel", Label: "Laravel"},
	{Value: "dotnet", Label: ".NET"},
	{Value: "none", Label: "None / Vanilla"},
}

const (
	// DefaultLanguage is used when the user never picks a language.
	DefaultLanguage = "javascript"

	// Other is the detector's no-match sentinel. Callers must discard it
	// rather than write it into the language selection.
	Other = "other"

	// DetectThreshold is the minimum snippet length before Detect is worth
	// consulting.
	DetectThreshold = 20
)

type rule struct {
	lang  string
	match func(code string) bool
}

func contains(code, sub string) bool { return strings.Contains(code, sub) }

// detectionRules run in order and the first hit wins. The order is
// load-bearing: framework-flavored checks come before generic syntax checks,
// otherwise a React snippet with a stray "const " would resolve to plain
// JavaScript.
var detectionRules = []rule{
	{"typescript", func(c string) bool {
		return contains(c, "import React") || contains(c, "useState") || contains(c, "useEffect")
	}},
	{"python", func(c string) bool {
		return contains(c, "def ") && contains(c, ":") && !contains(c, "{")
	}},
	{"java", func(c string) bool {
		return contains(c, "public class") || contains(c, "public static void main")
	}},
	{"go", func(c string) bool {
		return contains(c, "func ") && contains(c, "package ")
	}},
	{"rust", func(c string) bool {
		return contains(c, "fn ") && contains(c, "let mut")
	}},
	{"php", func(c string) bool {
		return contains(c, "<?php")
	}},
	{"ruby", func(c string) bool {
		return contains(c, "puts ") || (contains(c, "def ") && contains(c, "end"))
	}},
	{"javascript", func(c string) bool {
		return contains(c, "const ") || contains(c, "let ") || contains(c, "var ") || contains(c, "function ")
	}},
}

// Detect guesses the language of a code snippet from substring heuristics.
// It returns Other when nothing matches. The result is advisory only and
// must never override a language the user already picked.
func Detect(code string) string {
	for _, r := range detectionRules {
		if r.match(code) {
			return r.lang
		}
	}
	return Other
}

// Known reports whether value is one of the selectable languages.
func Known(value string) bool {
	for _, opt := range Languages {
		if opt.Value == value {
			return true
		}
	}
	return false
}
