package model

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies what kind of bug the analysis identified.
type Category string

const (
	CategoryLogic      Category = "logic"
	CategoryNetwork    Category = "network"
	CategoryUI         Category = "ui"
	CategoryDatabase   Category = "database"
	CategorySecurity   Category = "security"
	CategorySyntax     Category = "syntax"
	CategoryRuntime    Category = "runtime"
	CategoryAsync      Category = "async"
	CategoryMemory     Category = "memory"
	CategoryDependency Category = "dependency"
)

var validCategories = map[Category]bool{
	CategoryLogic: true, CategoryNetwork: true, CategoryUI: true,
	CategoryDatabase: true, CategorySecurity: true, CategorySyntax: true,
	CategoryRuntime: true, CategoryAsync: true, CategoryMemory: true,
	CategoryDependency: true,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return validCategories[c] }

// Location says which part of the stack the bug lives in.
type Location string

const (
	LocationFrontend  Location = "frontend"
	LocationBackend   Location = "backend"
	LocationFullstack Location = "fullstack"
	LocationUnknown   Location = "unknown"
)

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	switch l {
	case LocationFrontend, LocationBackend, LocationFullstack, LocationUnknown:
		return true
	}
	return false
}

// ProductionRisk holds the four independent impact flags.
type ProductionRisk struct {
	CanCrash                       bool `json:"canCrash" yaml:"canCrash"`
	CanCauseDataLoss               bool `json:"canCauseDataLoss" yaml:"canCauseDataLoss"`
	CanCauseSecurityBreach         bool `json:"canCauseSecurityBreach" yaml:"canCauseSecurityBreach"`
	CanCausePerformanceDegradation bool `json:"canCausePerformanceDegradation" yaml:"canCausePerformanceDegradation"`
}

// BugAnalysis is the full forensic report for one submitted bug.
// The id, createdAt and input-echo fields are assigned locally when a model
// response is accepted; until then they are zero and stay off the wire, so a
// not-yet-accepted analysis serializes without identity.
type BugAnalysis struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`

	// Input echo
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	StackTrace   string `json:"stackTrace,omitempty" yaml:"stackTrace,omitempty"`
	CodeSnippet  string `json:"codeSnippet,omitempty" yaml:"codeSnippet,omitempty"`
	Language     string `json:"language,omitempty" yaml:"language,omitempty"`
	Framework    string `json:"framework,omitempty" yaml:"framework,omitempty"`

	// Classification
	RootCause string   `json:"rootCause" yaml:"rootCause"`
	ErrorType string   `json:"errorType" yaml:"errorType"`
	Category  Category `json:"category" yaml:"category"`
	Location  Location `json:"location" yaml:"location"`

	// Failure localization
	FailureLineNumber    *int   `json:"failureLineNumber,omitempty" yaml:"failureLineNumber,omitempty"`
	FailureLine          string `json:"failureLine,omitempty" yaml:"failureLine,omitempty"`
	MisleadingLine       string `json:"misleadingLine,omitempty" yaml:"misleadingLine,omitempty"`
	MisleadingLineNumber *int   `json:"misleadingLineNumber,omitempty" yaml:"misleadingLineNumber,omitempty"`

	// Explanations
	HumanExplanation     string `json:"humanExplanation" yaml:"humanExplanation"`
	Eli5Explanation      string `json:"eli5Explanation" yaml:"eli5Explanation"`
	SeniorExplanation    string `json:"seniorExplanation" yaml:"seniorExplanation"`
	InterviewExplanation string `json:"interviewExplanation" yaml:"interviewExplanation"`

	// Remediation
	FixStrategy   []string `json:"fixStrategy" yaml:"fixStrategy"`
	BestPractices []string `json:"bestPractices" yaml:"bestPractices"`
	FixedCode     string   `json:"fixedCode,omitempty" yaml:"fixedCode,omitempty"`
	OptimizedCode string   `json:"optimizedCode,omitempty" yaml:"optimizedCode,omitempty"`

	// Severity & risk
	SeverityScore  int            `json:"severityScore" yaml:"severityScore"`
	ProductionRisk ProductionRisk `json:"productionRisk" yaml:"productionRisk"`

	// Detection flags
	HasInfiniteLoop   bool `json:"hasInfiniteLoop" yaml:"hasInfiniteLoop"`
	HasRaceCondition  bool `json:"hasRaceCondition" yaml:"hasRaceCondition"`
	HasNullError      bool `json:"hasNullError" yaml:"hasNullError"`
	HasMemoryLeak     bool `json:"hasMemoryLeak" yaml:"hasMemoryLeak"`
	HasBadAPIHandling bool `json:"hasBadApiHandling" yaml:"hasBadApiHandling"`
	IsDevOnly         bool `json:"isDevOnly" yaml:"isDevOnly"`

	Tags []string `json:"tags" yaml:"tags"`
}

// Validate checks the analysis fields the model is responsible for. It does
// not check identity or input-echo fields, which are filled in locally.
func (a *BugAnalysis) Validate() error {
	if strings.TrimSpace(a.RootCause) == "" {
		return fmt.Errorf("missing rootCause")
	}
	if strings.TrimSpace(a.ErrorType) == "" {
		return fmt.Errorf("missing errorType")
	}
	if !a.Category.Valid() {
		return fmt.Errorf("invalid category %q", a.Category)
	}
	if !a.Location.Valid() {
		return fmt.Errorf("invalid location %q", a.Location)
	}
	for name, text := range map[string]string{
		"humanExplanation":     a.HumanExplanation,
		"eli5Explanation":      a.Eli5Explanation,
		"seniorExplanation":    a.SeniorExplanation,
		"interviewExplanation": a.InterviewExplanation,
	} {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("missing %s", name)
		}
	}
	if len(a.FixStrategy) == 0 {
		return fmt.Errorf("missing fixStrategy")
	}
	if a.SeverityScore < 1 || a.SeverityScore > 10 {
		return fmt.Errorf("severityScore %d out of range [1,10]", a.SeverityScore)
	}
	return nil
}

// SeverityLabel buckets a 1-10 severity score for display.
func SeverityLabel(score int) string {
	switch {
	case score <= 3:
		return "Low"
	case score <= 5:
		return "Medium"
	case score <= 7:
		return "High"
	default:
		return "Critical"
	}
}

// CaseStatus is the lifecycle state of a saved case file.
type CaseStatus string

const (
	StatusOpen     CaseStatus = "open"
	StatusResolved CaseStatus = "resolved"
	StatusArchived CaseStatus = "archived"
)

// Valid reports whether s is a known case status.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusResolved, StatusArchived:
		return true
	}
	return false
}

// CaseFile is one saved analysis with its own lifecycle.
type CaseFile struct {
	ID        string      `json:"id" yaml:"id"`
	Title     string      `json:"title" yaml:"title"`
	CreatedAt time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" yaml:"updatedAt"`
	Analysis  BugAnalysis `json:"analysis" yaml:"analysis"`
	Notes     string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status    CaseStatus  `json:"status" yaml:"status"`
}

// NewCaseFile wraps an analysis in a fresh open case file. The case shares
// the analysis id so saving the same analysis twice upserts instead of
// duplicating.
func NewCaseFile(analysis BugAnalysis) CaseFile {
	now := time.Now()
	return CaseFile{
		ID:        analysis.ID,
		Title:     fmt.Sprintf("%s in %s", analysis.ErrorType, analysis.Language),
		CreatedAt: now,
		UpdatedAt: now,
		Analysis:  analysis,
		Status:    StatusOpen,
	}
}
