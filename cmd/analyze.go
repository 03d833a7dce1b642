package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/helmcode/bug-autopsy/pkg/analyzer"
	"github.com/helmcode/bug-autopsy/pkg/config"
	"github.com/helmcode/bug-autopsy/pkg/formatter"
	"github.com/helmcode/bug-autopsy/pkg/languages"
	"github.com/helmcode/bug-autopsy/pkg/model"
	"github.com/helmcode/bug-autopsy/pkg/observability"
	"github.com/helmcode/bug-autopsy/pkg/prompts"
	"github.com/helmcode/bug-autopsy/pkg/store"
)

var (
	analyzeStackTraceFile string
	analyzeCodeFile       string
	analyzeLanguage       string
	analyzeFramework      string
	analyzeOutputFormat   string
	analyzeSave           bool
	analyzeLLMProvider    string
	analyzeLLMModel       string
	analyzeConfigPath     string
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze ERROR_MESSAGE",
		Short: "Run one forensic bug analysis from the terminal",
		Long: `Send an error message, and optionally a stack trace and code snippet, to
the AI for forensic analysis.

Examples:
  # Analyze a bare error message
  bug-autopsy analyze "TypeError: Cannot read properties of undefined"

  # Include the failing code; the language is auto-detected
  bug-autopsy analyze "panic: runtime error" --code main.go

  # Pin language and framework, save the result as a case file
  bug-autopsy analyze "NullPointerException" -l java -f spring --save

  # Machine-readable output
  bug-autopsy analyze "segfault in handler" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringVar(&analyzeStackTraceFile, "stack-trace", "", "File containing the stack trace")
	cmd.Flags().StringVar(&analyzeCodeFile, "code", "", "File containing the code snippet")
	cmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "Programming language (auto-detected from code when omitted)")
	cmd.Flags().StringVarP(&analyzeFramework, "framework", "f", "", "Framework (react, django, spring, ...)")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the analysis as a case file")
	cmd.Flags().StringVar(&analyzeLLMProvider, "provider", "", "LLM provider (claude, openai)")
	cmd.Flags().StringVar(&analyzeLLMModel, "model", "", "LLM model override")
	cmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	errorMessage := args[0]

	stackTrace, err := readOptionalFile(analyzeStackTraceFile)
	if err != nil {
		return err
	}
	codeSnippet, err := readOptionalFile(analyzeCodeFile)
	if err != nil {
		return err
	}

	language := analyzeLanguage
	if language == "" && len(codeSnippet) > languages.DetectThreshold {
		// Advisory detection; a no-match never overrides the selection.
		if detected := languages.Detect(codeSnippet); detected != languages.Other {
			language = detected
			printSuccess(fmt.Sprintf("Detected language: %s", detected))
		}
	}

	printHeader(errorMessage, language)

	aiAnalyzer, err := analyzer.NewFromEnv(analyzeLLMProvider, analyzeLLMModel)
	if err != nil {
		return err
	}

	// Create spinner for visual feedback
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Performing autopsy..."
	s.Start()

	analysis, err := aiAnalyzer.Analyze(context.Background(), prompts.Request{
		ErrorMessage: errorMessage,
		StackTrace:   stackTrace,
		CodeSnippet:  codeSnippet,
		Language:     language,
		Framework:    analyzeFramework,
	})
	if err != nil {
		s.Stop()
		return fmt.Errorf("analysis failed: %w", err)
	}

	s.Stop()
	printSuccess("Autopsy complete")

	if err := formatter.DisplayAnalysis(analysis, analyzeOutputFormat); err != nil {
		return err
	}

	if analyzeSave {
		if err := saveAnalysis(analysis); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Saved case file %s", analysis.ID))
	}

	return nil
}

func saveAnalysis(analysis *model.BugAnalysis) error {
	cfg, err := config.Load(analyzeConfigPath)
	if err != nil {
		return err
	}
	cases, err := store.New(cfg.Store.Path, observability.NewLogger(cfg.Logger))
	if err != nil {
		return err
	}
	return cases.Save(model.NewCaseFile(*analysis))
}

func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printHeader(errorMessage, language string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println("🔬 Bug Autopsy")
	fmt.Printf("📝 Error: %s\n", errorMessage)
	if language != "" {
		fmt.Printf("🌐 Language: %s\n", language)
	}
	if analyzeFramework != "" {
		fmt.Printf("🧩 Framework: %s\n", analyzeFramework)
	}
	fmt.Println()
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}
