package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

// DisplayAnalysis formats and displays one bug analysis
func DisplayAnalysis(analysis *model.BugAnalysis, format string) error {
	switch format {
	case "json":
		return displayJSON(analysis)
	case "yaml":
		return displayYAML(analysis)
	case "human":
		fallthrough
	default:
		displayHuman(analysis)
	}
	return nil
}

func displayJSON(analysis *model.BugAnalysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(analysis *model.BugAnalysis) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(analysis *model.BugAnalysis) {
	// Colors
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Println()

	// Root Cause
	red.Println("💡 ROOT CAUSE IDENTIFIED:")
	fmt.Println(wrapText(analysis.RootCause, 80, "   "))
	fmt.Println()

	fmt.Printf("   Error type: %s | Category: %s | Location: %s\n\n",
		color.WhiteString(analysis.ErrorType), analysis.Category, analysis.Location)

	// Severity
	label := model.SeverityLabel(analysis.SeverityScore)
	severityColor := getSeverityColor(label)
	severityColor.Printf("📊 SEVERITY: %d/10 (%s)\n\n", analysis.SeverityScore, strings.ToUpper(label))

	// Failure location
	if analysis.FailureLine != "" {
		yellow.Println("⚠️  FAILURE LOCATION:")
		if analysis.FailureLineNumber != nil {
			fmt.Printf("   Line %d: %s\n", *analysis.FailureLineNumber, color.YellowString(analysis.FailureLine))
		} else {
			fmt.Printf("   %s\n", color.YellowString(analysis.FailureLine))
		}
		if analysis.MisleadingLine != "" {
			if analysis.MisleadingLineNumber != nil {
				fmt.Printf("   Misleading line %d: %s\n", *analysis.MisleadingLineNumber, analysis.MisleadingLine)
			} else {
				fmt.Printf("   Misleading line: %s\n", analysis.MisleadingLine)
			}
		}
		fmt.Println()
	}

	// Explanation
	white.Println("📄 EXPLANATION:")
	fmt.Println(wrapText(analysis.HumanExplanation, 80, "   "))
	fmt.Println()

	// Fix strategy, in execution order
	if len(analysis.FixStrategy) > 0 {
		green.Println("🔧 FIX STRATEGY:")
		for i, step := range analysis.FixStrategy {
			fmt.Printf("   %d. %s\n", i+1, step)
		}
		fmt.Println()
	}

	if len(analysis.BestPractices) > 0 {
		cyan.Println("💡 BEST PRACTICES:")
		for _, practice := range analysis.BestPractices {
			fmt.Printf("   • %s\n", practice)
		}
		fmt.Println()
	}

	if analysis.FixedCode != "" {
		green.Println("✅ FIXED CODE:")
		fmt.Println(indentLines(analysis.FixedCode, "   "))
		fmt.Println()
	}

	if analysis.OptimizedCode != "" {
		green.Println("🚀 OPTIMIZED VERSION:")
		fmt.Println(indentLines(analysis.OptimizedCode, "   "))
		fmt.Println()
	}

	// Production risk
	yellow.Println("🛡️  PRODUCTION RISK:")
	fmt.Printf("   Crash: %s | Data loss: %s | Security breach: %s | Performance: %s\n\n",
		riskFlag(analysis.ProductionRisk.CanCrash),
		riskFlag(analysis.ProductionRisk.CanCauseDataLoss),
		riskFlag(analysis.ProductionRisk.CanCauseSecurityBreach),
		riskFlag(analysis.ProductionRisk.CanCausePerformanceDegradation))

	// Detection flags and tags
	flags := detectionFlags(analysis)
	if len(flags) > 0 || len(analysis.Tags) > 0 {
		cyan.Println("🏷️  TAGS:")
		fmt.Printf("   %s\n\n", strings.Join(append(analysis.Tags, flags...), ", "))
	}

	// Footer
	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func riskFlag(v bool) string {
	if v {
		return color.RedString("yes")
	}
	return color.GreenString("no")
}

func detectionFlags(analysis *model.BugAnalysis) []string {
	var flags []string
	if analysis.HasInfiniteLoop {
		flags = append(flags, "infinite loop")
	}
	if analysis.HasRaceCondition {
		flags = append(flags, "race condition")
	}
	if analysis.HasNullError {
		flags = append(flags, "null error")
	}
	if analysis.HasMemoryLeak {
		flags = append(flags, "memory leak")
	}
	if analysis.HasBadAPIHandling {
		flags = append(flags, "bad API handling")
	}
	if analysis.IsDevOnly {
		flags = append(flags, "dev-only")
	}
	return flags
}

func getSeverityColor(label string) *color.Color {
	switch strings.ToLower(label) {
	case "critical":
		return color.New(color.FgRed, color.Bold)
	case "high":
		return color.New(color.FgRed)
	case "medium":
		return color.New(color.FgYellow)
	case "low":
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func indentLines(text, indent string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
