package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/dockerfile-ai/pkg/model"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by DisplayResults.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Paths tells the summary where the generated files went.
type Paths struct {
	Report    string
	Optimized string
}

// DisplayResults formats and displays the analysis results
func DisplayResults(w io.Writer, analysis *model.Analysis, format string, paths Paths) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, analysis)
	case FormatYAML:
		return displayYAML(w, analysis)
	case FormatHuman:
		fallthrough
	default:
		displayHuman(w, analysis, paths)
	}
	return nil
}

func displayJSON(w io.Writer, analysis *model.Analysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, analysis *model.Analysis) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, analysis *model.Analysis, paths Paths) {
	// Colors
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	fmt.Fprintln(w)

	// Scores
	cyan.Fprintln(w, "📊 SCORES:")
	fmt.Fprintf(w, "   Security Score:     %s\n", scoreString(analysis.SecurityScore))
	fmt.Fprintf(w, "   Optimization Score: %s\n\n", scoreString(analysis.OptimizationScore))

	// Metrics
	m := analysis.Metrics
	white.Fprintln(w, "📐 OPTIMIZATION METRICS:")
	fmt.Fprintf(w, "   Layer Count:           %d\n", m.LayerCount)
	fmt.Fprintf(w, "   Estimated Size:        %s\n", m.EstimatedSize)
	fmt.Fprintf(w, "   Cache Efficiency:      %d/100\n", m.CacheEfficiency)
	fmt.Fprintf(w, "   Build Time Score:      %d/100\n", m.BuildTimeScore)
	fmt.Fprintf(w, "   Maintainability Score: %d/100\n\n", m.MaintainabilityScore)

	// Issues found
	if len(analysis.IssueList) > 0 {
		yellow.Fprintln(w, "⚠️  ISSUES FOUND:")
		for i, issue := range analysis.IssueList {
			severityIcon := getSeverityIcon(issue.Severity)
			fmt.Fprintf(w, "   %d. %s %s\n", i+1, severityIcon, getSeverityColor(issue.Severity).Sprint(issue.Category))
			fmt.Fprintf(w, "      %s\n", issue.Description)
			if issue.LineNumber > 0 {
				fmt.Fprintf(w, "      Line: %s\n", color.YellowString("%d", issue.LineNumber))
			}
			if issue.Recommendation != "" {
				fmt.Fprintf(w, "      Fix: %s\n", color.GreenString(issue.Recommendation))
			}
			fmt.Fprintln(w)
		}
	} else if analysis.Issues != "" {
		yellow.Fprintln(w, "⚠️  ISSUES FOUND:")
		fmt.Fprintln(w, wrapText(analysis.Issues, 80, "   "))
		fmt.Fprintln(w)
	}

	// Incomplete response
	if len(analysis.Warnings) > 0 {
		yellow.Fprintln(w, "❗ INCOMPLETE RESPONSE:")
		for _, warning := range analysis.Warnings {
			fmt.Fprintf(w, "   - %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	// Footer
	fmt.Fprintln(w, strings.Repeat("─", 80))
	if paths.Report != "" {
		fmt.Fprintf(w, "📄 Report: %s\n", paths.Report)
	}
	if paths.Optimized != "" {
		fmt.Fprintf(w, "🐳 Optimized Dockerfile: %s\n", paths.Optimized)
	}
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func scoreString(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return color.GreenString(text)
	case score >= 50:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

func getSeverityColor(severity string) *color.Color {
	switch strings.ToLower(severity) {
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

func getSeverityIcon(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return "🔴"
	case "high":
		return "🟠"
	case "medium":
		return "🟡"
	case "low":
		return "🟢"
	default:
		return "⚪"
	}
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
