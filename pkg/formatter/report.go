package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helmcode/dockerfile-ai/pkg/model"
	"github.com/helmcode/dockerfile-ai/pkg/prompts"
)

// ReportTitle is the first line of every report.
const ReportTitle = "# Dockerfile Analysis Report"

// RenderMarkdown assembles the report. Sections always appear in the same
// order (scores, metrics, issues, optimized Dockerfile) and absent values are
// rendered as placeholders.
func RenderMarkdown(a *model.Analysis) string {
	if a == nil {
		a = &model.Analysis{}
	}

	var b strings.Builder
	b.WriteString(ReportTitle + "\n\n")

	if a.Provider != "" {
		fmt.Fprintf(&b, "_Generated with %s (%s), prompt version %s._\n\n", a.Provider, a.Model, a.PromptVersion)
	}

	b.WriteString("## " + prompts.HeadingScores + "\n")
	fmt.Fprintf(&b, "- %s: %d/100\n", prompts.LabelSecurity, a.SecurityScore)
	fmt.Fprintf(&b, "- %s: %d/100\n\n", prompts.LabelOptimization, a.OptimizationScore)

	size := a.Metrics.EstimatedSize
	if size == "" {
		size = model.UnknownSize
	}
	b.WriteString("## " + prompts.HeadingMetrics + "\n")
	fmt.Fprintf(&b, "- Layer Count: %d\n", a.Metrics.LayerCount)
	fmt.Fprintf(&b, "- Estimated Size: %s\n", size)
	fmt.Fprintf(&b, "- Cache Efficiency: %d/100\n", a.Metrics.CacheEfficiency)
	fmt.Fprintf(&b, "- Build Time Score: %d/100\n", a.Metrics.BuildTimeScore)
	fmt.Fprintf(&b, "- Maintainability Score: %d/100\n\n", a.Metrics.MaintainabilityScore)

	b.WriteString("## " + prompts.HeadingIssues + "\n\n")
	switch {
	case strings.TrimSpace(a.Issues) != "":
		b.WriteString(strings.TrimSpace(a.Issues) + "\n\n")
		if len(a.IssueList) > 0 {
			writeIssueList(&b, a.IssueList)
		}
	case len(a.IssueList) > 0:
		writeIssueList(&b, a.IssueList)
	default:
		b.WriteString("_No issues reported._\n\n")
	}

	b.WriteString("## " + prompts.HeadingOptimized + "\n\n")
	if a.OptimizedDockerfile == "" {
		b.WriteString("_No optimized Dockerfile was returned._\n")
	} else {
		fence := prompts.Fence(a.OptimizedDockerfile)
		b.WriteString(fence + "dockerfile\n")
		b.WriteString(a.OptimizedDockerfile)
		if !strings.HasSuffix(a.OptimizedDockerfile, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(fence + "\n")
	}

	return b.String()
}

var severityRank = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

func rank(severity string) int {
	if r, ok := severityRank[strings.ToLower(severity)]; ok {
		return r
	}
	return len(severityRank)
}

// writeIssueList groups issues under one sub-heading per severity.
func writeIssueList(b *strings.Builder, issues []model.Issue) {
	sorted := make([]model.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i].Severity), rank(sorted[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Category < sorted[j].Category
	})

	current := "\x00"
	for _, issue := range sorted {
		severity := strings.ToUpper(strings.TrimSpace(issue.Severity))
		if severity == "" {
			severity = "UNSPECIFIED"
		}
		if severity != current {
			current = severity
			fmt.Fprintf(b, "### %s Severity Issues\n\n", severity)
		}

		category := issue.Category
		if category == "" {
			category = "general"
		}
		fmt.Fprintf(b, "**%s**\n", category)
		fmt.Fprintf(b, "- Description: %s\n", issue.Description)
		if issue.Recommendation != "" {
			fmt.Fprintf(b, "- Recommendation: %s\n", issue.Recommendation)
		}
		if issue.LineNumber > 0 {
			fmt.Fprintf(b, "- Line Number: %d\n", issue.LineNumber)
		}
		b.WriteString("\n")
	}
}
