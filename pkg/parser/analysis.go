package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/helmcode/dockerfile-ai/pkg/model"
	"github.com/helmcode/dockerfile-ai/pkg/prompts"
)

// ParseAnalysisResponse turns a raw completion into an Analysis. It never
// fails: a JSON object with security_score and friends is decoded when present,
// otherwise sections are pulled out of markdown text. Anything missing falls
// back to a default and is recorded in Analysis.Warnings.
func ParseAnalysisResponse(raw string) *model.Analysis {
	if analysis, ok := parseJSON(raw); ok {
		return analysis
	}
	return parseText(raw)
}

func parseText(raw string) *model.Analysis {
	analysis := &model.Analysis{
		Metrics: model.Metrics{EstimatedSize: model.UnknownSize},
	}
	warn := func(msg string) { analysis.Warnings = append(analysis.Warnings, msg) }

	if n, ok := ExtractScore(raw, prompts.LabelSecurity); ok {
		analysis.SecurityScore = n
	} else {
		warn("security score not found, defaulting to 0")
	}
	if n, ok := ExtractScore(raw, prompts.LabelOptimization); ok {
		analysis.OptimizationScore = n
	} else {
		warn("optimization score not found, defaulting to 0")
	}

	if issues, ok := ExtractSection(raw, prompts.HeadingIssues); ok {
		analysis.Issues = issues
	} else {
		warn("issues section not found")
	}

	if df, ok := ExtractOptimizedDockerfile(raw); ok {
		analysis.OptimizedDockerfile = df
	} else {
		warn("optimized Dockerfile block not found")
	}

	parseMetrics(raw, &analysis.Metrics)

	return analysis
}

// parseMetrics fills whatever metrics are present. Missing metrics are not
// warned about individually; they are supplementary to the scores.
func parseMetrics(raw string, m *model.Metrics) {
	if n, ok := ExtractInt(raw, "Layer Count"); ok {
		m.LayerCount = n
	}
	if v, ok := ExtractValue(raw, "Estimated Size"); ok {
		m.EstimatedSize = v
	} else if v, ok := ExtractValue(raw, "Estimated Image Size"); ok {
		m.EstimatedSize = v
	}
	if n, ok := ExtractScore(raw, "Cache Efficiency"); ok {
		m.CacheEfficiency = n
	}
	if n, ok := ExtractScore(raw, "Build Time Score"); ok {
		m.BuildTimeScore = n
	}
	if n, ok := ExtractScore(raw, "Maintainability Score"); ok {
		m.MaintainabilityScore = n
	}
}

type jsonAnalysis struct {
	SecurityScore       *flexInt     `json:"security_score"`
	OptimizationScore   *flexInt     `json:"optimization_score"`
	Issues              []jsonIssue  `json:"issues"`
	Metrics             *jsonMetrics `json:"optimization_metrics"`
	DetailedReport      string       `json:"detailed_report"`
	OptimizedDockerfile *string      `json:"optimized_dockerfile"`
}

type jsonIssue struct {
	Severity       string  `json:"severity"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
	LineNumber     flexInt `json:"line_number"`
}

type jsonMetrics struct {
	LayerCount           flexInt         `json:"layer_count"`
	EstimatedSize        json.RawMessage `json:"estimated_size"`
	CacheEfficiency      flexInt         `json:"cache_efficiency"`
	BuildTimeScore       flexInt         `json:"build_time_score"`
	MaintainabilityScore flexInt         `json:"maintainability_score"`
}

func parseJSON(raw string) (*model.Analysis, bool) {
	body := strings.TrimSpace(unwrapFence(strings.TrimSpace(raw)))
	if !strings.HasPrefix(body, "{") {
		return nil, false
	}

	var resp jsonAnalysis
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, false
	}

	analysis := &model.Analysis{
		Metrics: model.Metrics{EstimatedSize: model.UnknownSize},
		Issues:  strings.TrimSpace(resp.DetailedReport),
	}
	warn := func(msg string) { analysis.Warnings = append(analysis.Warnings, msg) }

	if resp.SecurityScore != nil {
		analysis.SecurityScore = resp.SecurityScore.score()
	} else {
		warn("security score not found, defaulting to 0")
	}
	if resp.OptimizationScore != nil {
		analysis.OptimizationScore = resp.OptimizationScore.score()
	} else {
		warn("optimization score not found, defaulting to 0")
	}

	for _, issue := range resp.Issues {
		analysis.IssueList = append(analysis.IssueList, model.Issue{
			Severity:       strings.ToLower(strings.TrimSpace(issue.Severity)),
			Category:       issue.Category,
			Description:    issue.Description,
			Recommendation: issue.Recommendation,
			LineNumber:     int(issue.LineNumber),
		})
	}
	if len(analysis.IssueList) == 0 && analysis.Issues == "" {
		warn("issues section not found")
	}

	if resp.OptimizedDockerfile != nil && strings.TrimSpace(*resp.OptimizedDockerfile) != "" {
		analysis.OptimizedDockerfile = unwrapFence(*resp.OptimizedDockerfile)
	} else {
		warn("optimized Dockerfile block not found")
	}

	if m := resp.Metrics; m != nil {
		analysis.Metrics = model.Metrics{
			LayerCount:           int(m.LayerCount),
			EstimatedSize:        rawString(m.EstimatedSize),
			CacheEfficiency:      m.CacheEfficiency.score(),
			BuildTimeScore:       m.BuildTimeScore.score(),
			MaintainabilityScore: m.MaintainabilityScore.score(),
		}
	}

	return analysis, true
}

// unwrapFence strips one fenced block wrapping the whole of text, if any.
func unwrapFence(text string) string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return text
	}
	ch, n, ok := fenceOpen(lines[0])
	if !ok {
		return text
	}
	last := len(lines) - 1
	for last > 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if last == 0 || !isFenceClose(lines[last], ch, n) {
		return text
	}
	return strings.Join(lines[1:last], "\n")
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return model.UnknownSize
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return model.UnknownSize
	}
	return strings.TrimSpace(string(raw))
}

// flexInt accepts JSON numbers and strings such as "85" or "85/100".
// Anything unparseable decodes to 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

func (f flexInt) score() int {
	switch {
	case f < 0:
		return 0
	case f > 100:
		return 100
	}
	return int(f)
}
