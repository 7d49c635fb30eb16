package prompts

import (
    "fmt"
    "strings"
)

// Version identifies the analysis prompt. Bump it whenever the template text
// changes, since every downstream report depends on it.
const Version = "2025-06.1"

// Section headings the model is asked to use. The parser looks for the same text.
const (
    HeadingScores     = "Scores"
    HeadingMetrics    = "Optimization Metrics"
    HeadingIssues     = "Issues"
    HeadingOptimized  = "Optimized Dockerfile"
    LabelSecurity     = "Security Score"
    LabelOptimization = "Optimization Score"
)

const analysisTemplate = `You are a Dockerfile security and optimization expert.

Analyze the Dockerfile below and provide:
1. Security issues, each with a severity (high, medium or low) and the line number it appears on
2. Optimization opportunities (layer count, caching, image size, build time)
3. Best practice violations
4. A security score from 0 to 100
5. An optimization score from 0 to 100
6. A complete, improved version of the Dockerfile

Consider multi-stage builds for compiled languages, layer ordering and caching,
build arguments, efficient package management, non-root users, pinned base
images and build context size.

Respond in markdown using exactly these sections, in this order:

## %[1]s
%[5]s: <0-100>/100
%[6]s: <0-100>/100

## %[2]s
- Layer Count: <integer>
- Estimated Size: <size estimate>
- Cache Efficiency: <0-100>/100
- Build Time Score: <0-100>/100
- Maintainability Score: <0-100>/100

## %[3]s
One bullet per finding: **[severity]** (line N) description. Recommendation: fix.

## %[4]s
A single fenced code block tagged dockerfile containing the complete improved Dockerfile.

Dockerfile to analyze:
%[7]s
`

// BuildAnalysisPrompt embeds dockerfile verbatim in a fenced block after the
// fixed instructions. The fence is longer than any backtick run in the input.
func BuildAnalysisPrompt(dockerfile string) string {
    fence := Fence(dockerfile)

    var block strings.Builder
    block.WriteString(fence)
    block.WriteString("dockerfile\n")
    block.WriteString(dockerfile)
    if !strings.HasSuffix(dockerfile, "\n") {
        block.WriteString("\n")
    }
    block.WriteString(fence)

    return fmt.Sprintf(analysisTemplate,
        HeadingScores, HeadingMetrics, HeadingIssues, HeadingOptimized,
        LabelSecurity, LabelOptimization, block.String())
}

// Fence returns a backtick fence longer than any backtick run in text.
func Fence(text string) string {
    longest, run := 0, 0
    for _, r := range text {
        if r == '`' {
            run++
            if run > longest {
                longest = run
            }
            continue
        }
        run = 0
    }
    n := 3
    if longest >= n {
        n = longest + 1
    }
    return strings.Repeat("`", n)
}
