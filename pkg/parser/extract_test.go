package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		label  string
		want   int
		wantOK bool
	}{
		{"plain", "Security Score: 85/100", "Security Score", 85, true},
		{"bold label", "**Security Score:** 72/100", "Security Score", 72, true},
		{"lower case no colon", "security score 40", "Security Score", 40, true},
		{"extra spaces", "Optimization   Score :  78 / 100", "Optimization Score", 78, true},
		{"first wins", "Security Score: 10\nSecurity Score: 90", "Security Score", 10, true},
		{"placeholder skipped", "Security Score: <0-100>\nSecurity Score: 55", "Security Score", 55, true},
		{"clamped", "Security Score: 250", "Security Score", 100, true},
		{"missing", "No structured data here", "Security Score", 0, false},
		{"label only", "Security Score: unknown", "Security Score", 0, false},
		{"overflow", "Security Score: 99999999999999999999999", "Security Score", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractScore(tt.text, tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestExtractValue(t *testing.T) {
	v, ok := ExtractValue("- Estimated Size: **~120MB**\n- Other: x", "Estimated Size")
	assert.True(t, ok)
	assert.Equal(t, "~120MB", v)

	_, ok = ExtractValue("nothing", "Estimated Size")
	assert.False(t, ok)
}

func TestExtractSection(t *testing.T) {
	text := `# Report

## Scores
Security Score: 60/100

## Issues
- **[high]** (line 1) Base image uses latest tag.

- **[low]** (line 4) Missing HEALTHCHECK.
### Details
Nested heading stays inside.
` + "```dockerfile\n## not a heading\n```" + `

## Optimized Dockerfile
` + "```dockerfile\nFROM alpine\n```"

	got, ok := ExtractSection(text, "Issues")

	assert.True(t, ok)
	assert.Equal(t, "- **[high]** (line 1) Base image uses latest tag.\n\n- **[low]** (line 4) Missing HEALTHCHECK.\n### Details\nNested heading stays inside.\n```dockerfile\n## not a heading\n```", got)
}

func TestExtractSection_Variants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"numbered", "## 3. Issues Found\nA\n## 4. Next\nB", "A"},
		{"bold heading", "**Issues:**\nA\nB", "A\nB"},
		{"to end", "### Issues\nonly this", "only this"},
		{"higher level ends", "### Issues\nA\n# Top\nB", "A"},
		{"crlf", "## Issues\r\nA\r\n## Next\r\n", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSection(tt.text, "Issues")
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSection_IgnoresHeadingsInFences(t *testing.T) {
	text := "```\n## Issues\nfake\n```\nplain text"

	got, ok := ExtractSection(text, "Issues")

	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestExtractOptimizedDockerfile(t *testing.T) {
	block := "# Build stage\nFROM golang:1.22 AS build\n\nRUN go build -o /app ./...\n\nFROM gcr.io/distroless/static\nCOPY --from=build /app /app"
	text := "## Issues\n```\nnot this one\n```\n\n## Optimized Dockerfile\n\nHere you go:\n\n```dockerfile\n" + block + "\n```\n\nTrailing notes."

	got, ok := ExtractOptimizedDockerfile(text)

	assert.True(t, ok)
	assert.Equal(t, block, got)
}

func TestExtractOptimizedDockerfile_Variants(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"tilde fence", "## Optimized Dockerfile\n~~~\nFROM a\n~~~", "FROM a", true},
		{"longer fence keeps inner backticks", "## Optimized Dockerfile\n````\nRUN echo ```\n```\n````", "RUN echo ```\n```", true},
		{"unterminated", "## Optimized Dockerfile\n```dockerfile\nFROM a\nRUN b", "FROM a\nRUN b", true},
		{"improved alias", "**Improved Dockerfile:**\n```\nFROM a\n```", "FROM a", true},
		{"heading without block", "## Optimized Dockerfile\nnone", "", false},
		{"no heading", "```\nFROM a\n```", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractOptimizedDockerfile(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
