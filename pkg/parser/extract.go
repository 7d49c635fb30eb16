package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	atxHeadingRe  = regexp.MustCompile(`^ {0,3}(#{1,6})\s+(.*?)\s*#*\s*$`)
	boldHeadingRe = regexp.MustCompile(`^\s*\*\*([^*]+?)\*\*:?\s*$`)
	numberingRe   = regexp.MustCompile(`^(\d+[.)]|[ivx]+\.)\s+`)
)

// boldHeadingLevel ranks a whole-line bold title below every ATX heading.
const boldHeadingLevel = 7

// ExtractScore returns the first integer following label, clamped to 0-100.
// Matching is case-insensitive and tolerates markdown emphasis and a colon
// between the label and the number.
func ExtractScore(text, label string) (int, bool) {
	n, ok := ExtractInt(text, label)
	if !ok {
		return 0, false
	}
	if n > 100 {
		n = 100
	}
	return n, true
}

// ExtractInt returns the first integer following label.
func ExtractInt(text, label string) (int, bool) {
	re := labelRegexp(label, `(\d+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractValue returns the rest of the line following label, without
// surrounding emphasis markers.
func ExtractValue(text, label string) (string, bool) {
	re := labelRegexp(label, `([^\n]+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.Trim(strings.TrimSpace(m[1]), "*_` ")
	if v == "" {
		return "", false
	}
	return v, true
}

func labelRegexp(label, value string) *regexp.Regexp {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `[ \t*_:=]*` + value)
}

// ExtractSection returns the text between the first heading whose title
// starts with one of names and the next heading of the same or a higher
// level. Headings inside fenced code blocks are ignored.
func ExtractSection(text string, names ...string) (string, bool) {
	lines := splitLines(text)

	start, level := findHeading(lines, names)
	if start < 0 {
		return "", false
	}

	end := len(lines)
	var fence fenceState
	for i := start + 1; i < len(lines); i++ {
		if fence.step(lines[i]) {
			continue
		}
		if l, _, ok := heading(lines[i]); ok && l <= level {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start+1:end], "\n")), true
}

// ExtractFencedBlock returns the contents of the first fenced code block
// after the first heading matching one of names. Fence lines are excluded
// and internal newlines are kept. An unterminated block runs to the end of
// the text.
func ExtractFencedBlock(text string, names ...string) (string, bool) {
	lines := splitLines(text)

	start, _ := findHeading(lines, names)
	if start < 0 {
		return "", false
	}

	for i := start + 1; i < len(lines); i++ {
		ch, n, ok := fenceOpen(lines[i])
		if !ok {
			continue
		}
		var body []string
		for j := i + 1; j < len(lines); j++ {
			if isFenceClose(lines[j], ch, n) {
				return strings.Join(body, "\n"), true
			}
			body = append(body, lines[j])
		}
		return strings.Join(body, "\n"), true
	}
	return "", false
}

// ExtractOptimizedDockerfile returns the first fenced block under an
// "Optimized Dockerfile" heading.
func ExtractOptimizedDockerfile(text string) (string, bool) {
	return ExtractFencedBlock(text, "Optimized Dockerfile", "Improved Dockerfile")
}

func findHeading(lines []string, names []string) (int, int) {
	var fence fenceState
	for i, line := range lines {
		if fence.step(line) {
			continue
		}
		level, title, ok := heading(line)
		if !ok {
			continue
		}
		for _, name := range names {
			if strings.HasPrefix(title, strings.ToLower(name)) {
				return i, level
			}
		}
	}
	return -1, 0
}

// heading reports the level and normalized, lower-cased title of a heading line.
func heading(line string) (int, string, bool) {
	if m := atxHeadingRe.FindStringSubmatch(line); m != nil {
		return len(m[1]), normalizeTitle(m[2]), true
	}
	if m := boldHeadingRe.FindStringSubmatch(line); m != nil {
		return boldHeadingLevel, normalizeTitle(m[1]), true
	}
	return 0, "", false
}

func normalizeTitle(title string) string {
	t := strings.TrimSpace(strings.Trim(title, "*_ "))
	t = numberingRe.ReplaceAllString(strings.ToLower(t), "")
	return strings.TrimSpace(strings.TrimSuffix(strings.Trim(t, "*_ "), ":"))
}

// fenceState tracks whether a line scan is inside a fenced code block.
type fenceState struct {
	ch   byte
	n    int
	open bool
}

// step consumes line and reports whether it is part of a fenced block,
// fence lines included.
func (f *fenceState) step(line string) bool {
	if f.open {
		if isFenceClose(line, f.ch, f.n) {
			f.open = false
		}
		return true
	}
	if ch, n, ok := fenceOpen(line); ok {
		f.ch, f.n, f.open = ch, n, true
		return true
	}
	return false
}

func fenceOpen(line string) (byte, int, bool) {
	t := strings.TrimLeft(line, " ")
	if len(line)-len(t) > 3 || len(t) < 3 {
		return 0, 0, false
	}
	ch := t[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(t) && t[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	if ch == '`' && strings.Contains(t[n:], "`") {
		return 0, 0, false
	}
	return ch, n, true
}

func isFenceClose(line string, ch byte, n int) bool {
	t := strings.TrimSpace(line)
	if len(t) < n {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != ch {
			return false
		}
	}
	return true
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
