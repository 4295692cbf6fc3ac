package jsonsanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpenRE     = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\r?\n?")
	fenceCloseRE    = regexp.MustCompile("\r?\n?```$")
	blockCommentRE  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRE = regexp.MustCompile(`,(\s*[}\]])`)
)

// normalizeText runs the ordered cleanup stages over raw text. The order is
// load-bearing: later stages assume earlier ones already normalized encoding
// and structure.
func normalizeText(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)
	s = stripFences(s)
	s = unwrapDoubleEncoded(s)
	s = trailingCommaRE.ReplaceAllString(s, "$1")
	s = stripComments(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = fenceOpenRE.ReplaceAllString(s, "")
	s = fenceCloseRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// unwrapDoubleEncoded undoes one level of JSON string encoding: text that is
// itself a JSON string literal is replaced by its content, then the common
// escape sequences are unfolded once more for doubly-escaped payloads.
// Backslash comes last so it cannot feed the earlier replacements.
func unwrapDoubleEncoded(s string) string {
	if !strings.HasPrefix(s, `"`) {
		return s
	}
	var inner string
	if err := json.Unmarshal([]byte(s), &inner); err != nil {
		return s
	}
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\n`, "\n")
	inner = strings.ReplaceAll(inner, `\r`, "\r")
	inner = strings.ReplaceAll(inner, `\t`, "\t")
	inner = strings.ReplaceAll(inner, `\\`, `\`)
	return strings.TrimSpace(inner)
}

func stripComments(s string) string {
	s = blockCommentRE.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if idx := lineCommentIndex(line); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// lineCommentIndex returns the offset of the first // on the line that sits
// outside a string literal, judged by the parity of unescaped double quotes
// before it, or -1. The parity check deliberately tolerates // inside quoted
// URLs. Known approximation: multi-line string values and escaped quotes
// combined with comments on one logical line can fool it.
func lineCommentIndex(line string) int {
	quotes := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if i > 0 && line[i-1] == '\\' {
				continue
			}
			quotes++
		case '/':
			if i+1 < len(line) && line[i+1] == '/' && quotes%2 == 0 {
				return i
			}
		}
	}
	return -1
}

// escapeControlChars escapes raw newlines, carriage returns and tabs found
// inside string literals, which strict JSON forbids. The second return is
// true iff anything changed.
func escapeControlChars(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s) + 16)
	inString := false
	escaped := false
	changed := false
	for _, r := range s {
		if !inString {
			if r == '"' {
				inString = true
			}
			b.WriteRune(r)
			continue
		}
		if escaped {
			escaped = false
			b.WriteRune(r)
			continue
		}
		switch r {
		case '\\':
			escaped = true
			b.WriteRune(r)
		case '"':
			inString = false
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
			changed = true
		case '\r':
			b.WriteString(`\r`)
			changed = true
		case '\t':
			b.WriteString(`\t`)
			changed = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), changed
}
