package jsonsanitize

import (
	"encoding/json"
	"strings"
)

// FindSnippets scans text and returns every balanced, strictly valid JSON
// object or array substring it can find.
func FindSnippets(text string) []string {
	data := []byte(text)
	var snippets []string
	for i := 0; i < len(data); i++ {
		if data[i] != '{' && data[i] != '[' {
			continue
		}
		if snippet := scanBalanced(data, i); snippet != "" {
			snippets = append(snippets, snippet)
			i += len(snippet) - 1
		}
	}
	return snippets
}

// Candidates returns possible JSON payloads buried in text, in preference
// order: the trimmed text itself, fenced code blocks, balanced snippets, and
// the unwrapped form of double-encoded payloads.
func Candidates(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	candidates := []string{trimmed}
	if strings.Contains(trimmed, "```") {
		parts := strings.Split(trimmed, "```")
		for i := 1; i < len(parts); i += 2 {
			block := strings.TrimSpace(parts[i])
			block = strings.TrimPrefix(block, "json")
			block = strings.TrimSpace(block)
			if block != "" {
				candidates = append(candidates, block)
			}
		}
	}
	candidates = append(candidates, FindSnippets(trimmed)...)
	if unquoted := unquoteStrict(trimmed); unquoted != "" {
		candidates = append(candidates, unquoted)
		candidates = append(candidates, FindSnippets(unquoted)...)
	}
	return candidates
}

// SanitizeAny tries Sanitize on each candidate payload in text and returns
// the first structured (object or array) result, or failing that the first
// success of any shape. Useful when the JSON is buried in prose.
func SanitizeAny(text string) (*Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, newError(KindInvalidInput, "input is empty")
	}
	var fallback *Result
	var firstErr error
	for _, candidate := range Candidates(text) {
		res, err := Sanitize(candidate)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		res.Original = text
		switch res.Parsed.(type) {
		case map[string]any, []any:
			return res, nil
		}
		if fallback == nil {
			fallback = res
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, firstErr
}

// unquoteStrict returns the content of text when it is exactly one JSON
// string literal, and "" otherwise.
func unquoteStrict(text string) string {
	if !strings.HasPrefix(text, `"`) {
		return ""
	}
	var value string
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// scanBalanced returns the balanced JSON object/array starting at start, or
// "" when brackets never balance or the candidate fails a strict parse.
func scanBalanced(data []byte, start int) string {
	var stack []byte
	inString := false
	escape := false
	for i := start; i < len(data); i++ {
		ch := data[i]
		if inString {
			if escape {
				escape = false
				continue
			}
			switch ch {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				return ""
			}
			open := stack[len(stack)-1]
			if (open == '{' && ch != '}') || (open == '[' && ch != ']') {
				return ""
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				snippet := string(data[start : i+1])
				if json.Valid([]byte(snippet)) {
					return snippet
				}
				return ""
			}
		}
	}
	return ""
}
