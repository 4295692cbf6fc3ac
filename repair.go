package jsonsanitize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	lineCommentRE     = regexp.MustCompile(`//[^\n]*`)
	singleQuotedRE    = regexp.MustCompile(`'([^']*)'`)
	adjacentStringsRE = regexp.MustCompile(`"(\s+)"`)
	bareKeyRE         = regexp.MustCompile(`([{,]\s*)(\w+)(\s*):`)
)

// Repair aggressively rewrites malformed text into valid JSON. It prefers
// grammar-aware repair, falls back to the local heuristic rewrites, and as a
// last resort runs the full Sanitize text path. Repair is text-only: numbers,
// bools and other primitives fail with a type mismatch.
func Repair(input any) (*Result, error) {
	switch v := input.(type) {
	case nil:
		return nil, newError(KindInvalidInput, "input is null")
	case string:
		if v == "" {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return repairText(v, input)
	case []byte:
		if len(v) == 0 {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return repairText(string(v), input)
	case json.RawMessage:
		if len(v) == 0 {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return repairText(string(v), input)
	}
	if isStructured(input) {
		return passThrough(input)
	}
	return nil, newError(KindTypeMismatch, "repair requires text input, got %T", input)
}

func repairText(text string, original any) (*Result, error) {
	var repairErr error

	if fixed, err := jsonrepair.Repair(text); err == nil {
		if parsed, perr := parseStrict(fixed); perr == nil {
			return repairedResult(fixed, parsed, text, original), nil
		} else {
			repairErr = perr
		}
	} else {
		repairErr = err
	}

	repaired := heuristicRepair(text)
	if parsed, err := parseStrict(repaired); err == nil {
		return repairedResult(repaired, parsed, text, original), nil
	} else {
		repairErr = err
	}

	res, normErr := sanitizeText(text, original)
	if normErr == nil {
		return res, nil
	}
	return nil, newError(KindRepair, "repair failed: %v; normalizer fallback failed: %v", repairErr, normErr)
}

func repairedResult(repaired string, parsed any, text string, original any) *Result {
	return &Result{
		CleanedString: repaired,
		Parsed:        parsed,
		Original:      original,
		WasRepaired:   strings.TrimSpace(repaired) != strings.TrimSpace(text),
	}
}

// heuristicRepair applies pattern-based fixes with no grammar awareness:
// comment stripping, single-to-double quote conversion, missing commas
// between adjacent strings, bare object keys, trailing commas. Text that does
// not look like JSON at all is wrapped as a string literal, so some valid
// token always comes out. It can misfire on pathological input (apostrophes
// inside single-quoted strings, identifier-shaped text inside values);
// callers treat it as a best-effort last resort.
func heuristicRepair(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, `"`) {
		return quoteAsString(trimmed)
	}
	s := blockCommentRE.ReplaceAllString(trimmed, "")
	s = lineCommentRE.ReplaceAllString(s, "")
	s = singleQuotedRE.ReplaceAllString(s, `"$1"`)
	s = adjacentStringsRE.ReplaceAllString(s, `",$1"`)
	s = bareKeyRE.ReplaceAllString(s, `$1"$2"$3:`)
	s = trailingCommaRE.ReplaceAllString(s, "$1")
	return s
}

func quoteAsString(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}
