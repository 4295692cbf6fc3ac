// Package jsonsanitize turns "almost JSON" into valid parsed JSON plus a
// canonical cleaned string, using the least invasive transformation that
// yields valid output. Text input runs through ordered cleanup stages (BOM,
// markdown fences, double-encoding, trailing commas, comments, line endings)
// and a chain of progressively more aggressive parse fallbacks; structured
// input passes through untouched apart from pretty-printing.
//
// Every call is a pure function over its input: no I/O, no shared state, no
// caching. Calls may be parallelized freely by the caller.
package jsonsanitize

import (
	"encoding/json"
	"reflect"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tailscale/hujson"
)

// Sanitize normalizes input into valid JSON.
//
// Structured input (a map or slice) is returned as-is with WasAlreadyParsed
// set and CleanedString holding its pretty-printed serialization. Text input
// is cleaned and parsed; when the strict parse fails, Sanitize falls back to
// a control-character escape pass, grammar-aware repair, and finally the
// local heuristic repair, in that order.
func Sanitize(input any) (*Result, error) {
	switch v := input.(type) {
	case nil:
		return nil, newError(KindInvalidInput, "input is null")
	case string:
		if v == "" {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return sanitizeText(v, input)
	case []byte:
		if len(v) == 0 {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return sanitizeText(string(v), input)
	case json.RawMessage:
		if len(v) == 0 {
			return nil, newError(KindInvalidInput, "input is empty")
		}
		return sanitizeText(string(v), input)
	}
	if isStructured(input) {
		return passThrough(input)
	}
	return nil, newError(KindUnsupportedType, "unsupported input type %T, expected text or a structured value", input)
}

func isStructured(input any) bool {
	switch reflect.ValueOf(input).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

func passThrough(input any) (*Result, error) {
	cleaned, err := prettyJSON(input)
	if err != nil {
		return nil, newError(KindUnsupportedType, "input is not JSON-serializable: %v", err)
	}
	return &Result{
		CleanedString:    cleaned,
		Parsed:           input,
		Original:         input,
		WasAlreadyParsed: true,
	}, nil
}

func sanitizeText(text string, original any) (*Result, error) {
	cleaned := normalizeText(text)

	parsed, strictErr := parseStrict(cleaned)
	if strictErr == nil {
		return textResult(cleaned, parsed, original), nil
	}

	// Raw control characters inside string values are the cheapest fix, so
	// try that before anything structural. Only retry when the pass changed
	// something.
	if escaped, changed := escapeControlChars(cleaned); changed {
		if parsed, err := parseStrict(escaped); err == nil {
			return textResult(escaped, parsed, original), nil
		}
	}

	// Grammar-aware tools next: hujson handles comments and trailing commas
	// the staged transforms missed, jsonrepair handles unbalanced brackets,
	// missing commas and quoting issues.
	if std, err := hujson.Standardize([]byte(cleaned)); err == nil {
		if parsed, err := parseStrict(string(std)); err == nil {
			return textResult(string(std), parsed, original), nil
		}
	}
	if fixed, err := jsonrepair.Repair(cleaned); err == nil {
		if parsed, err := parseStrict(fixed); err == nil {
			return textResult(fixed, parsed, original), nil
		}
	}

	// Local heuristic repair on the cleaned text, then on the original text
	// as a last resort in case a transform stage made things worse.
	repaired := heuristicRepair(cleaned)
	if parsed, err := parseStrict(repaired); err == nil {
		return textResult(repaired, parsed, original), nil
	}
	if again := heuristicRepair(text); again != repaired {
		if parsed, err := parseStrict(again); err == nil {
			return textResult(again, parsed, original), nil
		}
	}

	failure := newError(KindParse, "unable to parse JSON after cleanup: %v; use repair mode for heavily malformed input", strictErr)
	failure.Preview = preview(cleaned)
	return nil, failure
}

func parseStrict(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func textResult(cleaned string, parsed any, original any) *Result {
	return &Result{
		CleanedString: cleaned,
		Parsed:        parsed,
		Original:      original,
	}
}
