package jsonsanitize

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/tidwall/pretty"
)

// Result is the outcome of one Sanitize or Repair call. CleanedString is
// always syntactically valid JSON text; Parsed is the value obtained by
// parsing it, except when WasAlreadyParsed is set, in which case Parsed is
// the structured input itself and CleanedString its pretty-printed form.
type Result struct {
	// CleanedString is the canonical textual form that was actually parsed.
	CleanedString string
	// Parsed is the decoded value: object, array, string, number, bool or null.
	Parsed any
	// Original is the input exactly as received, kept for diagnostics.
	Original any
	// WasAlreadyParsed is true iff the input was a structured value that
	// needed no text transform.
	WasAlreadyParsed bool
	// WasRepaired is true iff the repaired text differs from the input text
	// after trimming. Only repair paths set it.
	WasRepaired bool
}

// OriginalType names the shape of the input: "string", "array" or "object".
func (r *Result) OriginalType() string {
	switch r.Original.(type) {
	case string, []byte, json.RawMessage:
		return "string"
	case nil:
		return "null"
	}
	switch reflect.ValueOf(r.Original).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func prettyJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pretty.Pretty(b))), nil
}
