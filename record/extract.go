package record

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldErrorReason distinguishes a broken path from a merely absent value.
type FieldErrorReason string

const (
	// ReasonIntermediateMissing means a non-final path segment does not exist.
	ReasonIntermediateMissing FieldErrorReason = "intermediate_missing"
	// ReasonIntermediateNotObject means a non-final segment resolved to
	// something that cannot be descended into.
	ReasonIntermediateNotObject FieldErrorReason = "intermediate_not_object"
	// ReasonValueAbsent means the path resolved but the final value is missing.
	ReasonValueAbsent FieldErrorReason = "value_absent"
)

// FieldError reports why a dot-delimited path could not be resolved.
type FieldError struct {
	Path    string
	Segment string
	Reason  FieldErrorReason
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case ReasonIntermediateMissing:
		return fmt.Sprintf("field path %q: segment %q does not exist", e.Path, e.Segment)
	case ReasonIntermediateNotObject:
		return fmt.Sprintf("field path %q: segment %q is not inside an object", e.Path, e.Segment)
	default:
		return fmt.Sprintf("field path %q: value is absent", e.Path)
	}
}

// Extract resolves a dot-delimited path inside a JSON-encoded record,
// descending one segment at a time so a broken intermediate segment and an
// absent final value fail distinctly.
func Extract(rec []byte, path string) (gjson.Result, error) {
	if strings.TrimSpace(path) == "" {
		return gjson.Result{}, fmt.Errorf("field path is empty")
	}
	segments := strings.Split(path, ".")
	value := gjson.ParseBytes(rec)
	for i, seg := range segments {
		if !value.IsObject() {
			return gjson.Result{}, &FieldError{Path: path, Segment: seg, Reason: ReasonIntermediateNotObject}
		}
		value = value.Get(seg)
		if !value.Exists() {
			if i == len(segments)-1 {
				return gjson.Result{}, &FieldError{Path: path, Segment: seg, Reason: ReasonValueAbsent}
			}
			return gjson.Result{}, &FieldError{Path: path, Segment: seg, Reason: ReasonIntermediateMissing}
		}
	}
	return value, nil
}
