package jsonsanitize

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of the pipeline rejected the input.
type Kind string

const (
	// KindInvalidInput means the input was nil or an empty string.
	KindInvalidInput Kind = "invalid_input"
	// KindUnsupportedType means the input was a primitive that is neither
	// text nor a structured value (number, bool, ...).
	KindUnsupportedType Kind = "unsupported_type"
	// KindTypeMismatch means Repair was invoked on non-text input.
	KindTypeMismatch Kind = "type_mismatch"
	// KindParse means every normalizer fallback was exhausted.
	KindParse Kind = "parse"
	// KindRepair means both repair strategies and the normalizer fallback failed.
	KindRepair Kind = "repair"
)

// Error is the single error type returned by Sanitize and Repair.
type Error struct {
	Kind    Kind
	Message string
	// Preview holds a bounded excerpt of the text that was attempted.
	// Set on parse failures only.
	Preview string
}

func (e *Error) Error() string {
	if e.Preview != "" {
		return fmt.Sprintf("%s (attempted: %q)", e.Message, e.Preview)
	}
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

const previewLimit = 200

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
