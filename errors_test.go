package jsonsanitize

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessageIncludesPreview(t *testing.T) {
	err := newError(KindParse, "boom")
	err.Preview = `{"a":`
	msg := err.Error()
	if !strings.Contains(msg, "boom") || !strings.Contains(msg, `{\"a\":`) {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := newError(KindTypeMismatch, "nope")
	wrapped := fmt.Errorf("record 3: %w", inner)
	if !IsKind(wrapped, KindTypeMismatch) {
		t.Fatalf("expected kind to survive wrapping")
	}
	if IsKind(wrapped, KindParse) {
		t.Fatalf("kind must not match a different kind")
	}
}

func TestPreviewBounds(t *testing.T) {
	short := "abc"
	if preview(short) != short {
		t.Fatalf("short text must pass through")
	}
	long := strings.Repeat("x", previewLimit+50)
	got := preview(long)
	if len([]rune(got)) != previewLimit+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected preview: %d chars", len([]rune(got)))
	}
}
