package jsonsanitize

import (
	"reflect"
	"testing"
)

func TestFindSnippets(t *testing.T) {
	text := `prefix {"a": 1} middle [1, 2] suffix`
	got := FindSnippets(text)
	want := []string{`{"a": 1}`, `[1, 2]`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindSnippets = %#v, want %#v", got, want)
	}
}

func TestFindSnippetsSkipsUnbalanced(t *testing.T) {
	if got := FindSnippets(`{"a": 1`); got != nil {
		t.Fatalf("expected no snippets, got %#v", got)
	}
	if got := FindSnippets(`{"a": [1}`); got != nil {
		t.Fatalf("mismatched brackets must not match, got %#v", got)
	}
}

func TestFindSnippetsIgnoresBracketsInStrings(t *testing.T) {
	got := FindSnippets(`{"a": "}{"}`)
	if len(got) != 1 || got[0] != `{"a": "}{"}` {
		t.Fatalf("unexpected snippets: %#v", got)
	}
}

func TestCandidatesIncludesFencedBlocks(t *testing.T) {
	text := "Sure, here you go:\n```json\n{\"a\": 1}\n```"
	got := Candidates(text)
	found := false
	for _, c := range got {
		if c == `{"a": 1}` {
			found = true
		}
	}
	if !found {
		t.Fatalf("fenced block missing from candidates: %#v", got)
	}
}

func TestSanitizeAnyPrefersStructured(t *testing.T) {
	res, err := SanitizeAny(`The result is {"a": 1}, have a nice day.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := res.Parsed.(map[string]any)
	if !ok || obj["a"] != float64(1) {
		t.Fatalf("expected the embedded object, got %#v", res.Parsed)
	}
	if res.Original != `The result is {"a": 1}, have a nice day.` {
		t.Fatalf("original must be the full text, got %#v", res.Original)
	}
}

func TestSanitizeAnyFallsBackToString(t *testing.T) {
	res, err := SanitizeAny("just some words")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Parsed != "just some words" {
		t.Fatalf("expected wrapped string, got %#v", res.Parsed)
	}
}

func TestSanitizeAnyEmpty(t *testing.T) {
	_, err := SanitizeAny("   ")
	if !IsKind(err, KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUnquoteStrict(t *testing.T) {
	if got := unquoteStrict(`"{\"a\":1}"`); got != `{"a":1}` {
		t.Fatalf("unquoteStrict = %q", got)
	}
	if got := unquoteStrict(`{"a":1}`); got != "" {
		t.Fatalf("non-string input must yield empty, got %q", got)
	}
}
