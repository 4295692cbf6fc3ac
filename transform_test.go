package jsonsanitize

import (
	"strings"
	"testing"
)

func TestNormalizeTextStages(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bom", "\uFEFF{\"a\":1}", `{"a":1}`},
		{"trim", "  \t{\"a\":1}\n ", `{"a":1}`},
		{"fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence no lang", "```\n[1,2]\n```", `[1,2]`},
		{"trailing comma", `{"a":1,}`, `{"a":1}`},
		{"trailing comma array", "[1,\n]", "[1\n]"},
		{"block comment", `{"a":/*x*/1}`, `{"a":1}`},
		{"line comment", "{\"a\":1 // c\n}", "{\"a\":1 \n}"},
		{"crlf", "{\"a\":1,\r\n\"b\":2}", "{\"a\":1,\n\"b\":2}"},
		{"double encoded", `"{\"a\":1}"`, `{"a":1}`},
	}
	for _, tc := range cases {
		if got := normalizeText(tc.input); got != tc.want {
			t.Fatalf("%s: normalizeText(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestUnwrapDoubleEncodedLeavesNonStrings(t *testing.T) {
	for _, input := range []string{`{"a":1}`, `"unterminated`, `"text" trailing`} {
		if got := unwrapDoubleEncoded(input); got != input {
			t.Fatalf("unwrapDoubleEncoded(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestLineCommentIndex(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{`{"a":1} // tail`, 8},
		{`// whole line`, 0},
		{`"http://example.com"`, -1},
		{`"http://x", // real comment`, 12},
		{`no comment here`, -1},
	}
	for _, tc := range cases {
		if got := lineCommentIndex(tc.line); got != tc.want {
			t.Fatalf("lineCommentIndex(%q) = %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestEscapeControlChars(t *testing.T) {
	got, changed := escapeControlChars("{\"a\": \"x\ny\"}")
	if !changed {
		t.Fatalf("expected a change")
	}
	if got != `{"a": "x\ny"}` {
		t.Fatalf("unexpected output: %q", got)
	}

	clean := `{"a": "x"}` + "\n"
	got, changed = escapeControlChars(clean)
	if changed || got != clean {
		t.Fatalf("control chars outside strings must stay: %q changed=%v", got, changed)
	}
}

func TestEscapeControlCharsKeepsExistingEscapes(t *testing.T) {
	input := `{"a": "x\ny"}`
	got, changed := escapeControlChars(input)
	if changed || got != input {
		t.Fatalf("already-escaped input must stay: %q changed=%v", got, changed)
	}
}

func TestStripFencesRequiresLeadingFence(t *testing.T) {
	input := "text before ```json\n{}\n```"
	if got := stripFences(input); got != input {
		t.Fatalf("mid-text fences must stay: %q", got)
	}
}

func TestNormalizeTextIsStable(t *testing.T) {
	input := "```json\n{\"a\": 1, // c\n\"b\": 2,}\n```"
	once := normalizeText(input)
	if twice := normalizeText(once); twice != once {
		t.Fatalf("normalizeText is not stable: %q vs %q", once, twice)
	}
	if !strings.Contains(once, `"b": 2`) {
		t.Fatalf("unexpected normalization: %q", once)
	}
}
