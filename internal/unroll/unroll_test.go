package unroll

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kodeshi/auparse/internal/lexer"
	"github.com/kodeshi/auparse/internal/pmerr"
	"github.com/kodeshi/auparse/internal/token"
)

func unrollString(t *testing.T, input string) []string {
	t.Helper()
	stream, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	expansions, err := Unroll(stream)
	if err != nil {
		t.Fatalf("Unroll(%q) failed: %v", input, err)
	}
	out := make([]string, len(expansions))
	for i, e := range expansions {
		out[i] = e.String(input)
	}
	return out
}

func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"single literal", "a", []string{"a"}},
		{"top-level list", "a,b,c", []string{"a", "b", "c"}},
		{"simple brace", "{a,b}", []string{"a", "b"}},
		{"brace with surrounding literals", "a{b,c}d", []string{"abd", "acd"}},
		{"two adjacent groups", "{a,b}{c,d}", []string{"ac", "ad", "bc", "bd"}},
		{"nested group cross product", "a{b,c}d{e,f{g,h}}i",
			[]string{"abdei", "abdfgi", "abdfhi", "acdei", "acdfgi", "acdfhi"}},
		{"leading empty branch", "{,a}", []string{"", "a"}},
		{"trailing root empty suppressed", "a,", []string{"a"}},
		{"both root empties suppressed", ",", []string{}},
	}

	for _, c := range cases {
		got := unrollString(t, c.input)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%s: Unroll(%q) mismatch (-want +got):\n%s", c.name, c.input, diff)
		}
	}
}

func TestTooDeepExceedsMaxDepth(t *testing.T) {
	input := "{{{{{{{{{{a}}}}}}}}}}"
	stream, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	_, err = Unroll(stream)
	if err == nil {
		t.Fatalf("Unroll(%q) succeeded, want TooDeep error", input)
	}
	pe, ok := err.(*pmerr.Error)
	if !ok || pe.Kind != pmerr.TooDeep {
		t.Errorf("Unroll(%q) error = %v, want TooDeep", input, err)
	}
}

// TestExpansionsContainNoStructuralTokens verifies invariant I5.
func TestExpansionsContainNoStructuralTokens(t *testing.T) {
	stream, err := lexer.Tokenize("a{b,c}d{e,f{g,h}}i")
	if err != nil {
		t.Fatal(err)
	}
	expansions, err := Unroll(stream)
	if err != nil {
		t.Fatal(err)
	}
	for _, exp := range expansions {
		for _, tok := range exp {
			if tok.Kind.Branching() {
				t.Errorf("expansion %v contains structural token %s", exp, tok.Kind)
			}
		}
	}
}

// TestAlternativeCountMatchesProduct verifies invariant I6 for a pure
// brace-product pattern.
func TestAlternativeCountMatchesProduct(t *testing.T) {
	got := unrollString(t, "{a,b}{c,d}{e,f,g}")
	want := 2 * 2 * 3
	if len(got) != want {
		t.Errorf("got %d expansions, want %d", len(got), want)
	}
}

// TestAlternativeCountAddsAtTopLevel verifies invariant I6 for top-level
// comma splits.
func TestAlternativeCountAddsAtTopLevel(t *testing.T) {
	got := unrollString(t, "a,{b,c},d")
	if len(got) != 4 {
		t.Errorf("got %d expansions, want 4: %v", len(got), got)
	}
}

func TestEmptyStreamRejected(t *testing.T) {
	_, err := Unroll(&token.Stream{Input: "", Tokens: nil})
	if err == nil {
		t.Fatal("Unroll of empty stream succeeded, want EmptyPattern error")
	}
}
