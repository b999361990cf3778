package cache

import (
	"testing"

	"github.com/kodeshi/auparse/internal/lexer"
	"github.com/kodeshi/auparse/internal/token"
	"github.com/kodeshi/auparse/internal/unroll"
)

func tokenizeAndUnroll(pattern string) (*token.Stream, []unroll.Expansion, error) {
	stream, err := lexer.Tokenize(pattern)
	if err != nil {
		return nil, nil, err
	}
	expansions, err := unroll.Unroll(stream)
	if err != nil {
		return nil, nil, err
	}
	return stream, expansions, nil
}

func TestResolveComputesOnceAndMemoizes(t *testing.T) {
	c := New()
	calls := 0
	fn := func(p string) (*token.Stream, []unroll.Expansion, error) {
		calls++
		return tokenizeAndUnroll(p)
	}

	first := c.Resolve("{a,b}", fn)
	second := c.Resolve("{a,b}", fn)

	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if len(first.Expansions) != 2 || len(second.Expansions) != 2 {
		t.Errorf("expected 2 expansions from both calls, got %d and %d", len(first.Expansions), len(second.Expansions))
	}
}

func TestResolveMemoizesErrorsToo(t *testing.T) {
	c := New()
	calls := 0
	fn := func(p string) (*token.Stream, []unroll.Expansion, error) {
		calls++
		return tokenizeAndUnroll(p)
	}

	r1 := c.Resolve("", fn)
	r2 := c.Resolve("", fn)

	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if r1.Err == nil || r2.Err == nil {
		t.Error("expected both resolves to carry the empty-pattern error")
	}
}

func TestDistinctPatternsGetDistinctEntries(t *testing.T) {
	c := New()
	c.Resolve("a", tokenizeAndUnroll)
	c.Resolve("b", tokenizeAndUnroll)
	c.Resolve("a", tokenizeAndUnroll)

	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestGetReportsMiss(t *testing.T) {
	c := New()
	if _, ok := c.Get("never put"); ok {
		t.Error("Get() reported a hit for a pattern never Put")
	}
}
