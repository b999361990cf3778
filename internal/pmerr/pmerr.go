// Package pmerr defines the single error kind shared by the tokenizer and
// the unroller, returned by value rather than through package-level state.
package pmerr

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind is the fixed enum of message categories both components can report.
type Kind int

const (
	UnexpectedEnd Kind = iota
	UnknownEscape
	UnknownClass
	InvalidCount
	UnclosedSet
	UnsupportedSetChar
	UnmatchedGroupClose
	UnclosedGroup
	EmptyPattern
	TooDeep
	StackOverflow
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEnd:
		return "unexpected end"
	case UnknownEscape:
		return "unknown escape"
	case UnknownClass:
		return "unknown class"
	case InvalidCount:
		return "invalid count"
	case UnclosedSet:
		return "unclosed set"
	case UnsupportedSetChar:
		return "unsupported set character"
	case UnmatchedGroupClose:
		return "unmatched group close"
	case UnclosedGroup:
		return "unclosed group"
	case EmptyPattern:
		return "empty pattern"
	case TooDeep:
		return "too deep"
	case StackOverflow:
		return "stack overflow"
	default:
		return "error"
	}
}

// Error is the pattern engine's single error type: a category, a message,
// the byte offset of the earliest offending character, the original input
// (for a caret snippet), and optional "did you mean" suggestions.
type Error struct {
	Kind        Kind
	Message     string
	Offset      int
	Input       string
	Suggestions []string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.Input != "" {
		b.WriteString("\n")
		b.WriteString(e.snippet())
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "\n  did you mean: %s?", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// snippet renders a single-line caret pointer at Offset, Rust/Clang style.
func (e *Error) snippet() string {
	if e.Offset < 0 || e.Offset > len(e.Input) {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  --> offset %d\n", e.Offset)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "   | %s\n", e.Input)
	b.WriteString("   | ")
	b.WriteString(strings.Repeat(" ", e.Offset))
	b.WriteString("^")
	return b.String()
}

// New builds an Error, attaching offset and input for the snippet.
func New(kind Kind, offset int, input, message string) *Error {
	return &Error{Kind: kind, Message: message, Offset: offset, Input: input}
}

// Suggest returns the closest candidates to got (by fuzzy rank), capped at
// n, for use in UnknownEscape/UnknownClass errors.
func Suggest(got string, candidates []string, n int) []string {
	ranks := fuzzy.RankFindFold(got, candidates)
	if len(ranks) == 0 {
		return nil
	}
	sortRanksByDistance(ranks)
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

func sortRanksByDistance(ranks fuzzy.Ranks) {
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j].Distance < ranks[j-1].Distance; j-- {
			ranks[j], ranks[j-1] = ranks[j-1], ranks[j]
		}
	}
}

// WithSuggestions attaches suggestions to an error and returns it, for
// chaining at the call site.
func (e *Error) WithSuggestions(s []string) *Error {
	e.Suggestions = s
	return e
}
