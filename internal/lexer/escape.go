package lexer

import (
	"fmt"
	"strings"

	"github.com/kodeshi/auparse/internal/pmerr"
	"github.com/kodeshi/auparse/internal/token"
)

// classSuggestions lists the accepted single-letter forms for the
// "did you mean" hint attached to UnknownClass/UnknownEscape errors.
var classSuggestions = strings.Split(characterClasses, "")

// scanEscape consumes a backslash escape starting at input[i] (input[i] == '\\')
// and returns the resulting token (kind zero-valued when literal is true),
// the index just past the escape, whether the escape denotes a two-character
// literal run (\, \? \{ \}), and an error.
func scanEscape(input string, i int) (token.Token, int, bool, *pmerr.Error) {
	beg := i
	n := len(input)
	i++
	if i >= n {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnexpectedEnd, beg, input, "unexpected end after '\\'")
	}

	c := input[i]
	switch {
	case c == '(':
		return token.Token{Kind: token.Push, Offset: beg, Length: 2}, i + 1, false, nil
	case c == ')':
		return token.Token{Kind: token.Pop, Offset: beg, Length: 2}, i + 1, false, nil
	case c == '|':
		return token.Token{Kind: token.Branch, Offset: beg, Length: 2}, i + 1, false, nil
	case strings.IndexByte(",?{}", c) >= 0:
		return token.Token{}, i + 1, true, nil
	case c == '*':
		return token.Token{Kind: token.ZeroOrMore, Offset: beg, Length: 2}, i + 1, false, nil
	case c == '+':
		return token.Token{Kind: token.OneOrMore, Offset: beg, Length: 2}, i + 1, false, nil
	case c == '=':
		return token.Token{Kind: token.ZeroOrOne, Offset: beg, Length: 2}, i + 1, false, nil
	case isClassLetter(c):
		return token.Token{Kind: token.Cls, Offset: beg, Length: 2}, i + 1, false, nil
	case c == '_':
		i++
		if i >= n {
			return token.Token{}, 0, false, pmerr.New(pmerr.UnexpectedEnd, beg, input, "unexpected end after '_'")
		}
		if isClassLetter(input[i]) {
			return token.Token{Kind: token.Cls, Offset: beg, Length: 3}, i + 1, false, nil
		}
		err := pmerr.New(pmerr.UnknownClass, beg, input, fmt.Sprintf("unknown character class '_%c'", input[i]))
		return token.Token{}, 0, false, err.WithSuggestions(pmerr.Suggest(string(input[i]), classSuggestions, 3))
	case c == '\\':
		return scanCount(input, beg, i)
	case isOptFlag(c):
		return token.Token{Kind: token.Opts, Offset: beg, Length: 2}, i + 1, false, nil
	default:
		err := pmerr.New(pmerr.UnknownEscape, beg, input, fmt.Sprintf("unknown escape sequence '\\%c'", c))
		return token.Token{}, 0, false, err.WithSuggestions(pmerr.Suggest(string(c), classSuggestions, 3))
	}
}

// scanCount consumes the \{ [-]? digit* (, digit*)? \} count atom once the
// two backslashes that introduce it (input[beg] and input[i]) have been
// confirmed. i is the index of the second backslash.
func scanCount(input string, beg, i int) (token.Token, int, bool, *pmerr.Error) {
	n := len(input)
	i++ // consume second backslash
	if i >= n {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnexpectedEnd, beg, input, "unexpected end after '\\'")
	}
	if input[i] != '\\' {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnknownEscape, beg, input, "unknown escape sequence")
	}
	i++ // consume third backslash
	if i >= n {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnexpectedEnd, beg, input, "unexpected end after '\\'")
	}
	if input[i] != '{' {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnknownEscape, beg, input, "unknown escape sequence")
	}

	i++ // consume '{'
	if i >= n {
		return token.Token{}, 0, false, pmerr.New(pmerr.UnexpectedEnd, beg, input, "unexpected end after '{'")
	}
	if input[i] == '-' {
		i++
	}
	for i < n && isDigit(input[i]) {
		i++
	}
	if i < n && input[i] == ',' {
		i++
	}
	for i < n && isDigit(input[i]) {
		i++
	}
	if i >= n || input[i] != '\\' {
		return token.Token{}, 0, false, pmerr.New(pmerr.InvalidCount, beg, input, "invalid count atom")
	}
	i++
	if i >= n || input[i] != '}' {
		return token.Token{}, 0, false, pmerr.New(pmerr.InvalidCount, beg, input, "invalid count atom")
	}
	i++

	return token.Token{Kind: token.Count, Offset: beg, Length: i - beg}, i, false, nil
}

// scanSet consumes a bracketed character set starting at input[i] (input[i] == '[').
// A single level of nesting is permitted: one inner '[' and its matching ']'
// are tolerated without closing the outer set.
func scanSet(input string, i int) (token.Token, int, *pmerr.Error) {
	beg := i
	n := len(input)
	i++
	if i >= n {
		return token.Token{}, 0, pmerr.New(pmerr.UnclosedSet, beg, input, "unclosed '['")
	}
	if input[i] == '^' {
		i++
	}

	nested := false
	for {
		if i >= n {
			return token.Token{}, 0, pmerr.New(pmerr.UnclosedSet, beg, input, "unclosed '['")
		}
		c := input[i]
		switch {
		case c == '[':
			if nested {
				return token.Token{}, 0, pmerr.New(pmerr.UnsupportedSetChar, i, input, "unexpected '[' inside character set")
			}
			nested = true
		case c == ']':
			if nested {
				nested = false
			} else {
				i++
				return token.Token{Kind: token.Set, Offset: beg, Length: i - beg}, i, nil
			}
		case !isSetChar(c):
			return token.Token{}, 0, pmerr.New(pmerr.UnsupportedSetChar, i, input, fmt.Sprintf("character %q not supported in character set", c))
		}
		i++
	}
}
