// Package lexer tokenizes the brace/regex hybrid pattern language into a
// flat, level-annotated token stream. The implementation follows the
// reference tokenizer's three passes — character dispatch with literal
// coalescing, empty-alternative insertion, and a second pass assigning
// nesting levels — but threads all scratch state through the call stack
// instead of file-scope arrays, so Tokenize is a pure function of its input.
package lexer

import (
	"github.com/kodeshi/auparse/internal/pmerr"
	"github.com/kodeshi/auparse/internal/token"
)

// Tokenize lexes a pattern into a well-formed token stream, or returns a
// *pmerr.Error describing the first offending byte. On failure no partial
// stream is returned.
func Tokenize(input string) (*token.Stream, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, pmerr.New(pmerr.EmptyPattern, 0, input, "pattern is empty")
	}
	if err := assignLevels(toks, input); err != nil {
		return nil, err
	}
	return &token.Stream{Input: input, Tokens: toks}, nil
}

// scan performs character dispatch, literal coalescing, and empty-alternative
// insertion in a single left-to-right pass. Levels are not yet assigned.
//
// Every non-literal token is preceded by a flush of whatever literal run is
// pending, so tokens are always appended in the order they end up in the
// stream — there is no swap-the-last-two-entries step.
func scan(input string) ([]token.Token, *pmerr.Error) {
	n := len(input)
	var toks []token.Token
	literalStart := -1

	flushLiteral := func(end int) {
		if literalStart == -1 {
			return
		}
		toks = append(toks, token.Token{Kind: token.Literal, Offset: literalStart, Length: end - literalStart})
		literalStart = -1
	}

	insertEmptyIfNeeded := func() {
		if len(toks) < 2 {
			return
		}
		t1 := toks[len(toks)-1].Kind
		t2 := toks[len(toks)-2].Kind
		leads := t2 == token.Push || t2 == token.Branch
		trails := t1 == token.Branch || t1 == token.Pop
		if leads && trails {
			last := toks[len(toks)-1]
			toks[len(toks)-1] = token.Token{Kind: token.Empty}
			toks = append(toks, last)
		}
	}

	i := 0
	for i < n {
		beg := i

		switch input[i] {
		case '{':
			flushLiteral(beg)
			toks = append(toks, token.Token{Kind: token.Push, Offset: i, Length: 1})
			i++
			insertEmptyIfNeeded()
		case '}':
			flushLiteral(beg)
			toks = append(toks, token.Token{Kind: token.Pop, Offset: i, Length: 1})
			i++
			insertEmptyIfNeeded()
		case ',':
			flushLiteral(beg)
			toks = append(toks, token.Token{Kind: token.Branch, Offset: i, Length: 1})
			i++
			insertEmptyIfNeeded()
		case '\\':
			tok, next, lit, err := scanEscape(input, i)
			if err != nil {
				return nil, err
			}
			if lit {
				if literalStart == -1 {
					literalStart = beg
				}
				i = next
				continue
			}
			flushLiteral(beg)
			toks = append(toks, tok)
			i = next
			insertEmptyIfNeeded()
		case '[':
			tok, next, err := scanSet(input, i)
			if err != nil {
				return nil, err
			}
			flushLiteral(beg)
			toks = append(toks, tok)
			i = next
			insertEmptyIfNeeded()
		case '*':
			flushLiteral(beg)
			toks = append(toks, token.Token{Kind: token.AnyChars, Offset: i, Length: 1})
			i++
			insertEmptyIfNeeded()
		case '?':
			flushLiteral(beg)
			toks = append(toks, token.Token{Kind: token.AnyChar, Offset: i, Length: 1})
			i++
			insertEmptyIfNeeded()
		default:
			if literalStart == -1 {
				literalStart = beg
			}
			i++
		}
	}

	flushLiteral(n)

	return toks, nil
}

// assignLevels walks the stream a second time, assigning each token its
// nesting level: Push carries the level of the group it opens, Pop the
// level of the group it closes, everything else the enclosing level.
func assignLevels(toks []token.Token, input string) *pmerr.Error {
	lvl := 0
	for i := range toks {
		switch toks[i].Kind {
		case token.Push:
			lvl++
			toks[i].Level = lvl
		case token.Pop:
			toks[i].Level = lvl
			lvl--
			if lvl < 0 {
				return pmerr.New(pmerr.UnmatchedGroupClose, toks[i].Offset, input, "unexpected group close")
			}
		default:
			toks[i].Level = lvl
		}
	}
	if lvl != 0 {
		return pmerr.New(pmerr.UnclosedGroup, len(input), input, "unclosed group")
	}
	return nil
}
