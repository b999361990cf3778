// Package unroll expands a tokenized pattern's brace alternations into the
// cross-product of alternative token sequences it represents. The recursive
// per-segment algorithm mirrors the reference implementation's unroll_rec,
// but threads its stack and result collector through a per-call context
// instead of file-scope scratch arrays.
package unroll

import (
	"github.com/kodeshi/auparse/internal/pmerr"
	"github.com/kodeshi/auparse/internal/token"
)

// maxDepth bounds the nesting depth unroll will recurse into.
const maxDepth = 8

// maxStack bounds the number of token references a single expansion may
// accumulate.
const maxStack = 256

// Expansion is one fully-unrolled alternative: an ordered sequence of
// non-structural tokens (no Push/Branch/Pop).
type Expansion []token.Token

// String renders the expansion by concatenating its tokens' slices of the
// original input.
func (e Expansion) String(input string) string {
	out := make([]byte, 0, len(e)*4)
	for _, t := range e {
		out = append(out, t.Text(input)...)
	}
	return string(out)
}

type context struct {
	input   string
	tokens  []token.Token
	stack   []token.Token
	results [][]token.Token
}

// Unroll expands stream into the ordered list of literal-token expansions
// it represents, in source order: left-to-right across top-level splits,
// left-to-right across each group's alternatives, with the cross-product
// ordered outer-to-inner (the outermost alternative varies slowest).
func Unroll(stream *token.Stream) ([]Expansion, error) {
	toks := stream.Tokens
	if len(toks) == 0 {
		return nil, pmerr.New(pmerr.EmptyPattern, 0, stream.Input, "pattern is empty")
	}

	ctx := &context{input: stream.Input, tokens: toks}

	beg := 0
	for i, t := range toks {
		if t.Level == 0 && t.Kind == token.Branch {
			ctx.stack = ctx.stack[:0]
			if err := unrollSegment(ctx, beg, 0); err != nil {
				return nil, err
			}
			beg = i + 1
		}
	}
	ctx.stack = ctx.stack[:0]
	if err := unrollSegment(ctx, beg, 0); err != nil {
		return nil, err
	}

	out := make([]Expansion, len(ctx.results))
	for i, r := range ctx.results {
		out[i] = Expansion(r)
	}
	return out, nil
}

// unrollSegment walks tokens starting at idx at nesting level lvl, pushing
// non-structural tokens onto ctx.stack and recursing into every alternative
// of each Push it meets along the way — with the full remaining suffix, not
// just the group's own contents, so each alternative's recursive call
// naturally continues across the group's closing Pop into whatever follows.
func unrollSegment(ctx *context, idx, lvl int) error {
	toks := ctx.tokens

	if idx >= len(toks) {
		return ctx.record(lvl)
	}
	if lvl > maxDepth {
		return pmerr.New(pmerr.TooDeep, toks[idx].Offset, ctx.input, "pattern too deeply nested")
	}

	left := false
	i := idx
	for i < len(toks) {
		t := toks[i]
		if t.Level < lvl {
			left = true
		}

		if !left && t.Level == lvl {
			if t.Kind == token.Branch {
				j := i
				for j < len(toks) && !(toks[j].Level == lvl && toks[j].Kind == token.Pop) {
					j++
				}
				i = j
				continue
			}
			if t.Kind == token.Pop {
				left = true
				i++
				continue
			}
		}

		if t.Kind == token.Push {
			groupLevel := t.Level
			saved := len(ctx.stack)
			if err := unrollSegment(ctx, i+1, groupLevel); err != nil {
				return err
			}
			ctx.stack = ctx.stack[:saved]

			for j := i + 1; j < len(toks); j++ {
				if toks[j].Level < groupLevel {
					break
				}
				if toks[j].Level == groupLevel {
					if toks[j].Kind == token.Pop {
						break
					}
					if toks[j].Kind == token.Branch {
						saved = len(ctx.stack)
						if err := unrollSegment(ctx, j+1, groupLevel); err != nil {
							return err
						}
						ctx.stack = ctx.stack[:saved]
					}
				}
			}
			return nil
		}

		if t.Kind == token.Branch {
			if t.Level <= lvl {
				break
			}
			i++
			continue
		}

		if t.Kind == token.Pop {
			if t.Level == lvl {
				break
			}
			i++
			continue
		}

		if len(ctx.stack) >= maxStack {
			return pmerr.New(pmerr.StackOverflow, t.Offset, ctx.input, "unroll stack overflow")
		}
		ctx.stack = append(ctx.stack, t)
		i++
	}

	return ctx.record(lvl)
}

// record appends the current stack contents as one expansion, except at
// root level where an alternative consisting only of Empty tokens (or no
// tokens at all) is suppressed.
func (ctx *context) record(lvl int) error {
	if lvl == 0 {
		allEmpty := true
		for _, t := range ctx.stack {
			if t.Kind != token.Empty {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			return nil
		}
	}
	exp := make([]token.Token, len(ctx.stack))
	copy(exp, ctx.stack)
	ctx.results = append(ctx.results, exp)
	return nil
}
