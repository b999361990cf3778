// Package render turns a tokenized-and-unrolled pattern into the output
// shapes the CLI emits: a JSON document mirroring the reference tool's
// render_json, a nested Tree view reconstructed from token levels, and CBOR
// and YAML encodings of the same document for the formats main.c never had.
package render

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/kodeshi/auparse/internal/pmerr"
	"github.com/kodeshi/auparse/internal/token"
	"github.com/kodeshi/auparse/internal/unroll"
)

// TokenView is one token rendered for output: its kind name and literal text.
type TokenView struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// ExpansionView is one unrolled alternative, reconstructed as both its flat
// string form and its token-by-token breakdown.
type ExpansionView struct {
	Pattern string      `json:"pattern" yaml:"pattern"`
	Tokens  []TokenView `json:"tokens" yaml:"tokens"`
}

// Node is one level of the nested-alternation tree: the leaf tokens at this
// level, plus the child groups opened by each Push, in source order. The two
// lists are kept apart; where each group sat among the leaf tokens is not
// recorded.
type Node struct {
	Tokens []TokenView `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Groups [][]Node    `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Document is the full rendering of one pattern: its tokenize+unroll result,
// or the error that stopped it.
type Document struct {
	Pattern string          `json:"pattern" yaml:"pattern"`
	Line    int             `json:"line,omitempty" yaml:"line,omitempty"`
	Cmd     string          `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Tree    []Node          `json:"tree,omitempty" yaml:"tree,omitempty"`
	Result  []ExpansionView `json:"result,omitempty" yaml:"result,omitempty"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Build renders a complete Document from a token stream and its unroll
// result. Pass includeTree=false to omit the nested-alternation view and
// includeResult=false to omit the flattened expansions, matching the CLI's
// -t/-u flags.
func Build(stream *token.Stream, expansions []unroll.Expansion, includeTree, includeResult bool) Document {
	doc := Document{Pattern: stream.Input}

	if includeTree {
		doc.Tree = buildTree(stream.Tokens, stream.Input)
	}
	if includeResult {
		doc.Result = make([]ExpansionView, len(expansions))
		for i, exp := range expansions {
			doc.Result[i] = buildExpansion(exp, stream.Input)
		}
	}
	return doc
}

// Failed builds a Document carrying only the pattern and its error message,
// for a tokenize/unroll failure.
func Failed(pattern string, err error) Document {
	return Document{Pattern: pattern, Error: err.Error()}
}

func buildExpansion(exp unroll.Expansion, input string) ExpansionView {
	views := make([]TokenView, len(exp))
	for i, t := range exp {
		views[i] = TokenView{Type: t.Kind.String(), Value: t.Text(input)}
	}
	return ExpansionView{Pattern: exp.String(input), Tokens: views}
}

// buildTree re-groups the flat, level-annotated token stream into nested
// Push/Pop groups. It walks tokens at the current level, collecting leaves
// into Tokens and recursing into each Push's children as a sibling group of
// Nodes (one Node per Branch-separated alternative).
func buildTree(toks []token.Token, input string) []Node {
	nodes, _ := treeLevel(toks, input, 0, 0)
	return nodes
}

func treeLevel(toks []token.Token, input string, idx, lvl int) ([]Node, int) {
	var nodes []Node
	cur := Node{}

	flush := func() {
		if len(cur.Tokens) > 0 || len(cur.Groups) > 0 {
			nodes = append(nodes, cur)
			cur = Node{}
		}
	}

	i := idx
loop:
	for i < len(toks) {
		t := toks[i]
		if t.Level < lvl {
			break
		}
		switch {
		case t.Kind == token.Push && t.Level == lvl+1:
			var group []Node
			var child []Node
			j := i + 1
			child, j = treeLevel(toks, input, j, lvl+1)
			group = append(group, child...)
			for j < len(toks) && toks[j].Level == lvl+1 && toks[j].Kind == token.Branch {
				child, j = treeLevel(toks, input, j+1, lvl+1)
				group = append(group, child...)
			}
			if j < len(toks) && toks[j].Level == lvl+1 && toks[j].Kind == token.Pop {
				j++
			}
			cur.Groups = append(cur.Groups, group)
			i = j
		case (t.Kind == token.Branch || t.Kind == token.Pop) && t.Level == lvl:
			// End of this alternative's content: stop without consuming the
			// token, so the caller (which owns this level) can see it.
			break loop
		case t.Level == lvl && !t.Kind.Branching():
			cur.Tokens = append(cur.Tokens, TokenView{Type: t.Kind.String(), Value: t.Text(input)})
			i++
		default:
			i++
		}
	}
	flush()
	return nodes, i
}

// FromError adapts a *pmerr.Error into a Document's error message, used by
// callers that want the full caret-snippet text rather than a bare message.
func FromError(pattern string, err *pmerr.Error) Document {
	return Document{Pattern: pattern, Error: err.Error()}
}

// JSON, CBOR, and YAML expose the three output encodings the CLI selects
// between with -o/--format. Each is a thin struct-tag-driven marshal; the
// struct tags above carry the per-format field names so all three render
// from the same Document value.
func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func CBOR(doc Document) ([]byte, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(doc)
}

func YAML(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
