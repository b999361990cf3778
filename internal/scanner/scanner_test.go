package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRulesExtractsMatchingAutocmds(t *testing.T) {
	script := strings.Join([]string{
		`" a comment line, not a rule`,
		`au BufNewFile,BufRead *.go setfiletype go`,
		`autocmd BufRead *.txt setfiletype text`,
		`autocmd! BufNewFile,BufReadPost *.{yml,yaml} setfiletype yaml`,
	}, "\n")

	rules, err := Rules(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}

	want := []Rule{
		{Line: 2, Events: "BufNewFile,BufRead", Pattern: "*.go", Cmd: "setfiletype go"},
		{Line: 4, Events: "BufNewFile,BufReadPost", Pattern: "*.{yml,yaml}", Cmd: "setfiletype yaml"},
	}

	if diff := cmp.Diff(want, rules); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesJoinsContinuationLines(t *testing.T) {
	script := "autocmd BufNewFile,BufRead \\\n  *.md setfiletype markdown\n"

	rules, err := Rules(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1: %v", len(rules), rules)
	}
	if rules[0].Pattern != "*.md" {
		t.Errorf("Pattern = %q, want %q", rules[0].Pattern, "*.md")
	}
	if rules[0].Cmd != "setfiletype markdown" {
		t.Errorf("Cmd = %q, want %q", rules[0].Cmd, "setfiletype markdown")
	}
}

func TestRulesSkipsNonAutocmdLines(t *testing.T) {
	script := "set number\nlet g:foo = 1\n"
	rules, err := Rules(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Rules() error: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}
