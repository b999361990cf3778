package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd
}

func TestRunOnceRawPatternsJSON(t *testing.T) {
	input := strings.NewReader("a{b,c}\n")
	opts := runOptions{rawPatterns: true, unroll: true, tree: true, json: true, format: "json"}

	docs, failures, err := processAll(input, opts)
	if err != nil {
		t.Fatalf("processAll() error: %v", err)
	}
	if failures != 0 {
		t.Fatalf("got %d failures, want 0", failures)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	if len(docs[0].Result) != 2 {
		t.Errorf("got %d results, want 2", len(docs[0].Result))
	}
}

func TestRunOncePlainTextFallback(t *testing.T) {
	var out bytes.Buffer
	cmd := newTestCmd(&out)

	input := "a{b,c}\n"
	exitCode, err := runOnceFromReader(cmd, strings.NewReader(input), runOptions{
		rawPatterns: true, unroll: true, tree: false, json: false, format: "json",
	})
	if err != nil {
		t.Fatalf("runOnceFromReader() error: %v", err)
	}
	if exitCode != ExitSuccess {
		t.Fatalf("exitCode = %d, want %d", exitCode, ExitSuccess)
	}

	got := out.String()
	if !strings.Contains(got, "ab") || !strings.Contains(got, "ac") {
		t.Errorf("plain text output = %q, want both expansions", got)
	}
}

func TestProcessAllReportsParseFailures(t *testing.T) {
	input := strings.NewReader("[unterminated\n")
	docs, failures, err := processAll(input, runOptions{rawPatterns: true, unroll: true, tree: true, json: true, format: "json"})
	if err != nil {
		t.Fatalf("processAll() error: %v", err)
	}
	if failures != 1 {
		t.Fatalf("failures = %d, want 1", failures)
	}
	if len(docs) != 1 || docs[0].Error == "" {
		t.Errorf("expected one failed document with an error message, got %+v", docs)
	}
}

func TestScannedAutocmdRules(t *testing.T) {
	script := "autocmd BufNewFile,BufRead *.go setfiletype go\n"
	docs, failures, err := processAll(strings.NewReader(script), runOptions{unroll: true, tree: true, json: true, format: "json"})
	if err != nil {
		t.Fatalf("processAll() error: %v", err)
	}
	if failures != 0 {
		t.Fatalf("got %d failures, want 0", failures)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	if docs[0].Pattern != "*.go" {
		t.Errorf("Pattern = %q, want %q", docs[0].Pattern, "*.go")
	}
	if docs[0].Cmd != "setfiletype go" {
		t.Errorf("Cmd = %q, want %q", docs[0].Cmd, "setfiletype go")
	}
}
