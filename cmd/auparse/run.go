package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodeshi/auparse/internal/cache"
	"github.com/kodeshi/auparse/internal/lexer"
	"github.com/kodeshi/auparse/internal/render"
	"github.com/kodeshi/auparse/internal/scanner"
	"github.com/kodeshi/auparse/internal/token"
	"github.com/kodeshi/auparse/internal/unroll"
)

type runOptions struct {
	rawPatterns bool
	unroll      bool
	tree        bool
	json        bool
	format      string
}

var encoders = map[string]func(render.Document) ([]byte, error){
	"json": render.JSON,
	"cbor": render.CBOR,
	"yaml": render.YAML,
}

// runOnce opens file (or stdin for "-"), processes every pattern it finds,
// and writes the rendered result to cmd's OutOrStdout. It returns a process
// exit code rather than calling os.Exit itself.
func runOnce(cmd *cobra.Command, file string, opts runOptions) (int, error) {
	r, closeFn, err := openInput(file)
	if err != nil {
		return ExitIOError, err
	}
	defer closeFn()

	return runOnceFromReader(cmd, r, opts)
}

// runOnceFromReader is runOnce's input-agnostic core, split out so tests can
// drive it without touching the filesystem or stdin.
func runOnceFromReader(cmd *cobra.Command, r io.Reader, opts runOptions) (int, error) {
	encode, ok := encoders[opts.format]
	if !ok {
		return ExitUsageError, fmt.Errorf("unknown output format %q (want json, cbor, or yaml)", opts.format)
	}

	docs, parseFailures, err := processAll(r, opts)
	if err != nil {
		return ExitIOError, err
	}

	out := cmd.OutOrStdout()
	if !opts.json {
		writePlainText(out, docs)
	} else {
		for _, doc := range docs {
			encoded, err := encode(doc)
			if err != nil {
				return ExitIOError, fmt.Errorf("encoding output: %w", err)
			}
			out.Write(encoded)
			fmt.Fprintln(out)
		}
	}

	if parseFailures > 0 {
		return ExitParseError, nil
	}
	return ExitSuccess, nil
}

// processAll turns r's contents into rendered documents, either one per
// raw-pattern line or one per scanned autocmd rule, sharing a single cache
// across the whole run.
func processAll(r io.Reader, opts runOptions) ([]render.Document, int, error) {
	c := cache.New()
	var docs []render.Document
	failures := 0

	process := func(pattern string, line int, cmdText string) {
		res := c.Resolve(pattern, func(p string) (*token.Stream, []unroll.Expansion, error) {
			return tokenizeAndUnroll(p, opts.unroll)
		})
		if res.Err != nil {
			failures++
			doc := render.Failed(pattern, res.Err)
			doc.Line = line
			doc.Cmd = cmdText
			docs = append(docs, doc)
			return
		}
		doc := render.Build(res.Stream, res.Expansions, opts.tree, opts.unroll)
		doc.Line = line
		doc.Cmd = cmdText
		docs = append(docs, doc)
	}

	if opts.rawPatterns {
		sc := bufio.NewScanner(r)
		lnum := 0
		for sc.Scan() {
			lnum++
			line := sc.Text()
			if line == "" {
				continue
			}
			process(line, lnum, "")
		}
		if err := sc.Err(); err != nil {
			return nil, 0, err
		}
		return docs, failures, nil
	}

	rules, err := scanner.Rules(r)
	if err != nil {
		return nil, 0, err
	}
	for _, rule := range rules {
		process(rule.Pattern, rule.Line, rule.Cmd)
	}
	return docs, failures, nil
}

// tokenizeAndUnroll adapts the core engine's two calls to the signature
// cache.Cache.Resolve expects.
func tokenizeAndUnroll(pattern string, doUnroll bool) (*token.Stream, []unroll.Expansion, error) {
	stream, err := lexer.Tokenize(pattern)
	if err != nil {
		return nil, nil, err
	}
	var expansions []unroll.Expansion
	if doUnroll {
		expansions, err = unroll.Unroll(stream)
		if err != nil {
			return nil, nil, err
		}
	}
	return stream, expansions, nil
}

func openInput(file string) (io.Reader, func() error, error) {
	if file == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", file, err)
	}
	return f, f.Close, nil
}

func writePlainText(w io.Writer, docs []render.Document) {
	for _, doc := range docs {
		fmt.Fprintln(w, doc.Pattern)
		if doc.Error != "" {
			fmt.Fprintf(w, "error: %s\n", doc.Error)
			continue
		}
		for _, exp := range doc.Result {
			fmt.Fprintf(w, "    %s\n", exp.Pattern)
		}
	}
}
