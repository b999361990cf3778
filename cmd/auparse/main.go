package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit code constants, matching the CLI convention this tool was adapted
// from: success, usage error, I/O error, parse error.
const (
	ExitSuccess    = 0
	ExitUsageError = 1
	ExitIOError    = 2
	ExitParseError = 3
)

func main() {
	var (
		rawPatterns bool
		unrollFlag  bool
		noTree      bool
		noJSON      bool
		format      string
		watch       bool
	)

	rootCmd := &cobra.Command{
		Use:           "auparse [file]",
		Short:         "Tokenize and unroll autocmd patterns",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}

			opts := runOptions{
				rawPatterns: rawPatterns,
				unroll:      unrollFlag,
				tree:        !noTree,
				json:        !noJSON,
				format:      format,
			}

			if watch {
				if file == "-" {
					return usageErrorf("--watch requires a file argument, not stdin")
				}
				return runWatch(cmd, file, opts)
			}

			exitCode, err := runOnce(cmd, file, opts)
			if err != nil {
				return exitError{code: exitCode, err: err}
			}
			if exitCode != ExitSuccess {
				cmd.SilenceUsage = true
				return exitError{code: exitCode, err: fmt.Errorf("auparse failed")}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&rawPatterns, "raw-patterns", "p", false, "parse one pattern per line, skip autocmd-line scanning")
	rootCmd.Flags().BoolVarP(&unrollFlag, "unroll", "u", false, "unroll brace alternations into the full expansion set")
	rootCmd.Flags().BoolVarP(&noTree, "no-tree", "t", false, "omit the nested-alternation tree from output")
	rootCmd.Flags().BoolVarP(&noJSON, "no-json", "d", false, "fall back to plain-text output instead of a structured document")
	rootCmd.Flags().StringVarP(&format, "format", "o", "json", "output encoding: json, cbor, or yaml")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-parse the file on every save")

	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if asExitError(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.err)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsageError)
	}
}

// exitError carries a specific process exit code alongside the error the
// cobra command returns, so the thin func main() above stays the single
// place os.Exit is called.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }

func asExitError(err error, target *exitError) bool {
	if ee, ok := err.(exitError); ok {
		*target = ee
		return true
	}
	return false
}

func usageErrorf(format string, args ...any) error {
	return exitError{code: ExitUsageError, err: fmt.Errorf(format, args...)}
}
