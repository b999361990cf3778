package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// runWatch re-runs runOnce every time file is written, so a maintainer can
// iterate on a filetype-detection script and see results on save. It never
// returns on its own; Ctrl+C exits it.
func runWatch(cmd *cobra.Command, file string, opts runOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("watching %s: %w", file, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, press Ctrl+C to stop\n", file)

	if exitCode, err := runOnce(cmd, file, opts); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	} else if exitCode != ExitSuccess {
		fmt.Fprintf(cmd.ErrOrStderr(), "parse failures (exit %d)\n", exitCode)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "\n--- %s changed ---\n", file)
			exitCode, err := runOnce(cmd, file, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			if exitCode != ExitSuccess {
				fmt.Fprintf(cmd.ErrOrStderr(), "parse failures (exit %d)\n", exitCode)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}
