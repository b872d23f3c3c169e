package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/notesmith/cc2md/internal/config"
	"github.com/notesmith/cc2md/internal/ledger"
	"github.com/notesmith/cc2md/internal/transcript"
)

// settleDelay is how long a file must stay quiet before conversion; the CLI
// writes exports incrementally and we want the final byte.
const settleDelay = 500 * time.Millisecond

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the exports directory and convert new transcripts as they appear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir, err := cfg.ResolveExportDir()
			if err != nil {
				return err
			}

			led, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer led.Close()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", dir)

			pending := make(map[string]time.Time)
			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(os.Stderr, "\nStopped")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Ext(event.Name) != ".txt" {
						continue
					}
					if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
						continue
					}
					pending[event.Name] = time.Now()

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "watch error: %v\n", err)

				case <-ticker.C:
					for path, seen := range pending {
						if time.Since(seen) < settleDelay {
							continue
						}
						delete(pending, path)
						watchConvert(cfg, led, path)
					}
				}
			}
		},
	}
}

// watchConvert converts one settled file, logging instead of aborting the
// watch loop. Exports with no conversation yet (still-running sessions) and
// unchanged files are skipped quietly.
func watchConvert(cfg *config.Config, led *ledger.Ledger, path string) {
	res, err := convertFile(cfg, led, path, convertOptions{})
	switch {
	case errors.Is(err, transcript.ErrNoTurns):
		fmt.Fprintf(os.Stderr, "skip %s: no conversation yet\n", filepath.Base(path))
	case err != nil:
		fmt.Fprintf(os.Stderr, "convert %s: %v\n", filepath.Base(path), err)
	case res.skipped:
		// unchanged since last conversion
	default:
		fmt.Fprintf(os.Stderr, "Converted %s -> %s\n", filepath.Base(path), res.notePath)
	}
}
