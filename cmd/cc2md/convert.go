package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/notesmith/cc2md/internal/config"
	"github.com/notesmith/cc2md/internal/ledger"
	"github.com/notesmith/cc2md/internal/open"
	"github.com/notesmith/cc2md/internal/render"
	"github.com/notesmith/cc2md/internal/scan"
	"github.com/notesmith/cc2md/internal/transcript"
	"github.com/notesmith/cc2md/internal/tui"
	"github.com/notesmith/cc2md/internal/vault"
)

func convertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a transcript export into a Markdown note",
		Long: `Reads a Claude Code /export capture, strips the terminal noise, and writes
a Markdown note with YAML front matter into the vault.

With no file argument the exports directory is scanned: a single candidate
is converted directly, multiple candidates open the interactive picker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			led, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer led.Close()

			src, err := resolveSource(cfg, led, args)
			if err != nil {
				return err
			}
			if src == "" {
				return nil // picker cancelled
			}

			if opts.title == "" && stdinIsTerminal() {
				opts.title = promptTitle()
			}

			fmt.Fprintf(os.Stderr, "Reading %s\n", filepath.Base(src))
			res, err := convertFile(cfg, led, src, opts)
			if err != nil {
				return err
			}
			if res.skipped {
				fmt.Fprintf(os.Stderr, "Unchanged since last conversion, skipping (use --force to redo)\n")
				return nil
			}

			fmt.Fprintf(os.Stderr, "Parsed %d turns\n", res.turns)
			fmt.Fprintf(os.Stderr, "Saved %s\n", res.notePath)

			if opts.openAfter {
				return open.Note(cfg.Editor, res.notePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Note title (default: prompt, then \"Claude Conversation - <date>\")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path (default: <vault>/<date>-<slug>.md)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Convert even when the export is unchanged")
	cmd.Flags().BoolVar(&opts.copyNote, "copy", false, "Also copy the Markdown to the clipboard")
	cmd.Flags().BoolVar(&opts.openAfter, "open", false, "Open the note in the editor afterwards")

	return cmd
}

type convertOptions struct {
	title     string
	output    string
	force     bool
	copyNote  bool
	openAfter bool
}

type convertResult struct {
	notePath string
	turns    int
	skipped  bool
}

// convertFile runs the whole pipeline for one export: read, parse, render,
// write, record. skipped is set when the ledger shows the export unchanged
// since its last conversion and force is off.
func convertFile(cfg *config.Config, led *ledger.Ledger, src string, opts convertOptions) (convertResult, error) {
	var res convertResult

	info, err := os.Stat(src)
	if err != nil {
		return res, fmt.Errorf("stat export: %w", err)
	}

	if !opts.force {
		upToDate, err := led.UpToDate(src, info.ModTime().Unix(), info.Size())
		if err != nil {
			return res, err
		}
		if upToDate {
			res.skipped = true
			return res, nil
		}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return res, fmt.Errorf("read export: %w", err)
	}

	turns := transcript.Parse(string(data))
	if len(turns) == 0 {
		return res, fmt.Errorf("%s: %w", filepath.Base(src), transcript.ErrNoTurns)
	}
	res.turns = len(turns)

	now := time.Now()
	title := opts.title
	if title == "" {
		title = vault.DefaultTitle(now)
	}

	markdown := render.Markdown(title, now, turns)

	res.notePath = opts.output
	if res.notePath == "" {
		res.notePath = vault.NotePath(cfg.VaultDir, title, now)
	}
	if err := vault.Write(res.notePath, markdown); err != nil {
		return res, err
	}

	if err := led.Record(ledger.Entry{
		SourcePath:  src,
		SourceMtime: info.ModTime().Unix(),
		SourceSize:  info.Size(),
		NotePath:    res.notePath,
		Title:       title,
		ConvertedAt: now,
	}); err != nil {
		return res, err
	}

	if opts.copyNote {
		if err := clipboard.WriteAll(markdown); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard unavailable: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied note to clipboard")
		}
	}

	return res, nil
}

// resolveSource picks the export to convert: the explicit argument, the
// single discovered candidate, or whatever the user chooses in the picker.
// An empty path with nil error means the picker was cancelled.
func resolveSource(cfg *config.Config, led *ledger.Ledger, args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}

	dir, err := cfg.ResolveExportDir()
	if err != nil {
		return "", err
	}

	exports, err := scan.Discover(dir)
	if err != nil {
		return "", err
	}

	switch len(exports) {
	case 0:
		return "", fmt.Errorf("no transcript exports found in %s", dir)
	case 1:
		fmt.Fprintf(os.Stderr, "Found: %s\n", filepath.Base(exports[0].Path))
		return exports[0].Path, nil
	}

	if !stdinIsTerminal() {
		return "", fmt.Errorf("%d exports found in %s; pass a file path", len(exports), dir)
	}

	item, err := tui.Pick(pickerItems(led, exports))
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", nil
	}
	return item.Export.Path, nil
}

// pickerItems decorates discovered exports with their ledger status.
func pickerItems(led *ledger.Ledger, exports []scan.Export) []tui.Item {
	items := make([]tui.Item, 0, len(exports))
	for _, e := range exports {
		it := tui.Item{Export: e}
		if entry, err := led.Get(e.Path); err == nil && entry != nil {
			it.Note = entry.NotePath
			it.Stale = entry.SourceMtime != e.Mtime || entry.SourceSize != e.Size
		}
		items = append(items, it)
	}
	return items
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func promptTitle() string {
	fmt.Fprint(os.Stderr, "Enter note title (blank for default): ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
