package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/notesmith/cc2md/internal/config"
	"github.com/notesmith/cc2md/internal/ledger"
	"github.com/notesmith/cc2md/internal/scan"
)

func listCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcript exports and their conversion status",
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

			var exports []scan.Export
			if all {
				exports, err = scan.All(dir)
			} else {
				exports, err = scan.Discover(dir)
			}
			if err != nil {
				return err
			}
			if len(exports) == 0 {
				fmt.Printf("No transcript exports in %s\n", dir)
				return nil
			}

			led, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer led.Close()

			for i, e := range exports {
				status := "not converted"
				if entry, err := led.Get(e.Path); err == nil && entry != nil {
					status = entry.NotePath
					if entry.SourceMtime != e.Mtime || entry.SourceSize != e.Size {
						status += " (stale)"
					}
				}
				fmt.Printf("%3d. %s  %-36s %s\n", i+1,
					time.Unix(e.Mtime, 0).Format("2006-01-02 15:04"),
					filepath.Base(e.Path), status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include .txt files that don't look like exports")

	return cmd
}
