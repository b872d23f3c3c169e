package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notesmith/cc2md/internal/config"
	"github.com/notesmith/cc2md/internal/ledger"
	"github.com/notesmith/cc2md/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify directories, ledger, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			exportDir, err := cfg.ResolveExportDir()
			if err != nil {
				return err
			}

			fmt.Println("=== Directories ===")
			checkDir("Vault", cfg.VaultDir)
			checkDir("Exports", exportDir)

			fmt.Println("\n=== Exports ===")
			exports, err := scan.All(exportDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				matched := 0
				for _, e := range exports {
					if e.Matched {
						matched++
					}
				}
				fmt.Printf("  .txt files:        %d\n", len(exports))
				fmt.Printf("  look like exports: %d\n", matched)
			}

			fmt.Println("\n=== Ledger ===")
			fmt.Printf("  Path: %s\n", cfg.LedgerPath)
			if _, err := os.Stat(cfg.LedgerPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first convert)")
				return nil
			}

			led, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer led.Close()

			count, err := led.Count()
			if err != nil {
				return fmt.Errorf("count conversions: %w", err)
			}
			fmt.Printf("  Conversions: %d\n", count)

			if info, err := os.Stat(cfg.LedgerPath); err == nil {
				fmt.Printf("  Size: %.1f KB\n", float64(info.Size())/1024)
			}

			fmt.Println("\n=== Guard ===")
			fmt.Printf("  Audit log: %s\n", cfg.GuardLogPath)
			if info, err := os.Stat(cfg.GuardLogPath); err == nil {
				fmt.Printf("  Size: %.1f KB\n", float64(info.Size())/1024)
			} else {
				fmt.Println("  Status: no records yet")
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
