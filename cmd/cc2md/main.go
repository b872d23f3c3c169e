package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "cc2md",
		Short:         "cc2md - convert Claude Code terminal exports into clean Markdown notes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(hookCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
