package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notesmith/cc2md/internal/config"
	"github.com/notesmith/cc2md/internal/guard"
)

func hookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "PreToolUse safety gate for Claude Code Bash commands",
		Long: `Reads the PreToolUse hook payload from stdin and screens the shell command
against a fixed list of destructive patterns. Exit status 2 blocks the
command; anything else lets it run.

Wire it up in Claude Code settings:

  { "hooks": { "PreToolUse": [ { "matcher": "Bash",
      "hooks": [ { "type": "command", "command": "cc2md hook" } ] } ] } }

Blocked and suspicious commands are appended to the guard audit log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config problems must not block the user's commands.
			var logPath string
			if cfg, err := config.Load(); err == nil {
				logPath = cfg.GuardLogPath
			}

			command, ok := guard.ReadCommand(os.Stdin)
			if !ok {
				return nil // malformed or empty payload, allow
			}

			verdict := guard.Check(command)
			auditor := guard.NewAuditor(logPath)

			if verdict.Blocked {
				auditor.Blocked(command, verdict.Reason)
				auditor.Close()
				fmt.Fprintln(os.Stderr, guard.BlockMessage(command, verdict.Reason))
				os.Exit(2)
			}

			if len(verdict.Warnings) > 0 {
				auditor.Warned(command, verdict.Warnings)
			}
			auditor.Close()
			return nil
		},
	}
}
