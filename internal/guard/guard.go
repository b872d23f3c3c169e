// Package guard screens shell commands before Claude Code runs them. It
// implements the PreToolUse hook contract: JSON on stdin, exit status 2 to
// block. Anything the gate cannot parse is allowed through; a broken hook
// must never lock the user out of their own shell.
package guard

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

// rule pairs a pattern with an optional exemption. A command matches the
// rule when re matches and unless (if set) does not.
type rule struct {
	raw    string
	re     *regexp.Regexp
	unless *regexp.Regexp
}

func mustRule(pattern string) rule {
	return rule{raw: pattern, re: regexp.MustCompile(`(?i)` + pattern)}
}

// blockedRules refuse the command outright. Order matters: the first match
// becomes the reported reason.
var blockedRules = []rule{
	// Filesystem destruction.
	mustRule(`rm\s+(-[rfRF]+\s+)*[/~](\s|$)`),
	mustRule(`rm\s+(-[rfRF]+\s+)*/\*`),
	mustRule(`rm\s+(-[rfRF]+\s+)*\.\.`),
	mustRule(`rm\s+(-[rfRF]+\s+)*--no-preserve-root`),
	mustRule(`>\s*/dev/sd[a-z]`),
	mustRule(`dd\s+.*of=/dev/sd[a-z]`),
	mustRule(`mkfs\.`),
	mustRule(`:\(\)\s*\{\s*:\|:&\s*\}\s*;`),
	mustRule(`chmod\s+(-[rR]+\s+)*[0-7]*00\s+/`),
	mustRule(`chown\s+(-[rR]+\s+)*.*\s+/(\s|$)`),
	mustRule(`mv\s+/\s`),

	// Piping downloads into a shell.
	mustRule(`curl.*\|\s*(ba)?sh`),
	mustRule(`wget.*\|\s*(ba)?sh`),
	mustRule(`curl.*-o\s*/`),

	// Credential and secret reads.
	mustRule(`cat.*/etc/shadow`),
	mustRule(`cat.*\.ssh/id_`),
	mustRule(`cat.*\.aws/credentials`),
	mustRule(`cat.*\.env(?:\s|$|/)`),

	// History tampering.
	mustRule(`>\s*~/\..*_history`),
	mustRule(`rm.*\.bash_history`),
	mustRule(`rm.*\.zsh_history`),

	// Offensive tooling.
	mustRule(`nmap\s+-`),
	mustRule(`hydra\s+`),
	mustRule(`sqlmap\s+`),

	// Irreversible git operations.
	mustRule(`git\s+push.*--force.*main`),
	mustRule(`git\s+push.*--force.*master`),
	mustRule(`git\s+reset\s+--hard\s+HEAD~[0-9]+`),
	mustRule(`git\s+clean\s+-[dDfFxX]+`),

	// Infrastructure mutation.
	mustRule(`terraform\s+apply`),
	mustRule(`terraform\s+destroy`),
}

// warningRules let the command through but get logged. The pip rule
// exempts editable installs of the current project.
var warningRules = []rule{
	mustRule(`rm\s+-[rfRF]+`),
	mustRule(`chmod\s+777`),
	mustRule(`sudo\s+`),
	mustRule(`su\s+-`),
	mustRule(`>\s*/etc/`),
	{
		raw:    `pip\s+install\s+`,
		re:     regexp.MustCompile(`(?i)pip\s+install\s+`),
		unless: regexp.MustCompile(`(?i)pip\s+install\s+-e\s`),
	},
	mustRule(`npm\s+install\s+-g`),
	mustRule(`brew\s+install`),
}

// Verdict is the gate's answer for one command.
type Verdict struct {
	Blocked  bool
	Reason   string   // pattern that blocked, first match wins
	Warnings []string // every warning pattern that matched
}

// Check classifies a command. Blocked rules short-circuit; warnings are
// only collected for commands that pass.
func Check(command string) Verdict {
	for _, r := range blockedRules {
		if r.matches(command) {
			return Verdict{Blocked: true, Reason: r.raw}
		}
	}
	var warnings []string
	for _, r := range warningRules {
		if r.matches(command) {
			warnings = append(warnings, r.raw)
		}
	}
	return Verdict{Warnings: warnings}
}

func (r rule) matches(command string) bool {
	if !r.re.MatchString(command) {
		return false
	}
	return r.unless == nil || !r.unless.MatchString(command)
}

// BlockMessage formats the explanation printed to stderr when a command is
// refused. Claude Code shows this text to the model so it can adjust.
func BlockMessage(command, reason string) string {
	return fmt.Sprintf(
		"BLOCKED: Command matches dangerous pattern: %s\n\nCommand was: %s...\n\nThis command has been blocked for safety. Please use a safer alternative.",
		reason, clip(command, 200),
	)
}

// hookInput is the slice of the PreToolUse payload the gate cares about.
type hookInput struct {
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
}

// ReadCommand extracts the shell command from hook JSON. ok is false when
// the payload is malformed or carries no command, in which case the caller
// should allow the tool call.
func ReadCommand(r io.Reader) (command string, ok bool) {
	var in hookInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return "", false
	}
	if in.ToolInput.Command == "" {
		return "", false
	}
	return in.ToolInput.Command, true
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
