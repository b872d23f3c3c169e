package open

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Note opens a converted note in the user's editor. Preference order is the
// configured editor, $EDITOR, $VISUAL, then less as a pager of last resort.
func Note(editor, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("note not found: %s", path)
	}

	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "less"
	}

	return openInEditor(editor, path)
}

func openInEditor(editor, path string) error {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", path)
	default:
		cmd = exec.Command(editor, path)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
