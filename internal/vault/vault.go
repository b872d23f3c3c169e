// Package vault names and writes converted notes inside the notes
// directory.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// slugRe matches everything a filename should not carry. Letters and
// digits in any script survive, so non-English titles keep their words.
var slugRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Slug converts a note title into a filename fragment.
func Slug(title string) string {
	s := slugRe.ReplaceAllString(title, "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	if s == "" {
		return "conversation"
	}
	return s
}

// DefaultTitle is used when the user supplies none.
func DefaultTitle(date time.Time) string {
	return "Claude Conversation - " + date.Format("2006-01-02")
}

// NotePath builds the destination path for a note: date prefix, then the
// slugged title.
func NotePath(vaultDir, title string, date time.Time) string {
	name := fmt.Sprintf("%s-%s.md", date.Format("2006-01-02"), Slug(title))
	return filepath.Join(vaultDir, name)
}

// Write stores a rendered note, creating parent directories as needed.
func Write(path, markdown string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}
