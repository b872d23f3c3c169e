// Package render turns parsed conversation turns into a Markdown note with
// Obsidian-style YAML front matter.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/notesmith/cc2md/internal/transcript"
)

// Tags appear in every note's front matter.
var Tags = []string{"claude-code", "conversation"}

const (
	maxHeaderLen    = 80
	truncatedHeader = 77

	assistantHeading = "## Claude"
)

// Markdown renders turns into a complete note. The first line of each user
// turn becomes an H1 section heading and the rest of the turn follows as
// body text; assistant turns render under a fixed "## Claude" heading.
// Turns that normalize to nothing are dropped. The date is injected so
// output is reproducible.
func Markdown(title string, date time.Time, turns []transcript.Turn) string {
	lines := []string{
		"---",
		fmt.Sprintf("title: %q", title),
		"date: " + date.Format("2006-01-02"),
		"tags: [" + strings.Join(Tags, ", ") + "]",
		"---",
		"",
	}

	for _, turn := range turns {
		content := transcript.Normalize(turn.Content)
		if strings.TrimSpace(content) == "" {
			continue
		}

		if turn.Speaker == transcript.SpeakerUser {
			turnLines := strings.Split(content, "\n")
			header := strings.TrimSpace(turnLines[0])
			lines = append(lines, "# "+truncateHeader(header))
			if len(turnLines) > 1 {
				body := strings.TrimSpace(strings.Join(turnLines[1:], "\n"))
				if body != "" {
					lines = append(lines, "", body)
				}
			}
		} else {
			lines = append(lines, "", assistantHeading, "", content)
		}
		lines = append(lines, "")
	}

	return transcript.CollapseBlankLines(strings.Join(lines, "\n"))
}

// truncateHeader caps a heading at 80 runes, ellipsis included.
func truncateHeader(header string) string {
	runes := []rune(header)
	if len(runes) <= maxHeaderLen {
		return header
	}
	return string(runes[:truncatedHeader]) + "..."
}
