// Package transcript turns raw terminal captures of Claude Code sessions
// into ordered conversation turns. The input is the text the CLI's /export
// command writes: user prompts, assistant output, banner noise, box-drawing
// frames, ANSI color codes, and timing chatter all interleaved. The output
// is the conversation alone.
package transcript

import "errors"

// Speaker identifies who authored a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one contiguous block of conversation attributed to a single
// speaker. Content holds the cleaned lines joined with newlines, exactly
// as they appeared between two turn boundaries.
type Turn struct {
	Speaker Speaker
	Content string
}

// ErrNoTurns reports that a transcript held no conversation at all, for
// example a capture of the welcome banner with no prompt. Callers decide
// whether that aborts the run or the file is simply skipped.
var ErrNoTurns = errors.New("no conversation turns found")

// Parse splits a raw transcript into ordered conversation turns using the
// default classification rules. A transcript of pure noise yields an empty
// slice, not an error.
func Parse(content string) []Turn {
	return ParseWithRules(content, DefaultRules())
}

// ParseWithRules is Parse with caller-supplied classification tables.
func ParseWithRules(content string, rules Rules) []Turn {
	s := newSegmenter(rules)
	return s.parse(content)
}
