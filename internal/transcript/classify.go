package transcript

import (
	"regexp"
	"strings"
)

// Glyphs the CLI prints at the start of significant lines.
const (
	promptGlyph   = "❯" // user prompt
	markerGlyph   = "⏺" // assistant response block
	footerGlyph   = "⎿" // tool-result footer
	thinkingGlyph = "✻" // spinner / timing line
)

// timingRe matches the whimsical elapsed-time lines the spinner leaves
// behind ("Sautéed for 31s" and friends share this one verb).
var timingRe = regexp.MustCompile(`.*Sautéed for \d+[ms]`)

// Rules holds the classification tables the segmenter consults per line.
// The zero value classifies nothing; use DefaultRules.
type Rules struct {
	// PreamblePhrases mark banner and MOTD lines. Matched by substring
	// against the raw line, before the first prompt only.
	PreamblePhrases []string

	// SystemResponses are CLI acknowledgement lines that appear inside
	// the conversation but belong to neither speaker.
	SystemResponses []string

	// SystemCommands are slash commands whose prompts are bookkeeping,
	// not conversation. Matched by prefix on the prompt text.
	SystemCommands []string

	// TimingPattern matches spinner timing lines.
	TimingPattern *regexp.Regexp

	PromptGlyph string
	MarkerGlyph string
}

// DefaultRules returns the tables for current Claude Code output.
func DefaultRules() Rules {
	return Rules{
		PreamblePhrases: []string{
			"Claude Code v",
			"Welcome back",
			"Tips for getting",
			"Run /init",
			"Recent activity",
			"No recent activity",
			"API Usage Billing",
			"Organization",
			"Auth conflict",
			"Trying to use",
			"/model to try",
		},
		SystemResponses: []string{
			"Please provide a name for the session",
			"Session renamed to:",
			"Exported conversation to:",
			"Usage: /rename",
			"Usage: /help",
		},
		SystemCommands: []string{
			"/rename",
			"/help",
			"/clear",
			"/exit",
			"/model",
			"/logout",
			"/export",
		},
		TimingPattern: timingRe,
		PromptGlyph:   promptGlyph,
		MarkerGlyph:   markerGlyph,
	}
}

// IsPreamble reports whether a line belongs to the session banner.
func (r Rules) IsPreamble(line string) bool {
	for _, phrase := range r.PreamblePhrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

// IsTiming reports whether a line is spinner timing chatter.
func (r Rules) IsTiming(line string) bool {
	return r.TimingPattern != nil && r.TimingPattern.MatchString(line)
}

// IsSystemResponse reports whether a line is a CLI acknowledgement.
func (r Rules) IsSystemResponse(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, phrase := range r.SystemResponses {
		if strings.Contains(trimmed, phrase) {
			return true
		}
	}
	return false
}

// IsUserPromptStart reports whether a cleaned line opens a user prompt.
func (r Rules) IsUserPromptStart(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), r.PromptGlyph)
}

// PromptText extracts what the user typed after the prompt glyph.
func (r Rules) PromptText(line string) string {
	text := strings.TrimPrefix(strings.TrimSpace(line), r.PromptGlyph)
	return strings.TrimSpace(text)
}

// IsSystemCommand reports whether prompt text invokes a bookkeeping slash
// command rather than conversation.
func (r Rules) IsSystemCommand(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, cmd := range r.SystemCommands {
		if strings.HasPrefix(trimmed, cmd) {
			return true
		}
	}
	return false
}

// HasAssistantMarker reports whether the raw, uncleaned line carries the
// assistant response glyph. It must run on the raw line: Clean removes the
// glyph, so order matters to the caller.
func (r Rules) HasAssistantMarker(raw string) bool {
	return strings.Contains(raw, r.MarkerGlyph)
}
