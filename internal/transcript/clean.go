package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// lineNumberRe matches the "  123→" prefixes the CLI adds when it
	// prints file contents into the session.
	lineNumberRe = regexp.MustCompile(`(?m)^\s*\d+→`)

	// ansiRe covers the color and erase-line sequences found in captures.
	ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[mK]`)
)

// boxChars are the frame-drawing runes the CLI uses for panes and rules.
// They carry no conversational content and are removed wherever they occur.
const boxChars = "╭╮╰╯│─┌┐└┘├┤┬┴┼═║╔╗╚╝╠╣╦╩╬▐▛▜▌▝▘"

// StripLineNumbers removes line-number gutters from embedded file listings.
// It runs once over the whole transcript before any per-line work.
func StripLineNumbers(content string) string {
	return lineNumberRe.ReplaceAllString(content, "")
}

// Clean strips one line down to its text: ANSI escapes, box-drawing runes,
// the CLI's marker glyphs, and trailing whitespace all go; leading
// whitespace stays because indentation is content. Clean is idempotent, so
// cleaning an already-clean line changes nothing.
func Clean(line string) string {
	line = ansiRe.ReplaceAllString(line, "")
	line = strings.Map(dropBoxChar, line)
	line = strings.ReplaceAll(line, markerGlyph, "")
	line = strings.ReplaceAll(line, footerGlyph, "")
	line = strings.ReplaceAll(line, thinkingGlyph, "")
	line = strings.ReplaceAll(line, "…", "...")
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

func dropBoxChar(r rune) rune {
	if strings.ContainsRune(boxChars, r) {
		return -1
	}
	return r
}
