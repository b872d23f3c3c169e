package transcript

import (
	"regexp"
	"strings"
	"unicode"
)

// separatorRe matches horizontal-rule lines ("---", "====", longer runs)
// after trimming. The CLI draws these between sections; they read as
// Markdown headings or rules if left in.
var separatorRe = regexp.MustCompile(`^[-=]{3,}$`)

// Normalize prepares one turn's content for rendering: blank edge lines go,
// separator rules go (along with the single blank line that usually follows
// one), and the common leading indentation shared by every non-blank line
// is removed.
func Normalize(content string) string {
	lines := trimBlankEdges(strings.Split(content, "\n"))
	if len(lines) == 0 {
		return ""
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w := indentWidth(line)
		if minIndent == -1 || w < minIndent {
			minIndent = w
		}
	}
	if minIndent == -1 {
		minIndent = 0
	}

	var out []string
	prevWasSeparator := false
	for _, line := range lines {
		if separatorRe.MatchString(strings.TrimSpace(line)) {
			// Only a separator that followed real content arms the
			// blank-line swallow; a leading rule just disappears.
			if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
				prevWasSeparator = true
			}
			continue
		}
		if prevWasSeparator && strings.TrimSpace(line) == "" {
			prevWasSeparator = false
			continue
		}
		prevWasSeparator = false
		out = append(out, dedent(line, minIndent))
	}
	return strings.Join(out, "\n")
}

// CollapseBlankLines squeezes every run of blank lines down to at most two
// and rewrites whitespace-only lines as truly empty ones.
func CollapseBlankLines(text string) string {
	var out []string
	blanks := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks <= 2 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func indentWidth(line string) int {
	return len([]rune(line)) - len([]rune(strings.TrimLeftFunc(line, unicode.IsSpace)))
}

// dedent removes width leading runes. Lines shorter than the common indent
// (whitespace-only remnants) pass through untouched.
func dedent(line string, width int) string {
	if width == 0 || line == "" {
		return line
	}
	runes := []rune(line)
	if len(runes) < width {
		return line
	}
	return string(runes[width:])
}

func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
