package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"ansi color", "\x1b[1;34mhello\x1b[0m", "hello"},
		{"ansi erase line", "partial\x1b[K", "partial"},
		{"box frame", "│ inside pane │", " inside pane"},
		{"rule runes", "╭──────╮", ""},
		{"assistant glyph", "⏺ answer text", " answer text"},
		{"footer glyph", "⎿ tool result", " tool result"},
		{"thinking glyph", "✻ pondering", " pondering"},
		{"ellipsis", "loading…", "loading..."},
		{"trailing whitespace", "done   \t", "done"},
		{"leading whitespace kept", "    indented code", "    indented code"},
		{"everything at once", "\x1b[32m│ ⏺ ok… \x1b[0m", "  ok..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"\x1b[1;31mred\x1b[0m text",
		"│ pane │",
		"⏺ response…  ",
		"  leading stays",
		"plain",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean(Clean(x)) must equal Clean(x) for %q", in)
	}
}

func TestStripLineNumbers(t *testing.T) {
	in := "    1→package main\n   22→func main() {}\nno gutter here\nsee 3→ mid-line"
	want := "package main\nfunc main() {}\nno gutter here\nsee 3→ mid-line"
	assert.Equal(t, want, StripLineNumbers(in))
}
