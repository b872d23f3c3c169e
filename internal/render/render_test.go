package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/notesmith/cc2md/internal/transcript"
)

var testDate = time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)

func TestMarkdownFrontMatter(t *testing.T) {
	got := Markdown("My Chat", testDate, []transcript.Turn{
		{Speaker: transcript.SpeakerUser, Content: "hi"},
	})

	assert.True(t, strings.HasPrefix(got,
		"---\ntitle: \"My Chat\"\ndate: 2026-02-14\ntags: [claude-code, conversation]\n---\n"))

	// The front-matter block must be well-formed YAML.
	parts := strings.SplitN(got, "---\n", 3)
	require.Len(t, parts, 3)

	var meta struct {
		Title string   `yaml:"title"`
		Date  string   `yaml:"date"`
		Tags  []string `yaml:"tags"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &meta))
	assert.Equal(t, "My Chat", meta.Title)
	assert.Equal(t, "2026-02-14", meta.Date)
	assert.Equal(t, []string{"claude-code", "conversation"}, meta.Tags)
}

func TestMarkdownUserHeading(t *testing.T) {
	t.Run("short question verbatim", func(t *testing.T) {
		got := Markdown("t", testDate, []transcript.Turn{
			{Speaker: transcript.SpeakerUser, Content: "why is the sky blue"},
		})
		assert.Contains(t, got, "# why is the sky blue\n")
	})

	t.Run("long question truncated to 80 runes", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		got := Markdown("t", testDate, []transcript.Turn{
			{Speaker: transcript.SpeakerUser, Content: long},
		})

		var header string
		for _, line := range strings.Split(got, "\n") {
			if strings.HasPrefix(line, "# ") {
				header = strings.TrimPrefix(line, "# ")
			}
		}
		require.NotEmpty(t, header)
		assert.Len(t, []rune(header), 80)
		assert.True(t, strings.HasSuffix(header, "..."))
	})

	t.Run("multi-line prompt keeps body", func(t *testing.T) {
		got := Markdown("t", testDate, []transcript.Turn{
			{Speaker: transcript.SpeakerUser, Content: "refactor this\nkeep the API\nadd tests"},
		})
		assert.Contains(t, got, "# refactor this\n")
		assert.Contains(t, got, "keep the API\nadd tests")
	})
}

func TestMarkdownAssistantSection(t *testing.T) {
	got := Markdown("t", testDate, []transcript.Turn{
		{Speaker: transcript.SpeakerUser, Content: "q"},
		{Speaker: transcript.SpeakerAssistant, Content: "the answer\nspans lines"},
	})

	assert.Contains(t, got, "## Claude\n\nthe answer\nspans lines")
}

func TestMarkdownSkipsEmptyTurns(t *testing.T) {
	got := Markdown("t", testDate, []transcript.Turn{
		{Speaker: transcript.SpeakerUser, Content: "real"},
		{Speaker: transcript.SpeakerAssistant, Content: "   \n \t \n"},
		{Speaker: transcript.SpeakerAssistant, Content: "---"},
	})

	assert.Contains(t, got, "# real")
	assert.NotContains(t, got, "## Claude")
}

func TestMarkdownCollapsesBlankRuns(t *testing.T) {
	got := Markdown("t", testDate, []transcript.Turn{
		{Speaker: transcript.SpeakerAssistant, Content: "x\n\n\n\n\ny"},
	})

	assert.Contains(t, got, "x\n\n\ny")
	assert.NotContains(t, got, "\n\n\n\n")
}

// Whole pipeline: raw capture in, finished note out.
func TestMarkdownEndToEnd(t *testing.T) {
	input := "Claude Code v1.0\nWelcome back\n❯ hello\n⏺ hi there\n"
	turns := transcript.Parse(input)
	require.Len(t, turns, 2)

	got := Markdown("Test", time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), turns)

	want := strings.Join([]string{
		"---",
		`title: "Test"`,
		"date: 2026-08-22",
		"tags: [claude-code, conversation]",
		"---",
		"",
		"# hello",
		"",
		"",
		"## Claude",
		"",
		"hi there",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}
