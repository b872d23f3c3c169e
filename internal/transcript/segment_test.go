package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicConversation(t *testing.T) {
	input := "Claude Code v1.0\nWelcome back\n❯ hello\n⏺ hi there\n"

	turns := Parse(input)
	require.Len(t, turns, 2)

	assert.Equal(t, SpeakerUser, turns[0].Speaker)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, SpeakerAssistant, turns[1].Speaker)
	assert.Equal(t, "hi there", Normalize(turns[1].Content))
}

// Prepending any amount of banner noise must not change the parse.
func TestParsePreambleInvariance(t *testing.T) {
	body := "❯ what is a goroutine\n⏺ A goroutine is a lightweight thread.\nThey are cheap to start."
	banner := strings.Join([]string{
		"╭──────────────────────────╮",
		"│ Claude Code v1.0.24      │",
		"╰──────────────────────────╯",
		"Welcome back!",
		"",
		"Tips for getting started:",
		"Run /init to create a CLAUDE.md",
		"No recent activity",
	}, "\n")

	bare := Parse(body)
	withBanner := Parse(banner + "\n" + body)

	require.NotEmpty(t, bare)
	assert.Equal(t, bare, withBanner)
}

func TestParseMarkerLinesMerge(t *testing.T) {
	t.Run("markers with text stay one turn", func(t *testing.T) {
		turns := Parse("❯ go\n⏺ one\n⏺ two\n⏺ three")
		require.Len(t, turns, 2)

		assert.Equal(t, SpeakerAssistant, turns[1].Speaker)
		assert.Len(t, strings.Split(turns[1].Content, "\n"), 3)
	})

	t.Run("bare marker opens a turn without seeding a line", func(t *testing.T) {
		turns := Parse("❯ go\n⏺\n⏺ a\n⏺ b")
		require.Len(t, turns, 2)
		assert.Len(t, strings.Split(turns[1].Content, "\n"), 2)
	})
}

func TestParseSystemCommandDiscarded(t *testing.T) {
	turns := Parse("❯ hi\n⏺ answer\n❯ /rename my-session\nSession renamed to: my-session\n")
	require.Len(t, turns, 2)

	assert.Equal(t, SpeakerUser, turns[0].Speaker)
	assert.Equal(t, "hi", turns[0].Content)
	// The /rename prompt flushed the assistant turn but produced none of
	// its own, and the acknowledgement line vanished with it.
	assert.Equal(t, SpeakerAssistant, turns[1].Speaker)
	assert.Equal(t, "answer", Normalize(turns[1].Content))
}

func TestParseConsecutiveUserTurns(t *testing.T) {
	turns := Parse("❯ one\n❯ two\n⏺ ok")
	require.Len(t, turns, 3)

	assert.Equal(t, Turn{SpeakerUser, "one"}, turns[0])
	assert.Equal(t, Turn{SpeakerUser, "two"}, turns[1])
	assert.Equal(t, SpeakerAssistant, turns[2].Speaker)
}

// Output with no marker glyph while no turn is open is attributed to the
// assistant: tool output and continuations print without the glyph.
func TestParseImplicitAssistantTurn(t *testing.T) {
	turns := Parse("❯ /clear\nContext cleared, ready when you are")
	require.Len(t, turns, 1)

	assert.Equal(t, SpeakerAssistant, turns[0].Speaker)
	assert.Equal(t, "Context cleared, ready when you are", turns[0].Content)
}

func TestParseEmptyPromptDropped(t *testing.T) {
	turns := Parse("❯ hi\n❯\n⏺ yo")
	require.Len(t, turns, 2)

	assert.Equal(t, Turn{SpeakerUser, "hi"}, turns[0])
	assert.Equal(t, SpeakerAssistant, turns[1].Speaker)
}

func TestParseNoiseOnly(t *testing.T) {
	t.Run("banner only", func(t *testing.T) {
		assert.Empty(t, Parse("Claude Code v1.0\nWelcome back\n"))
	})
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Parse(""))
	})
	t.Run("blank lines only", func(t *testing.T) {
		assert.Empty(t, Parse("\n\n\n"))
	})
}

func TestParseSkipsChatterInsideTurn(t *testing.T) {
	turns := Parse("❯ q\n⏺ a\n✻ Sautéed for 3s\nSession renamed to: x\nmore detail")
	require.Len(t, turns, 2)

	assert.Equal(t, " a\nmore detail", turns[1].Content)
}

func TestParseStripsFileListingGutters(t *testing.T) {
	turns := Parse("❯ show main\n⏺ here it is\n    1→package main\n    2→func main() {}")
	require.Len(t, turns, 2)

	assert.Contains(t, turns[1].Content, "package main")
	assert.NotContains(t, turns[1].Content, "1→")
}

func TestParseTrailingContentFlushesAtEOF(t *testing.T) {
	turns := Parse("❯ last question")
	require.Len(t, turns, 1)
	assert.Equal(t, Turn{SpeakerUser, "last question"}, turns[0])
}
