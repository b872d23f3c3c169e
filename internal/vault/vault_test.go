package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Chat", "My-Chat"},
		{"Fix: the parser bug!", "Fix-the-parser-bug"},
		{"déjà vu notes", "déjà-vu-notes"},
		{"under_score kept", "under_score-kept"},
		{"  edges trimmed  ", "edges-trimmed"},
		{":::", "conversation"},
		{"", "conversation"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}

func TestDefaultTitle(t *testing.T) {
	date := time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Claude Conversation - 2026-08-22", DefaultTitle(date))
}

func TestNotePath(t *testing.T) {
	date := time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC)
	got := NotePath("/vault", "My Chat", date)
	assert.Equal(t, filepath.Join("/vault", "2026-08-22-My-Chat.md"), got)
}

func TestWriteCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "note.md")

	require.NoError(t, Write(path, "# hello\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(data))
}
