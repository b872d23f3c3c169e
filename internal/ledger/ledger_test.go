package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Ledger {
	t.Helper()
	// Nested path exercises parent-dir creation.
	l, err := Open(filepath.Join(t.TempDir(), "state", "cc2md.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndGet(t *testing.T) {
	l := openTemp(t)

	e := Entry{
		SourcePath:  "/exports/2026-08-22-chat.txt",
		SourceMtime: 1700000000,
		SourceSize:  2048,
		NotePath:    "/vault/2026-08-22-chat.md",
		Title:       "chat",
		ConvertedAt: time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, l.Record(e))

	got, err := l.Get(e.SourcePath)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e, *got)
}

func TestGetMissing(t *testing.T) {
	l := openTemp(t)

	got, err := l.Get("/nowhere.txt")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecordReplaces(t *testing.T) {
	l := openTemp(t)

	e := Entry{SourcePath: "/e.txt", SourceMtime: 1, SourceSize: 1, NotePath: "/a.md", Title: "a", ConvertedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, l.Record(e))

	e.NotePath = "/b.md"
	e.SourceMtime = 2
	require.NoError(t, l.Record(e))

	got, err := l.Get("/e.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/b.md", got.NotePath)
	assert.EqualValues(t, 2, got.SourceMtime)

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpToDate(t *testing.T) {
	l := openTemp(t)

	ok, err := l.UpToDate("/e.txt", 10, 100)
	require.NoError(t, err)
	assert.False(t, ok, "unknown file is never up to date")

	require.NoError(t, l.Record(Entry{
		SourcePath: "/e.txt", SourceMtime: 10, SourceSize: 100,
		NotePath: "/n.md", Title: "t", ConvertedAt: time.Now(),
	}))

	ok, err = l.UpToDate("/e.txt", 10, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.UpToDate("/e.txt", 11, 100)
	require.NoError(t, err)
	assert.False(t, ok, "mtime change invalidates")

	ok, err = l.UpToDate("/e.txt", 10, 101)
	require.NoError(t, err)
	assert.False(t, ok, "size change invalidates")
}

func TestAllOrdersByRecency(t *testing.T) {
	l := openTemp(t)

	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{"/a.txt", "/b.txt", "/c.txt"} {
		require.NoError(t, l.Record(Entry{
			SourcePath: p, SourceMtime: 1, SourceSize: 1,
			NotePath: p + ".md", Title: "t",
			ConvertedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := l.All()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/c.txt", entries[0].SourcePath)
	assert.Equal(t, "/a.txt", entries[2].SourcePath)
}
