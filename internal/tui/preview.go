package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/notesmith/cc2md/internal/render"
	"github.com/notesmith/cc2md/internal/transcript"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	path    string
	content string
	err     error
}

// loadPreviewCmd converts the export in memory and renders the resulting
// note for the preview pane.
func loadPreviewCmd(it Item, width int) tea.Cmd {
	path := it.Export.Path
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return previewRenderedMsg{path: path, err: err}
		}

		turns := transcript.Parse(string(data))
		if len(turns) == 0 {
			return previewRenderedMsg{path: path, content: "No conversation found in this export."}
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		note := render.Markdown(title, time.Now(), turns)
		return previewRenderedMsg{path: path, content: renderMarkdown(note, width)}
	}
}

// renderMarkdown pretty-prints the note for the terminal. Glamour can choke
// on odd terminal content, so any failure falls back to the plain note.
func renderMarkdown(markdown string, width int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = markdown
		}
	}()

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
