package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each export occupies.
const linesPerItem = 2

// renderList renders the left panel: exports list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No exports")
	}

	var lines []string
	for i, it := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItemRows(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItemRows formats a single export as two lines:
//
//	line 1: [>] MM-DD filename
//	line 2:    size and conversion status (dimmed)
func formatItemRows(it Item, width int, selected bool) []string {
	date := time.Unix(it.Export.Mtime, 0).Format("01-02")
	name := filepath.Base(it.Export.Path)

	nameMax := width - 2 - 6 - 2 // prefix + date + padding
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line1 := fmt.Sprintf("%s %s", date, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	status := statusText(it)
	statusMax := width - 4 // indent
	if statusMax < 0 {
		statusMax = 0
	}
	if runewidth.StringWidth(status) > statusMax {
		status = runewidth.Truncate(status, statusMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(status)

	return []string{line1, line2}
}

func statusText(it Item) string {
	size := humanSize(it.Export.Size)
	switch {
	case it.Note == "":
		return size + "  not converted"
	case it.Stale:
		return size + "  converted, changed since"
	default:
		return size + "  " + filepath.Base(it.Note)
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
