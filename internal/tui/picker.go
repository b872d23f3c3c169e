// Package tui is the interactive export picker: a filterable list of
// transcript exports on the left, a live Markdown preview of the
// conversion on the right.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notesmith/cc2md/internal/scan"
)

const debounceDelay = 200 * time.Millisecond

// Item is one selectable export.
type Item struct {
	Export scan.Export
	Note   string // existing note path, empty when never converted
	Stale  bool   // converted before, but the export changed since
}

type debounceTickMsg struct {
	filter string
}

type model struct {
	items       []Item
	visible     []Item // after filtering
	filter      string
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // path currently shown, to avoid duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	chosen      *Item
}

func initialModel(items []Item) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		items:       items,
		visible:     items,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Pick shows the picker and blocks until the user chooses an export or
// cancels. A nil Item means cancelled.
func Pick(items []Item) (*Item, error) {
	m := initialModel(items)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	fm := finalModel.(model)
	return fm.chosen, nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		// Re-render the preview at the new width
		m.previewKey = ""
		if len(m.visible) > 0 && m.cursor < len(m.visible) {
			cmds = append(cmds, loadPreviewCmd(m.visible[m.cursor], m.previewWidth()))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.visible) > 0 && m.cursor < len(m.visible) {
				it := m.visible[m.cursor]
				m.chosen = &it
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to the filter input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if newFilter := m.filterInput.Value(); newFilter != m.filter {
			m.filter = newFilter
			cmds = append(cmds, scheduleDebouncedFilter(newFilter))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.visible) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)

		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			if m.listOffset > 0 {
				m.listOffset--
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			visibleItems := m.panelHeight() / linesPerItem
			maxOffset := len(m.visible) - visibleItems
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.listOffset < maxOffset {
				m.listOffset++
			}
			return m, nil

		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.visible) && m.cursor != itemIdx {
				m.cursor = itemIdx
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case region == regionPreview && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			var vpCmd tea.Cmd
			m.preview, vpCmd = m.preview.Update(msg)
			if vpCmd != nil {
				cmds = append(cmds, vpCmd)
			}
			return m, tea.Batch(cmds...)
		}

		return m, nil

	case debounceTickMsg:
		// Only apply if the filter hasn't changed since this tick was
		// scheduled
		if msg.filter == m.filter {
			m.applyFilter(msg.filter)
			if len(m.visible) > 0 {
				cmds = append(cmds, m.loadCurrentPreview())
			} else {
				m.preview.SetContent("")
				m.previewKey = ""
			}
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		if msg.path == m.previewKey {
			return m, nil
		}
		if len(m.visible) > 0 && m.cursor < len(m.visible) &&
			msg.path != m.visible[m.cursor].Export.Path {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		m.previewKey = msg.path
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full picker.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m *model) applyFilter(filter string) {
	if filter == "" {
		m.visible = m.items
	} else {
		needle := strings.ToLower(filter)
		var visible []Item
		for _, it := range m.items {
			if strings.Contains(strings.ToLower(filepath.Base(it.Export.Path)), needle) {
				visible = append(visible, it)
			}
		}
		m.visible = visible
	}
	m.cursor = 0
	m.listOffset = 0
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 40% for list, minus border padding
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// 60% for preview, minus border padding
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	pH := m.panelHeight()
	contentYStart := 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + pH - 1

	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	listBoxRight := lw + 1 // col 0=border, 1..lw=content, lw+1=border

	if x >= 1 && x <= lw {
		itemIndex := m.listOffset + (relY / linesPerItem)
		return regionList, itemIndex
	}

	if x > listBoxRight+1 {
		return regionPreview, -1
	}

	return regionNone, -1
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d exports", len(m.visible)),
		"click/up/dn navigate",
		"scroll/C-u/C-d preview",
		"Enter convert",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func scheduleDebouncedFilter(filter string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{filter: filter}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return nil
	}
	it := m.visible[m.cursor]
	if it.Export.Path == m.previewKey {
		return nil // already showing this preview
	}
	return loadPreviewCmd(it, m.previewWidth())
}
