package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"script-console/internal/console"
	"script-console/internal/tui/state"
	"script-console/internal/tui/util"
)

// postedMsg carries a continuation posted by the controller from another goroutine.
type postedMsg func()

func waitPosted(q *console.Queue) tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-q.C()
		if !ok {
			return nil
		}
		return postedMsg(fn)
	}
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyPrimary copies the most relevant result surface to the clipboard.
func (m *model) copyPrimary() {
	label, text, ok := m.ctl.Panels().Primary()
	if !ok {
		m.ui = state.SetNotice(m.ui, "Nothing to copy")
		return
	}
	if err := writeClipboard(text); err != nil {
		m.ui = state.SetNotice(m.ui, "Copy failed: "+err.Error())
		m.log.Warn("clipboard write failed", "err", err)
		return
	}
	m.ui = state.SetNotice(m.ui, "Copied "+label)
}

type panelSpec struct {
	title string
	panel console.Panel
	color func(util.Palette) lipgloss.Color
	boxed bool
}

// panelsView renders the visible notice and result surfaces in page order.
func (m *model) panelsView() string {
	p := m.ctl.Panels()
	if !p.AnyVisible() {
		return ""
	}
	pal := m.editor.Palette()
	width := m.ui.Width - 2
	if width < 20 {
		width = 80
	}
	specs := []panelSpec{
		{"", p.Success, func(p util.Palette) lipgloss.Color { return p.Success }, false},
		{"", p.Error, func(p util.Palette) lipgloss.Color { return p.Danger }, false},
		{"Running time", p.RunningTime, func(p util.Palette) lipgloss.Color { return p.Muted }, false},
		{"Stacktrace", p.Stacktrace, func(p util.Palette) lipgloss.Color { return p.Danger }, true},
		{"Result", p.Result, func(p util.Palette) lipgloss.Color { return p.Primary }, true},
		{"Output", p.Output, func(p util.Palette) lipgloss.Color { return p.Foreground }, true},
	}
	var out []string
	for _, s := range specs {
		if !s.panel.Visible {
			continue
		}
		out = append(out, renderPanel(s, pal, width, m.noColor))
	}
	return strings.Join(out, "\n")
}

func renderPanel(s panelSpec, pal util.Palette, width int, noColor bool) string {
	text := strings.TrimRight(s.panel.Text, "\n")
	if !s.boxed {
		line := text
		if s.title != "" {
			line = s.title + ": " + text
		}
		if noColor {
			return line
		}
		return lipgloss.NewStyle().Foreground(s.color(pal)).Bold(true).Render(line)
	}
	if noColor {
		return "[" + s.title + "]\n" + text
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.color(pal)).
		Padding(0, 1).
		Width(width)
	return titleStyle.Foreground(s.color(pal)).Render(s.title) + "\n" + box.Render(text)
}
