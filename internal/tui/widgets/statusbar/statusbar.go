package statusbar

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/bubbles/spinner"
    "github.com/charmbracelet/lipgloss"

    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
)

// Item is one toolbar action.
type Item struct {
    Key   string
    Label string
}

// StatusBar draws the toolbar line and the busy indicator.
type StatusBar struct {
    Spinner spinner.Model
}

func NewStatusBar() StatusBar {
    return StatusBar{Spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
}

// View composes the toolbar. Disabled toolbars render their items faint and
// show the spinner in place of the hint.
func (b StatusBar) View(s state.UIState, p util.Palette, items []Item, enabled bool, noColor bool) string {
    noColor = util.NoColor(noColor)
    key := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
    label := lipgloss.NewStyle().Foreground(p.Foreground)
    if !enabled {
        key = lipgloss.NewStyle().Faint(true)
        label = key
    }
    parts := make([]string, 0, len(items)+2)
    for _, it := range items {
        if noColor {
            parts = append(parts, fmt.Sprintf("%s %s", it.Key, it.Label))
            continue
        }
        parts = append(parts, key.Render(it.Key)+" "+label.Render(it.Label))
    }
    if !enabled {
        parts = append(parts, b.Spinner.View())
    } else {
        parts = append(parts, "F1 help")
    }
    if s.Notice != "" {
        parts = append(parts, s.Notice)
    }
    return strings.Join(parts, "  ")
}
