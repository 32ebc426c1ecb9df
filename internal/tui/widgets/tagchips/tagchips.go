package tagchips

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"

    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
)

// View renders editor tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, p util.Palette, noColor bool) string {
    if len(tags) == 0 {
        return ""
    }
    noColor = util.NoColor(noColor)

    parts := make([]string, 0, len(tags))
    for _, t := range tags {
        parts = append(parts, renderChip(t, p, noColor))
    }
    return strings.Join(parts, " ")
}

func renderChip(t state.Tag, p util.Palette, noColor bool) string {
    label := chipLabel(t)
    if noColor {
        return fmt.Sprintf("[%s]", label)
    }
    return chipStyle(t, p).Render(label)
}

func chipLabel(t state.Tag) string {
    switch t.Kind {
    case state.MODIFIED:
        return "Modified"
    case state.READ_ONLY:
        return "Read-only"
    case state.MODE:
        return t.Text
    case state.LINES:
        return fmt.Sprintf("Ln %d", t.Value)
    case state.CHARS:
        return fmt.Sprintf("Ch %d", t.Value)
    default:
        return "Tag"
    }
}

func chipStyle(t state.Tag, p util.Palette) lipgloss.Style {
    base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Background)
    switch t.Kind {
    case state.MODIFIED:
        return base.Background(p.Warning)
    case state.READ_ONLY:
        return base.Background(p.Danger)
    case state.MODE:
        return base.Background(p.Primary)
    case state.LINES, state.CHARS:
        return base.Background(p.Muted)
    default:
        return base
    }
}
