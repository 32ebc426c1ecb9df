package tui

import (
    "script-console/internal/tui/widgets/diff"
)

// diffView renders the editor text against the last loaded or saved text.
func (m *model) diffView() string {
    v := diff.NewDiffView(m.editor.Palette(), m.noColor)
    title := "Changes since last load/save"
    if m.baseline == "" {
        title = "Changes since new script"
    }
    return titleStyle.Render(title) + "\n" + v.View(m.ui, m.baseline, m.editor.Value()) +
        "\n" + faintStyle.Render("v: unified/side-by-side   ↑/↓: scroll   esc: close")
}
