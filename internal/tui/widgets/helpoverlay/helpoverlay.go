package helpoverlay

import (
    "fmt"
    "strings"

    "script-console/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current diff view indicated.
func (HelpOverlay) View(s state.UIState) string {
    view := "unified"
    if s.View == state.SideBySide {
        view = "side-by-side"
    }
    sections := []struct {
        title string
        keys  []string
    }{
        {"Console", []string{"Ctrl+N: new", "Ctrl+O: open", "Ctrl+S: save", "Ctrl+R / F5: run", "Ctrl+X: cancel request"}},
        {"Results", []string{"Ctrl+Y: copy result", "Ctrl+D: diff against last load/save"}},
        {"View", []string{"Ctrl+T: themes", "v: toggle unified/side-by-side (in diff)", "↑/↓ PgUp/PgDn: scroll overlay"}},
        {"Files", []string{"Paste or drop a text file path to load it", "Esc: close overlay or dialog", "Ctrl+C: quit"}},
    }
    var b strings.Builder
    fmt.Fprintf(&b, "Help (Diff: %s)\n", view)
    for _, sec := range sections {
        fmt.Fprintf(&b, "\n%s:\n", sec.title)
        for _, k := range sec.keys {
            fmt.Fprintf(&b, "  %s\n", k)
        }
    }
    return b.String()
}
