package help

import (
    "script-console/internal/tui/state"
    overlay "script-console/internal/tui/widgets/helpoverlay"
)

// RenderHelp returns the grouped keys overlay content for the console.
func RenderHelp(s state.UIState) string {
    h := overlay.NewHelpOverlay()
    return h.View(s)
}
