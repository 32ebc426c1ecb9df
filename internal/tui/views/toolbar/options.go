package toolbar

import "script-console/internal/tui/widgets/statusbar"

// RenderOptions returns the toolbar actions in display order. The run
// button carries the controller's current label.
func RenderOptions(runLabel string) []statusbar.Item {
    return []statusbar.Item{
        {Key: "^N", Label: "New"},
        {Key: "^O", Label: "Open"},
        {Key: "^S", Label: "Save"},
        {Key: "^R", Label: runLabel},
    }
}
