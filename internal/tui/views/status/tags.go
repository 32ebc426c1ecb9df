package status

import (
    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
    chips "script-console/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for the editor status line.
func RenderTags(baseline, current string, s state.UIState, p util.Palette, noColor bool) string {
    return chips.View(util.ComputeTags(baseline, current, s.ReadOnly, s.Mode), p, noColor)
}
