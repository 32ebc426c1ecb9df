package status

import (
    "strings"
    "testing"

    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
)

func TestRenderTagsIntegration(t *testing.T) {
    s := state.UIState{ReadOnly: true, Mode: "groovy"}
    out := RenderTags("println 1", "println 2\n", s, util.DefaultPalette(), true) // noColor

    wants := []string{"[Modified]", "[Read-only]", "[groovy]", "[Ln 2]", "[Ch 10]"}
    for _, w := range wants {
        if !strings.Contains(out, w) {
            t.Fatalf("expected %q in output: %s", w, out)
        }
    }
}
