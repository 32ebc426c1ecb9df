package util

import (
    "testing"

    "script-console/internal/tui/state"
)

func findKind(tags []state.Tag, k state.TagKind) (idx int, ok bool) {
    for i, t := range tags {
        if t.Kind == k {
            return i, true
        }
    }
    return -1, false
}

func TestModifiedOnlyWhenDiverged(t *testing.T) {
    tags := ComputeTags("a", "a", false, "")
    if _, ok := findKind(tags, state.MODIFIED); ok {
        t.Fatalf("did not expect MODIFIED for identical text")
    }
    tags = ComputeTags("a", "b", false, "")
    if _, ok := findKind(tags, state.MODIFIED); !ok {
        t.Fatalf("expected MODIFIED tag present")
    }
}

func TestCounters(t *testing.T) {
    tags := ComputeTags("", "héllo\nwörld\n", false, "groovy")
    if idx, ok := findKind(tags, state.LINES); !ok || tags[idx].Value != 3 {
        t.Fatalf("expected LINES 3, got %+v", tags)
    }
    if idx, ok := findKind(tags, state.CHARS); !ok || tags[idx].Value != 12 {
        t.Fatalf("expected CHARS counted in runes, got %+v", tags)
    }
    if idx, ok := findKind(tags, state.MODE); !ok || tags[idx].Text != "groovy" {
        t.Fatalf("expected MODE groovy")
    }
    if idx, ok := findKind(ComputeTags("", "", false, ""), state.LINES); !ok {
        t.Fatalf("expected LINES on empty buffer")
    } else if ComputeTags("", "", false, "")[idx].Value != 1 {
        t.Fatalf("expected an empty buffer to have one line")
    }
}

func TestStableOrder(t *testing.T) {
    tags := ComputeTags("x", "y", true, "groovy")
    order := []state.TagKind{state.MODIFIED, state.READ_ONLY, state.MODE, state.LINES, state.CHARS}
    if len(tags) != len(order) {
        t.Fatalf("expected %d tags, got %d", len(order), len(tags))
    }
    for i, k := range order {
        if tags[i].Kind != k {
            t.Fatalf("tag %d is %v, want %v", i, tags[i].Kind, k)
        }
    }
}

func TestThemeLookup(t *testing.T) {
    if _, ok := ThemeByID("ace/theme/monokai"); !ok {
        t.Fatalf("expected monokai to be known")
    }
    th, ok := ThemeByID("ace/theme/nope")
    if ok || th.ID != "ace/theme/solarized_dark" {
        t.Fatalf("expected fallback to solarized dark, got %+v", th)
    }
    if ThemeIndex("ace/theme/solarized_dark") < 0 || len(Themes()) == 0 {
        t.Fatalf("expected default theme in menu")
    }
}
