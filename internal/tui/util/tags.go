package util

import (
    "strings"
    "unicode/utf8"

    "script-console/internal/tui/state"
)

// ComputeTags calculates the status chips for the editor given the baseline
// (last loaded or saved) text, the current text, and the editor flags.
//
// The returned slice preserves a stable order:
//   Modified, Read-only, Mode, Lines, Chars
//
// Lines and Chars are always included; Mode only when set.
func ComputeTags(baseline, current string, readOnly bool, mode string) []state.Tag {
    tags := make([]state.Tag, 0, 5)
    if baseline != current {
        tags = append(tags, state.Tag{Kind: state.MODIFIED})
    }
    if readOnly {
        tags = append(tags, state.Tag{Kind: state.READ_ONLY})
    }
    if mode != "" {
        tags = append(tags, state.Tag{Kind: state.MODE, Text: mode})
    }
    tags = append(tags, state.Tag{Kind: state.LINES, Value: lineCount(current)})
    tags = append(tags, state.Tag{Kind: state.CHARS, Value: utf8.RuneCountInString(current)})
    return tags
}

// lineCount counts lines the way an editor gutter does: an empty buffer has
// one line and a trailing newline opens another.
func lineCount(s string) int {
    return strings.Count(s, "\n") + 1
}
