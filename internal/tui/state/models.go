package state

// Overlay is the panel drawn over the console, if any.
type Overlay int

const (
    NONE Overlay = iota
    HELP
    THEMES
    DIFF
    OPEN
    SAVE
)

// DiffMode controls how the diff is rendered.
type DiffMode int

const (
    Unified DiffMode = iota
    SideBySide
)

// UIState holds cross-widget UI state used by status bar, diff, and dialogs.
type UIState struct {
    Overlay Overlay
    View    DiffMode

    // Layout & scrolling
    Width   int
    Height  int
    MinCol  int
    ScrollV int

    // Theme menu cursor, an index into util.Themes().
    ThemeCursor int

    // Editor flags mirrored for the status line.
    ReadOnly bool
    Mode     string

    // Notices and ephemeral messages
    Notice string
}
