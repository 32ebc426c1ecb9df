package state

// TagKind enumerates the status chips shown under the editor.
type TagKind int

const (
    // Stable ordering for display: Modified, Read-only, Mode, Lines, Chars
    MODIFIED TagKind = iota
    READ_ONLY
    MODE
    LINES
    CHARS
)

// Tag represents a single status chip. Value is used for numeric counters;
// Text carries a label for MODE. Other tags leave both zero.
type Tag struct {
    Kind  TagKind
    Value int
    Text  string
}
