package diff

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"
    dmp "github.com/sergi/go-diff/diffmatchpatch"

    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
)

type DiffView struct {
    Palette util.Palette
    NoColor bool
}

func NewDiffView(p util.Palette, noColor bool) DiffView {
    return DiffView{Palette: p, NoColor: util.NoColor(noColor)}
}

// Op is the kind of a diffed line.
type Op int

const (
    Equal Op = iota
    Delete
    Insert
)

// Line is one line of a line-level diff.
type Line struct {
    Op   Op
    Text string
}

// Lines computes a line-level diff of before against after.
func Lines(before, after string) []Line {
    d := dmp.New()
    a, b, index := d.DiffLinesToChars(before, after)
    diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), index)
    var out []Line
    for _, df := range diffs {
        op := Equal
        switch df.Type {
        case dmp.DiffDelete:
            op = Delete
        case dmp.DiffInsert:
            op = Insert
        }
        text := strings.TrimSuffix(df.Text, "\n")
        for _, l := range strings.Split(text, "\n") {
            out = append(out, Line{Op: op, Text: l})
        }
    }
    return out
}

// View renders the diff of the baseline against the editor text. For
// SideBySide it aligns two columns with a vertical separator. For Unified it
// prefixes lines with +/- markers.
func (v DiffView) View(s state.UIState, baseline, current string) string {
    if baseline == current {
        return "No changes\n"
    }
    if s.View == state.SideBySide {
        return v.sideBySide(baseline, current, s)
    }
    return v.unified(baseline, current)
}

func (v DiffView) styles() (del, add, delChar, addChar, faint lipgloss.Style) {
    if v.NoColor {
        plain := lipgloss.NewStyle()
        return plain, plain, plain, plain, plain
    }
    del = lipgloss.NewStyle().Foreground(v.Palette.Danger)
    add = lipgloss.NewStyle().Foreground(v.Palette.Success)
    return del, add, del.Underline(true), add.Underline(true), lipgloss.NewStyle().Faint(true)
}

func (v DiffView) unified(baseline, current string) string {
    del, add, _, _, faint := v.styles()
    var b strings.Builder
    b.WriteString("BASELINE vs EDITOR (Unified)\n")
    for _, l := range Lines(baseline, current) {
        switch l.Op {
        case Delete:
            b.WriteString(del.Render("- "+l.Text) + "\n")
        case Insert:
            b.WriteString(add.Render("+ "+l.Text) + "\n")
        default:
            b.WriteString(faint.Render("  "+l.Text) + "\n")
        }
    }
    return b.String()
}

// row is one side-by-side line; deletes and inserts of the same hunk share rows.
type row struct {
    left, right       string
    hasLeft, hasRight bool
    changed           bool
}

func rows(lines []Line) []row {
    var out []row
    var dels, ins []string
    flush := func() {
        n := len(dels)
        if len(ins) > n {
            n = len(ins)
        }
        for i := 0; i < n; i++ {
            r := row{changed: true}
            if i < len(dels) {
                r.left, r.hasLeft = dels[i], true
            }
            if i < len(ins) {
                r.right, r.hasRight = ins[i], true
            }
            out = append(out, r)
        }
        dels, ins = nil, nil
    }
    for _, l := range lines {
        switch l.Op {
        case Delete:
            dels = append(dels, l.Text)
        case Insert:
            ins = append(ins, l.Text)
        default:
            flush()
            out = append(out, row{left: l.Text, right: l.Text, hasLeft: true, hasRight: true})
        }
    }
    flush()
    return out
}

func (v DiffView) sideBySide(baseline, current string, s state.UIState) string {
    const sep = " │ "
    del, add, delChar, addChar, faint := v.styles()
    var b strings.Builder
    b.WriteString("BASELINE │ EDITOR\n")
    // Compute column width from total width if provided
    colWidth := 40
    if s.Width > 0 {
        colWidth = (s.Width - len(sep)) / 2
        if colWidth < 10 {
            colWidth = 10
        }
    }
    for _, r := range rows(Lines(baseline, current)) {
        l := clip(r.left, colWidth)
        rt := clip(r.right, colWidth)
        if !r.changed {
            fmt.Fprintf(&b, "%s%s%s\n", faint.Render(pad(l, colWidth)), sep, faint.Render(rt))
            continue
        }
        var lbuf, rbuf strings.Builder
        if r.hasLeft && r.hasRight && !v.NoColor {
            // char-level spans on a changed pair
            d := dmp.New()
            diffs := d.DiffMain(l, rt, false)
            d.DiffCleanupSemantic(diffs)
            for _, df := range diffs {
                switch df.Type {
                case dmp.DiffDelete:
                    lbuf.WriteString(delChar.Render(df.Text))
                case dmp.DiffInsert:
                    rbuf.WriteString(addChar.Render(df.Text))
                case dmp.DiffEqual:
                    lbuf.WriteString(del.Render(df.Text))
                    rbuf.WriteString(add.Render(df.Text))
                }
            }
        } else {
            lbuf.WriteString(del.Render(l))
            rbuf.WriteString(add.Render(rt))
        }
        left := lbuf.String() + strings.Repeat(" ", colWidth-len([]rune(l)))
        fmt.Fprintf(&b, "%s%s%s\n", left, sep, rbuf.String())
    }
    return b.String()
}

func clip(s string, width int) string {
    runes := []rune(s)
    if len(runes) > width {
        return string(runes[:width])
    }
    return s
}

func pad(s string, width int) string {
    if w := len([]rune(s)); w < width {
        return s + strings.Repeat(" ", width-w)
    }
    return s
}
