package editor

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/bubbles/textarea"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "script-console/internal/tui/util"
)

// MaxLines is the most lines the buffer holds; textarea drops the rest.
const MaxLines = 10000

// Editor is the script buffer. It satisfies console.Editor and console.Bounded.
//
// textarea rewrites tabs and carriage returns on input, so the text last set
// is kept verbatim and returned by Value until the buffer is edited.
type Editor struct {
    area     textarea.Model
    raw      string
    edited   bool
    readOnly bool
    mode     string
    theme    string
    palette  util.Palette
}

func NewEditor() *Editor {
    ta := textarea.New()
    ta.CharLimit = 0
    ta.MaxHeight = 0
    ta.ShowLineNumbers = true
    ta.Placeholder = "Groovy script..."
    ta.Focus()
    e := &Editor{area: ta}
    e.SetTheme("")
    return e
}

func (e *Editor) Value() string {
    if e.edited {
        return e.area.Value()
    }
    return e.raw
}

func (e *Editor) SetValue(text string) {
    e.raw = text
    e.edited = false
    e.area.SetValue(strings.ReplaceAll(text, "\r\n", "\n"))
    for e.area.Line() > 0 {
        e.area.CursorUp()
    }
    e.area.CursorStart()
}

// Fits reports an error when text has more lines than the buffer holds.
func (e *Editor) Fits(text string) error {
    if n := strings.Count(text, "\n") + 1; n > MaxLines {
        return fmt.Errorf("script has %d lines, the editor holds %d", n, MaxLines)
    }
    return nil
}

// SetReadOnly blocks input while set. The cursor still moves.
func (e *Editor) SetReadOnly(ro bool) { e.readOnly = ro }
func (e *Editor) ReadOnly() bool { return e.readOnly }

func (e *Editor) SetMode(mode string) { e.mode = mode }
func (e *Editor) Mode() string { return e.mode }

// SetTheme restyles the buffer. Unknown themes fall back to the default palette.
func (e *Editor) SetTheme(theme string) {
    th, _ := util.ThemeByID(theme)
    if theme == "" {
        theme = th.ID
    }
    e.theme = theme
    e.palette = th.Palette
    p := th.Palette
    focused, blurred := textarea.DefaultStyles()
    focused.Base = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary)
    focused.Text = lipgloss.NewStyle().Foreground(p.Foreground)
    focused.LineNumber = lipgloss.NewStyle().Foreground(p.Muted)
    focused.CursorLineNumber = lipgloss.NewStyle().Foreground(p.Primary)
    focused.CursorLine = lipgloss.NewStyle().Background(p.MutedDark).Foreground(p.Foreground)
    focused.Placeholder = lipgloss.NewStyle().Foreground(p.Muted)
    blurred.Base = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Muted)
    e.area.FocusedStyle = focused
    e.area.BlurredStyle = blurred
}

func (e *Editor) Theme() string { return e.theme }

// Palette is the palette of the current theme.
func (e *Editor) Palette() util.Palette { return e.palette }

func (e *Editor) SetSize(width, height int) {
    e.area.SetWidth(width)
    e.area.SetHeight(height)
}

// Update forwards keys to the buffer unless it is read-only. Navigation keys
// are still honored while read-only.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
    if km, ok := msg.(tea.KeyMsg); ok && e.readOnly && !navigation(km) {
        return nil
    }
    var before string
    if !e.edited {
        before = e.area.Value()
    }
    var cmd tea.Cmd
    e.area, cmd = e.area.Update(msg)
    if !e.edited && e.area.Value() != before {
        e.edited = true
    }
    return cmd
}

func (e *Editor) View() string { return e.area.View() }

func navigation(k tea.KeyMsg) bool {
    switch k.Type {
    case tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
        tea.KeyHome, tea.KeyEnd, tea.KeyPgUp, tea.KeyPgDown:
        return true
    }
    return false
}
