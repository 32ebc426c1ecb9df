package tui

import (
    "strings"

    "github.com/charmbracelet/bubbles/textinput"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "script-console/internal/prefs"
    "script-console/internal/tui/state"
    "script-console/internal/tui/util"
)

// dialog is the open or save-as prompt.
type dialog struct {
    input textinput.Model
}

func (m *model) openDialog(kind state.Overlay) {
    in := textinput.New()
    in.CharLimit = 0
    in.Width = 60
    switch kind {
    case state.OPEN:
        in.Prompt = "Script path: "
        in.Placeholder = "/etc/groovyconsole/scripts/example.groovy"
    case state.SAVE:
        in.Prompt = "File name: "
        in.Placeholder = "example.groovy"
    }
    in.ShowSuggestions = true
    in.SetSuggestions(m.prefs.Recent)
    in.Focus()
    m.dialog = dialog{input: in}
    m.ui = state.Open(m.ui, kind)
}

// updateDialog routes keys to the prompt. Enter completes it, Esc dismisses it.
func (m *model) updateDialog(msg tea.KeyMsg) tea.Cmd {
    kind := m.ui.Overlay
    switch msg.String() {
    case "enter":
        v := strings.TrimSpace(m.dialog.input.Value())
        m.ui = state.Close(m.ui)
        if kind == state.OPEN {
            m.ctl.ScriptChosen(v)
        } else {
            m.ctl.FilenameChosen(v)
        }
        return nil
    case "esc":
        m.ui = state.Close(m.ui)
        m.ctl.DialogDismissed()
        return nil
    }
    var cmd tea.Cmd
    m.dialog.input, cmd = m.dialog.input.Update(msg)
    return cmd
}

func (m *model) dialogView() string {
    title := "Open script"
    if m.ui.Overlay == state.SAVE {
        title = "Save script as"
    }
    var b strings.Builder
    b.WriteString(titleStyle.Render(title) + "\n\n")
    b.WriteString(m.dialog.input.View() + "\n")
    if len(m.prefs.Recent) > 0 {
        b.WriteString("\nRecent:\n")
        for _, r := range m.prefs.Recent {
            b.WriteString(faintStyle.Render("  • ") + r + "\n")
        }
    }
    b.WriteString("\nenter: confirm   tab: complete   esc: cancel")
    return boxStyle.Render(b.String())
}

// ===== Themes =====

func (m *model) openThemes() {
    if m.ui.Overlay == state.THEMES {
        m.ui = state.Close(m.ui)
        return
    }
    m.ui = state.Open(m.ui, state.THEMES)
    if i := util.ThemeIndex(m.editor.Theme()); i >= 0 {
        m.ui.ThemeCursor = i
    }
}

func (m *model) updateThemes(k string) {
    themes := util.Themes()
    switch k {
    case "up", "k":
        m.ui = state.MoveThemeCursor(m.ui, -1, len(themes))
    case "down", "j":
        m.ui = state.MoveThemeCursor(m.ui, 1, len(themes))
    case "enter":
        if m.ui.ThemeCursor >= 0 && m.ui.ThemeCursor < len(themes) {
            m.selectTheme(themes[m.ui.ThemeCursor].ID)
        }
        m.ui = state.Close(m.ui)
    case "esc", "ctrl+t", "q":
        m.ui = state.Close(m.ui)
    }
}

func (m *model) selectTheme(id string) {
    m.editor.SetTheme(id)
    m.persist(func(p *prefs.Prefs) { p.SetTheme(id, now()) })
    m.log.Info("theme selected", "theme", id)
}

func (m *model) themesView() string {
    var b strings.Builder
    b.WriteString(titleStyle.Render("Themes") + "\n")
    active := m.editor.Theme()
    for i, t := range util.Themes() {
        mark := "  "
        if t.ID == active {
            mark = "✓ "
        }
        line := mark + t.Name
        if i == m.ui.ThemeCursor {
            line = selStyle.Render("> " + line)
        } else {
            line = "  " + line
        }
        swatch := lipgloss.NewStyle().Background(t.Palette.Background).Foreground(t.Palette.Primary).Render(" Aa ")
        if m.noColor {
            swatch = ""
        }
        b.WriteString(line + " " + swatch + "\n")
    }
    b.WriteString("\n↑/↓: move   enter: apply   esc: close")
    return b.String()
}

// ===== Preferences =====

// loadPrefs applies the remembered theme, or the configured one when none is
// remembered or it has expired.
func (m *model) loadPrefs() {
    theme := m.cfg.Theme
    if m.store != nil {
        p, err := m.store.Load()
        if err != nil {
            m.log.Warn("preferences not loaded", "err", err)
        } else {
            m.prefs = p
            if t := p.EffectiveTheme(now()); t != "" {
                theme = t
            }
        }
    }
    m.editor.SetTheme(theme)
}

// persist applies fn to the in-memory prefs and stores them when a store is set.
func (m *model) persist(fn func(*prefs.Prefs)) {
    fn(&m.prefs)
    if m.store == nil {
        return
    }
    if err := m.store.Save(m.prefs); err != nil {
        m.log.Warn("preferences not saved", "err", err)
    }
}

func (m *model) loaded(path, text string) {
    m.baseline = text
    m.persist(func(p *prefs.Prefs) { p.Remember(path) })
}

func (m *model) saved(fileName, content string) {
    m.baseline = content
    m.persist(func(p *prefs.Prefs) { p.Remember(fileName) })
}
