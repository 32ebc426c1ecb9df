package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"script-console/internal/config"
	"script-console/internal/console"
	"script-console/internal/prefs"
	"script-console/internal/tui/state"
	"script-console/internal/tui/util"
	"script-console/internal/tui/views/help"
	"script-console/internal/tui/views/status"
	"script-console/internal/tui/views/toolbar"
	editorw "script-console/internal/tui/widgets/editor"
	"script-console/internal/tui/widgets/statusbar"
)

// Options configure the interactive console.
type Options struct {
	Context context.Context
	Config  config.Config
	Backend console.Backend
	// Prefs persists the theme and recent paths. Nil disables persistence.
	Prefs   *prefs.Store
	Logger  pslog.Logger
	NoColor bool
}

// Run shows the console until the user quits or ctx ends.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err = p.Run()
	m.ctl.Cancel()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return m.ctx.Err()
	}
	return err
}

// ===== Model =====

type model struct {
	ctx     context.Context
	log     pslog.Logger
	cfg     config.Config
	noColor bool

	queue  *console.Queue
	ctl    *console.Controller
	editor *editorw.Editor
	bar    statusbar.StatusBar
	ui     state.UIState

	dialog   dialog
	store    *prefs.Store
	prefs    prefs.Prefs
	baseline string

	// spin is set when the toolbar turns busy and the spinner must be started.
	spin     bool
	spinning bool
}

func newModel(opts Options) (*model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	m := &model{
		ctx:     ctx,
		log:     log,
		cfg:     opts.Config,
		noColor: util.NoColor(opts.NoColor),
		queue:   console.NewQueue(0),
		editor:  editorw.NewEditor(),
		bar:     statusbar.NewStatusBar(),
		store:   opts.Prefs,
		ui:      state.UIState{MinCol: 20},
	}
	ctl, err := console.New(console.Options{
		Context: ctx,
		Editor:  m.editor,
		Dialogs: m,
		Backend: opts.Backend,
		Loop:    m.queue,
		Logger:  log,
		Timeout: opts.Config.Timeout,
		Hooks: console.Hooks{
			Loaded: m.loaded,
			Saved:  m.saved,
		},
	})
	if err != nil {
		return nil, err
	}
	m.ctl = ctl
	ctl.Toolbar().OnChange(func(s console.ToolbarState) {
		if s == console.Busy {
			m.spin = true
		}
		m.log.Debug("toolbar state changed", "state", s.String())
	})

	m.loadPrefs()
	m.editor.SetMode(m.cfg.Mode)
	return m, nil
}

func (m *model) Init() tea.Cmd { return waitPosted(m.queue) }

// ShowOpen implements console.Dialogs.
func (m *model) ShowOpen() { m.openDialog(state.OPEN) }

// ShowSave implements console.Dialogs.
func (m *model) ShowSave() { m.openDialog(state.SAVE) }

// Update handles all TUI interactions.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case postedMsg:
		msg()
		cmds = append(cmds, waitPosted(m.queue))
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.layout()
	case spinner.TickMsg:
		if !m.ctl.Busy() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.bar.Spinner, cmd = m.bar.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		if cmd, quit := m.handleKey(msg); quit {
			return m, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.ui.ReadOnly = m.editor.ReadOnly()
	m.ui.Mode = m.editor.Mode()
	if m.spin {
		m.spin = false
		if !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.bar.Spinner.Tick)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	k := msg.String()
	if k == "ctrl+c" {
		m.ctl.Cancel()
		return nil, true
	}
	if state.Dialog(m.ui) {
		return m.updateDialog(msg), false
	}
	if msg.Paste {
		if m.pasteDrop(string(msg.Runes)) {
			return nil, false
		}
		return m.editor.Update(msg), false
	}

	switch m.ui.Overlay {
	case state.THEMES:
		m.updateThemes(k)
		return nil, false
	case state.HELP, state.DIFF:
		if m.updateScroll(k) {
			return nil, false
		}
	}

	switch k {
	case "f1":
		m.ui = state.Toggle(m.ui, state.HELP)
	case "ctrl+t":
		m.openThemes()
	case "ctrl+d":
		m.ui = state.Toggle(m.ui, state.DIFF)
	case "esc":
		m.ui = state.Close(m.ui)
	case "ctrl+n":
		if !m.ctl.Busy() {
			m.ctl.New()
			m.baseline = ""
		}
	case "ctrl+o":
		m.ctl.Open()
	case "ctrl+s":
		m.ctl.Save()
	case "ctrl+r", "f5":
		m.ctl.Run()
	case "ctrl+x":
		if m.ctl.Cancel() {
			m.ui = state.SetNotice(m.ui, "Cancelling request")
		}
	case "ctrl+y":
		m.copyPrimary()
	default:
		if m.ui.Overlay != state.NONE {
			return nil, false
		}
		return m.editor.Update(msg), false
	}
	return nil, false
}

func (m *model) updateScroll(k string) bool {
	switch k {
	case "up", "k":
		m.ui = state.ScrollUp(m.ui, false)
	case "down", "j":
		m.ui = state.ScrollDown(m.ui, false)
	case "pgup":
		m.ui = state.ScrollUp(m.ui, true)
	case "pgdown":
		m.ui = state.ScrollDown(m.ui, true)
	case "v":
		if m.ui.Overlay != state.DIFF {
			return false
		}
		m.ui = state.ToggleView(m.ui)
		m.ui = state.Resize(m.ui, m.ui.Width, m.ui.Height)
	default:
		return false
	}
	return true
}

// layout sizes the editor to what the chrome and visible panels leave.
func (m *model) layout() {
	w := m.ui.Width - 2
	if w < 20 {
		w = 20
	}
	h := m.ui.Height - 6 - lipgloss.Height(m.panelsView())
	if h < 3 {
		h = 3
	}
	m.editor.SetSize(w, h)
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m *model) View() string {
	m.layout()
	pal := m.editor.Palette()
	th, _ := util.ThemeByID(m.editor.Theme())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Script Console") + "  " + faintStyle.Render(fmt.Sprintf("%s  %s", m.cfg.BaseURL, th.Name)) + "\n")
	b.WriteString(m.bar.View(m.ui, pal, toolbar.RenderOptions(m.ctl.RunLabel()), m.ctl.Toolbar().Enabled(), m.noColor) + "\n")

	switch m.ui.Overlay {
	case state.NONE:
		b.WriteString(m.editor.View() + "\n")
	case state.OPEN, state.SAVE:
		b.WriteString(m.dialogView() + "\n")
	case state.THEMES:
		b.WriteString(boxStyle.Render(m.themesView()) + "\n")
	case state.HELP:
		b.WriteString(boxStyle.Render(m.scrolled(help.RenderHelp(m.ui))) + "\n")
	case state.DIFF:
		b.WriteString(boxStyle.Render(m.scrolled(m.diffView())) + "\n")
	}
	b.WriteString(status.RenderTags(m.baseline, m.editor.Value(), m.ui, pal, m.noColor))
	if m.ctl.DropZone().Reading() {
		b.WriteString("  " + faintStyle.Render("reading dropped file"))
	}
	b.WriteString("\n")
	if p := m.panelsView(); p != "" {
		b.WriteString(p + "\n")
	}
	return b.String()
}

// scrolled cuts s to the overlay viewport.
func (m *model) scrolled(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	start := m.ui.ScrollV
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	lines = lines[start:]
	if limit := m.ui.Height - 10; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

// now is replaced in tests.
var now = time.Now
