package console

// ToolbarState is the availability of the console actions (new/open/save/run).
type ToolbarState int

const (
	// Idle: every action is interactive and the busy indicator is hidden.
	Idle ToolbarState = iota
	// Busy: every action is inert and the busy indicator is shown.
	Busy
)

func (s ToolbarState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// Toolbar tracks the shared toolbar state. It is only touched from the UI loop.
type Toolbar struct {
	state       ToolbarState
	transitions int
	onChange    func(ToolbarState)
}

// NewToolbar returns a toolbar in the Idle state.
func NewToolbar() *Toolbar { return &Toolbar{state: Idle} }

// State returns the current state.
func (t *Toolbar) State() ToolbarState { return t.state }

// Enabled reports whether actions are interactive.
func (t *Toolbar) Enabled() bool { return t.state == Idle }

// Busy reports whether the busy indicator is shown.
func (t *Toolbar) Busy() bool { return t.state == Busy }

// Transitions counts actual state changes (repeated calls do not count).
func (t *Toolbar) Transitions() int { return t.transitions }

// OnChange registers fn to be called after every actual state change.
func (t *Toolbar) OnChange(fn func(ToolbarState)) { t.onChange = fn }

// Disable makes every action inert and reveals the busy indicator.
func (t *Toolbar) Disable() { t.set(Busy) }

// Enable hides the busy indicator and restores every action.
func (t *Toolbar) Enable() { t.set(Idle) }

func (t *Toolbar) set(s ToolbarState) {
	if t.state == s {
		return
	}
	t.state = s
	t.transitions++
	if t.onChange != nil {
		t.onChange(s)
	}
}
