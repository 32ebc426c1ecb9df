package console

import (
	"context"
	"errors"
	"strings"
	"time"

	"pkt.systems/pslog"

	"script-console/internal/consoleapi"
)

const (
	RunLabelIdle    = "Run Script"
	RunLabelRunning = "Running..."

	MsgScriptEmpty  = "Script is empty."
	MsgLoaded       = "Script loaded successfully."
	MsgLoadFailed   = "Load failed, check error.log file."
	MsgSaved        = "Script saved successfully."
	MsgSaveFailed   = "Save failed, check error.log file."
	MsgRunFailed    = "Script execution failed.  Check error.log file."
	MsgNoScriptPath = "No script selected."
	MsgTooLarge     = "Script is too large for the editor."
)

// RunPhase is the position of the run action in its lifecycle.
type RunPhase int

const (
	RunIdle RunPhase = iota
	RunSubmitting
	RunRendering
	RunErrorShown
)

func (p RunPhase) String() string {
	switch p {
	case RunIdle:
		return "idle"
	case RunSubmitting:
		return "submitting"
	case RunRendering:
		return "rendering"
	case RunErrorShown:
		return "error"
	default:
		return "unknown"
	}
}

// Hooks observe successful operations. All run on the Loop.
type Hooks struct {
	Loaded   func(path, text string)
	Saved    func(fileName, content string)
	Executed func(result consoleapi.ExecutionResult)
}

// Options wires a Controller. Editor, Dialogs, Backend and Loop are required.
type Options struct {
	Context context.Context
	Editor  Editor
	Dialogs Dialogs
	Backend Backend
	Loop    Loop
	Logger  pslog.Logger
	// Timeout bounds each execute/load/save request; zero means none.
	Timeout time.Duration
	Hooks   Hooks
}

// Controller orchestrates the console actions. Every method must be called
// from the UI loop that drains Options.Loop.
type Controller struct {
	ctx     context.Context
	editor  Editor
	dialogs Dialogs
	backend Backend
	loop    Loop
	log     pslog.Logger
	timeout time.Duration
	hooks   Hooks

	toolbar  *Toolbar
	panels   Panels
	drop     *DropZone
	runLabel string
	phase    RunPhase
	inflight *Task
}

// New validates opts and returns an idle controller.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Editor == nil:
		return nil, errors.New("console: editor is required")
	case opts.Dialogs == nil:
		return nil, errors.New("console: dialogs are required")
	case opts.Backend == nil:
		return nil, errors.New("console: backend is required")
	case opts.Loop == nil:
		return nil, errors.New("console: loop is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	c := &Controller{
		ctx:      ctx,
		editor:   opts.Editor,
		dialogs:  opts.Dialogs,
		backend:  opts.Backend,
		loop:     opts.Loop,
		log:      log,
		timeout:  opts.Timeout,
		hooks:    opts.Hooks,
		toolbar:  NewToolbar(),
		runLabel: RunLabelIdle,
	}
	c.drop = newDropZone(c)
	return c, nil
}

func (c *Controller) Toolbar() *Toolbar { return c.toolbar }
func (c *Controller) Panels() Panels { return c.panels }
func (c *Controller) DropZone() *DropZone { return c.drop }
func (c *Controller) RunLabel() string { return c.runLabel }
func (c *Controller) RunPhase() RunPhase { return c.phase }
func (c *Controller) InFlight() bool { return c.inflight != nil }

// Busy reports whether the toolbar is disabled.
func (c *Controller) Busy() bool { return c.toolbar.Busy() }

// New clears the editor.
func (c *Controller) New() {
	if c.toolbar.Busy() {
		return
	}
	c.panels.Reset()
	c.editor.SetValue("")
	c.log.Debug("console new")
}

// Open disables the toolbar and shows the file-browse dialog.
func (c *Controller) Open() {
	if c.toolbar.Busy() {
		return
	}
	c.panels.Reset()
	c.toolbar.Disable()
	c.dialogs.ShowOpen()
}

// ScriptChosen completes the open dialog.
func (c *Controller) ScriptChosen(path string) *Task {
	path = strings.TrimSpace(path)
	if path == "" {
		c.panels.ShowError(MsgNoScriptPath)
		c.toolbar.Enable()
		return nil
	}
	return c.Load(path)
}

// Load replaces the editor text with the script stored at path.
func (c *Controller) Load(path string) *Task {
	if c.inflight != nil {
		return nil
	}
	log := c.log.With("op", "load", "path", path)
	c.toolbar.Disable()
	c.inflight = Go(c.ctx, c.loop, c.timeout, func(ctx context.Context) (string, error) {
		return c.backend.Load(ctx, path)
	}, Handlers[string]{
		OnSuccess: func(text string) {
			if err := c.replaceText(text); err != nil {
				c.panels.ShowError(MsgTooLarge)
				log.Warn("loaded script not shown", "err", err)
				return
			}
			c.panels.ShowSuccess(MsgLoaded)
			log.Info("script loaded", "bytes", len(text))
			if c.hooks.Loaded != nil {
				c.hooks.Loaded(path, text)
			}
		},
		OnFailure: func(err error) {
			c.panels.ShowError(MsgLoadFailed)
			log.Warn("script load failed", "err", err)
		},
		OnSettled: c.settle,
	})
	log.Debug("load submitted", "task", c.inflight.ID())
	return c.inflight
}

// Save disables the toolbar and shows the save dialog, unless the editor is empty.
func (c *Controller) Save() {
	if c.toolbar.Busy() {
		return
	}
	c.panels.Reset()
	if c.editor.Value() == "" {
		c.panels.ShowError(MsgScriptEmpty)
		return
	}
	c.toolbar.Disable()
	c.dialogs.ShowSave()
}

// FilenameChosen completes the save dialog.
func (c *Controller) FilenameChosen(name string) *Task {
	name = strings.TrimSpace(name)
	if name == "" {
		c.DialogDismissed()
		return nil
	}
	return c.SaveAs(name)
}

// SaveAs stores the current editor text under fileName.
func (c *Controller) SaveAs(fileName string) *Task {
	if c.inflight != nil {
		return nil
	}
	content := c.editor.Value()
	log := c.log.With("op", "save", "file", fileName)
	c.toolbar.Disable()
	c.inflight = Go(c.ctx, c.loop, c.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.backend.Save(ctx, fileName, content)
	}, Handlers[struct{}]{
		OnSuccess: func(struct{}) {
			c.panels.ShowSuccess(MsgSaved)
			log.Info("script saved", "bytes", len(content))
			if c.hooks.Saved != nil {
				c.hooks.Saved(fileName, content)
			}
		},
		OnFailure: func(err error) {
			c.panels.ShowError(MsgSaveFailed)
			log.Warn("script save failed", "err", err)
		},
		OnSettled: c.settle,
	})
	log.Debug("save submitted", "task", c.inflight.ID())
	return c.inflight
}

// DialogDismissed closes either dialog without a choice and restores the toolbar.
func (c *Controller) DialogDismissed() {
	if c.inflight != nil {
		return
	}
	c.toolbar.Enable()
}

// Run submits the editor text for execution. It returns nil when nothing was
// submitted (busy toolbar or empty script).
func (c *Controller) Run() *Task {
	if c.toolbar.Busy() {
		return nil
	}
	c.panels.Reset()
	script := c.editor.Value()
	if script == "" {
		c.panels.ShowError(MsgScriptEmpty)
		return nil
	}
	c.editor.SetReadOnly(true)
	c.toolbar.Disable()
	c.runLabel = RunLabelRunning
	c.phase = RunSubmitting

	log := c.log.With("op", "run")
	started := time.Now()
	c.inflight = Go(c.ctx, c.loop, c.timeout, func(ctx context.Context) (consoleapi.ExecutionResult, error) {
		return c.backend.Execute(ctx, script)
	}, Handlers[consoleapi.ExecutionResult]{
		OnSuccess: func(r consoleapi.ExecutionResult) {
			c.phase = RunRendering
			c.panels.RenderExecution(r)
			log.Info("script executed", "failed", r.Failed(), "running_time", r.RunningTime, "elapsed", time.Since(started).String())
			if c.hooks.Executed != nil {
				c.hooks.Executed(r)
			}
		},
		OnFailure: func(err error) {
			c.phase = RunErrorShown
			c.panels.ShowError(MsgRunFailed)
			log.Warn("script execution request failed", "err", err)
		},
		OnSettled: func() {
			c.editor.SetReadOnly(false)
			c.runLabel = RunLabelIdle
			c.settle()
		},
	})
	log.Debug("run submitted", "task", c.inflight.ID(), "bytes", len(script))
	return c.inflight
}

// Cancel aborts the in-flight request, if any. It settles through the
// failure path like any other request error.
func (c *Controller) Cancel() bool {
	if c.inflight == nil {
		return false
	}
	c.log.Info("cancelling request", "task", c.inflight.ID())
	c.inflight.Cancel()
	return true
}

// replaceText swaps the editor text, refusing text a bounded editor would cut.
func (c *Controller) replaceText(text string) error {
	if b, ok := c.editor.(Bounded); ok {
		if err := b.Fits(text); err != nil {
			return err
		}
	}
	c.editor.SetValue(text)
	return nil
}

func (c *Controller) settle() {
	c.inflight = nil
	c.phase = RunIdle
	c.toolbar.Enable()
}

// Settle drains q until the controller is idle or ctx ends. On ctx end the
// in-flight request is cancelled and its settlement still drained.
func Settle(ctx context.Context, q *Queue, c *Controller) error {
	done := ctx.Done()
	var cause error
	for c.Busy() || c.InFlight() || c.drop.Reading() {
		select {
		case fn := <-q.C():
			fn()
		case <-done:
			cause = ctx.Err()
			done = nil
			cancelled := c.Cancel()
			if c.drop.Cancel() {
				cancelled = true
			}
			if !cancelled {
				return cause
			}
		}
	}
	return cause
}
