package console

import (
	"context"

	"script-console/internal/consoleapi"
)

// Editor is the code-editing surface the controller drives.
type Editor interface {
	Value() string
	SetValue(text string)
	SetReadOnly(readOnly bool)
	SetMode(mode string)
	SetTheme(theme string)
}

// Bounded is implemented by editors that cannot hold arbitrarily large text.
// Fits reports why text would not be kept whole.
type Bounded interface {
	Fits(text string) error
}

// Dialogs opens the file-browse and save-as dialogs. Completion arrives later
// through Controller.ScriptChosen, Controller.FilenameChosen or
// Controller.DialogDismissed.
type Dialogs interface {
	ShowOpen()
	ShowSave()
}

// Backend is the remote execute/load/save service.
type Backend interface {
	Execute(ctx context.Context, script string) (consoleapi.ExecutionResult, error)
	Load(ctx context.Context, path string) (string, error)
	Save(ctx context.Context, fileName, content string) error
}

// MemoryEditor is an Editor without a screen, used by headless commands.
type MemoryEditor struct {
	text     string
	readOnly bool
	mode     string
	theme    string
}

func (e *MemoryEditor) Value() string { return e.text }
func (e *MemoryEditor) SetValue(text string) { e.text = text }
func (e *MemoryEditor) SetReadOnly(ro bool) { e.readOnly = ro }
func (e *MemoryEditor) SetMode(mode string) { e.mode = mode }
func (e *MemoryEditor) SetTheme(theme string) { e.theme = theme }
func (e *MemoryEditor) ReadOnly() bool { return e.readOnly }
func (e *MemoryEditor) Mode() string { return e.mode }
func (e *MemoryEditor) Theme() string { return e.theme }
