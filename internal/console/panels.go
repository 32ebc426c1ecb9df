package console

import "script-console/internal/consoleapi"

// Panel is one result surface.
type Panel struct {
	Text    string
	Visible bool
}

func (p *Panel) show(text string) {
	p.Text = text
	p.Visible = true
}

func (p *Panel) clear() { *p = Panel{} }

// Panels holds the notice and result surfaces of the console.
type Panels struct {
	Success     Panel
	Error       Panel
	Stacktrace  Panel
	Result      Panel
	Output      Panel
	RunningTime Panel
}

// Reset clears and hides every surface.
func (p *Panels) Reset() {
	p.Success.clear()
	p.Error.clear()
	p.Stacktrace.clear()
	p.Result.clear()
	p.Output.clear()
	p.RunningTime.clear()
}

// ShowSuccess reveals the success notice. The error notice is left as is.
func (p *Panels) ShowSuccess(message string) { p.Success.show(message) }

// ShowError reveals the error notice. The success notice is left as is.
func (p *Panels) ShowError(message string) { p.Error.show(message) }

// RenderExecution shows either the stacktrace alone, or each non-empty
// field among running time, result and output.
func (p *Panels) RenderExecution(r consoleapi.ExecutionResult) {
	if r.StacktraceText != "" {
		p.Stacktrace.show(r.StacktraceText)
		return
	}
	if r.RunningTime != "" {
		p.RunningTime.show(r.RunningTime)
	}
	if r.ExecutionResult != "" {
		p.Result.show(r.ExecutionResult)
	}
	if r.OutputText != "" {
		p.Output.show(r.OutputText)
	}
}

// AnyVisible reports whether at least one surface is shown.
func (p Panels) AnyVisible() bool {
	for _, pn := range []Panel{p.Success, p.Error, p.Stacktrace, p.Result, p.Output, p.RunningTime} {
		if pn.Visible {
			return true
		}
	}
	return false
}

// Primary returns the label and text of the most relevant visible result
// surface (stacktrace, then result, then output).
func (p Panels) Primary() (string, string, bool) {
	switch {
	case p.Stacktrace.Visible:
		return "stacktrace", p.Stacktrace.Text, true
	case p.Result.Visible:
		return "result", p.Result.Text, true
	case p.Output.Visible:
		return "output", p.Output.Text, true
	}
	return "", "", false
}
