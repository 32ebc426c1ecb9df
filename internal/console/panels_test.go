package console

import (
	"testing"

	"script-console/internal/consoleapi"
)

func TestRenderExecutionFieldsAreIndependent(t *testing.T) {
	cases := []struct {
		name                 string
		in                   consoleapi.ExecutionResult
		result, output, time bool
	}{
		{"result only", consoleapi.ExecutionResult{ExecutionResult: "2"}, true, false, false},
		{"output only", consoleapi.ExecutionResult{OutputText: "hi"}, false, true, false},
		{"time only", consoleapi.ExecutionResult{RunningTime: "1ms"}, false, false, true},
		{"all", consoleapi.ExecutionResult{ExecutionResult: "2", OutputText: "hi", RunningTime: "1ms"}, true, true, true},
		{"none", consoleapi.ExecutionResult{}, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Panels
			p.RenderExecution(tc.in)
			if p.Result.Visible != tc.result || p.Output.Visible != tc.output || p.RunningTime.Visible != tc.time {
				t.Fatalf("unexpected visibility: %+v", p)
			}
			if p.Stacktrace.Visible {
				t.Fatalf("stacktrace must stay hidden without a trace")
			}
		})
	}
}

func TestRenderExecutionStacktraceExcludesOthers(t *testing.T) {
	var p Panels
	p.RenderExecution(consoleapi.ExecutionResult{StacktraceText: "boom", ExecutionResult: "x", OutputText: "y", RunningTime: "z"})
	if !p.Stacktrace.Visible || p.Result.Visible || p.Output.Visible || p.RunningTime.Visible {
		t.Fatalf("expected stacktrace alone, got %+v", p)
	}
	if label, text, ok := p.Primary(); !ok || label != "stacktrace" || text != "boom" {
		t.Fatalf("unexpected primary panel: %s %q %v", label, text, ok)
	}
}

func TestNoticesDoNotClearEachOther(t *testing.T) {
	var p Panels
	p.ShowSuccess("ok")
	p.ShowError("bad")
	if !p.Success.Visible || !p.Error.Visible {
		t.Fatalf("expected both notices visible until Reset")
	}
	p.Reset()
	if p.AnyVisible() || p.Success.Text != "" || p.Error.Text != "" {
		t.Fatalf("expected Reset to clear everything: %+v", p)
	}
}
