package console

import (
	"context"
	"errors"
	"io"
	"strings"
)

// DropEffect is the feedback a drag gesture gives about what a drop would do.
type DropEffect string

const (
	DropNone DropEffect = "none"
	DropCopy DropEffect = "copy"
)

// ItemKindFile is the kind of a dragged item backed by a file.
const ItemKindFile = "file"

// DragItem is what is known about a dragged item before the drop: its kind
// and, usually empty while dragging, its MIME type.
type DragItem struct {
	Kind string
	Type string
}

// DroppedFile is a file delivered by a drop.
type DroppedFile struct {
	Name string
	Type string
	Open func() (io.ReadCloser, error)
}

// DataTransfer carries the payload of one drag event.
type DataTransfer struct {
	Items         []DragItem
	Files         []DroppedFile
	DropEffect    DropEffect
	EffectAllowed DropEffect
}

// DragEvent is one event of a drag gesture.
type DragEvent struct {
	DataTransfer *DataTransfer

	defaultPrevented   bool
	propagationStopped bool
}

func (e *DragEvent) PreventDefault() { e.defaultPrevented = true }
func (e *DragEvent) StopPropagation() { e.propagationStopped = true }
func (e *DragEvent) DefaultPrevented() bool { return e.defaultPrevented }
func (e *DragEvent) PropagationStopped() bool { return e.propagationStopped }

// DropZone is the editor's drop target. Everything outside it refuses drops.
type DropZone struct {
	c           *Controller
	highlighted bool
	reading     *Task
}

func newDropZone(c *Controller) *DropZone { return &DropZone{c: c} }

// Highlighted reports whether the drop-target outline is shown.
func (z *DropZone) Highlighted() bool { return z.highlighted }

// Reading reports whether a dropped file is still being read.
func (z *DropZone) Reading() bool { return z.reading != nil }

// Cancel aborts a pending file read.
func (z *DropZone) Cancel() bool {
	if z.reading == nil {
		return false
	}
	z.reading.Cancel()
	return true
}

// DocumentDragEnter refuses the drag outside the drop target.
func (z *DropZone) DocumentDragEnter(e *DragEvent) { deny(e) }

// DocumentDragOver refuses the drag outside the drop target.
func (z *DropZone) DocumentDragOver(e *DragEvent) { deny(e) }

func deny(e *DragEvent) {
	e.StopPropagation()
	e.PreventDefault()
	if dt := e.DataTransfer; dt != nil {
		dt.EffectAllowed = DropNone
		dt.DropEffect = DropNone
	}
}

// DragOver accepts a single file of not-yet-known type. It reports whether
// the drag was accepted; otherwise the event is left untouched.
func (z *DropZone) DragOver(e *DragEvent) bool {
	dt := e.DataTransfer
	if dt == nil || len(dt.Items) != 1 {
		return false
	}
	it := dt.Items[0]
	if !(it.Type == "" && it.Kind == ItemKindFile) {
		return false
	}
	e.StopPropagation()
	e.PreventDefault()
	dt.DropEffect = DropCopy
	z.highlighted = true
	return true
}

// DragLeave removes the highlight.
func (z *DropZone) DragLeave(e *DragEvent) { z.highlighted = false }

// Drop reads a single text file into the editor. Anything else is ignored.
// The returned task is nil when the drop was ignored.
func (z *DropZone) Drop(e *DragEvent) *Task {
	defer func() { z.highlighted = false }()

	dt := e.DataTransfer
	if dt == nil || len(dt.Files) != 1 {
		return nil
	}
	f := dt.Files[0]
	if !acceptsType(f.Type) || f.Open == nil {
		return nil
	}
	e.StopPropagation()
	e.PreventDefault()
	if z.reading != nil {
		z.reading.Cancel()
	}

	log := z.c.log.With("op", "drop", "file", f.Name)
	var t *Task
	t = Go(z.c.ctx, z.c.loop, 0, func(ctx context.Context) (string, error) {
		return readText(ctx, f)
	}, Handlers[string]{
		OnSuccess: func(text string) {
			if err := z.c.replaceText(text); err != nil {
				z.c.panels.ShowError(MsgTooLarge)
				log.Warn("dropped file not shown", "err", err)
				return
			}
			log.Info("dropped file read", "bytes", len(text))
		},
		OnFailure: func(err error) {
			log.Debug("dropped file not read", "err", err)
		},
		OnSettled: func() {
			if z.reading == t {
				z.reading = nil
			}
		},
	})
	z.reading = t
	return t
}

// DispatchDragOver delivers a drag-over to the drop target and lets it
// bubble to the document when the target did not take it.
func (z *DropZone) DispatchDragOver(e *DragEvent) {
	z.DragOver(e)
	if !e.PropagationStopped() {
		z.DocumentDragOver(e)
	}
}

func acceptsType(mime string) bool {
	return mime == "" || strings.Contains(mime, "text/")
}

func readText(ctx context.Context, f DroppedFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	var b strings.Builder
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := rc.Read(buf)
		b.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
