package tui

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"script-console/internal/console"
)

// pasteDrop treats a bracketed paste of a single existing file path as a
// file dragged onto the editor. It reports whether the paste was taken as a
// drop attempt.
func (m *model) pasteDrop(pasted string) bool {
	path, ok := droppedPath(pasted)
	if !ok {
		return false
	}
	zone := m.ctl.DropZone()
	zone.DispatchDragOver(&console.DragEvent{DataTransfer: &console.DataTransfer{
		Items: []console.DragItem{{Kind: console.ItemKindFile}},
	}})
	f := console.DroppedFile{
		Name: filepath.Base(path),
		Type: sniffType(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	if zone.Drop(&console.DragEvent{DataTransfer: &console.DataTransfer{Files: []console.DroppedFile{f}}}) == nil {
		m.log.Debug("drop ignored", "file", f.Name, "type", f.Type)
	}
	return true
}

// droppedPath extracts a regular file path from pasted text. Terminals quote
// or backslash-escape paths with spaces when a file is dropped on them.
func droppedPath(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return "", false
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, `\ `, " ")
	s = strings.TrimPrefix(s, "file://")
	fi, err := os.Stat(s)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	return s, true
}

// sniffType returns the MIME type by extension, falling back to content sniffing.
func sniffType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	if n == 0 {
		return ""
	}
	return http.DetectContentType(buf[:n])
}
