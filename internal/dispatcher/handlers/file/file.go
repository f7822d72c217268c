package file

import (
	"os"

	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/engine/buffer"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs find-file and save-buffer into d's command_table.
func Register(d Registrar) {
	d.Register("find-file", findFile)
	d.Register("save-buffer", saveBuffer)
}

// FindFilePath names the file find-file opens next; the front-end
// (or a minibuffer-equivalent prompt) sets it before dispatching.
var FindFilePath string

// SaveAsPath, when non-empty, names the path save-buffer writes to
// instead of the buffer's own recorded path (write-file).
var SaveAsPath string

func findFile(s *editor.State, count int) editor.DispatchResult {
	path := FindFilePath
	FindFilePath = ""
	if path == "" {
		return editor.Error(editor.ErrRangeInvalid)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			buf := buffer.NewBufferFromString("")
			buf.SetPath(path)
			return openInFocusedWindow(s, buf)
		}
		return editor.Error(editor.ErrBufferInvalid)
	}

	buf := buffer.NewBufferFromString(string(data))
	buf.SetPath(path)
	return openInFocusedWindow(s, buf)
}

func openInFocusedWindow(s *editor.State, buf *buffer.Buffer) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		_, wid := s.OpenBuffer(buf, 80, 24)
		return editor.OkWindow(wid)
	}
	if _, ok := s.OpenBufferInWindow(buf, win.ID()); !ok {
		return editor.Error(editor.ErrWindowInvalid)
	}
	return editor.OkWindow(win.ID())
}

func saveBuffer(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	path := SaveAsPath
	SaveAsPath = ""

	if _, err := win.Buffer().Save(path, false); err != nil {
		if err == buffer.ErrEncodingLossyRefused {
			return editor.Error(editor.ErrEncodingLossyRefused)
		}
		return editor.Error(editor.ErrIOError)
	}
	return editor.Message("Wrote " + win.Buffer().Path())
}
