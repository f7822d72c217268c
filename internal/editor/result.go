package editor

import "github.com/dshills/keystorm/internal/window"

// RedrawScope names how much of the screen a successful command
// requires repainting, spec §4.6.
type RedrawScope uint8

const (
	RedrawNone RedrawScope = iota
	RedrawCursor
	RedrawWindow
	RedrawAll
)

// DispatchResultKind discriminates a DispatchResult's variant.
type DispatchResultKind uint8

const (
	DispatchOk DispatchResultKind = iota
	DispatchMessage
	DispatchError
	DispatchExit
)

// DispatchResult is the tagged union a command handler returns, spec
// §4.6: Ok{redraw}, Message(text), Error(ErrorKind), or Exit.
type DispatchResult struct {
	Kind   DispatchResultKind
	Redraw RedrawScope // valid when Kind == DispatchOk
	Window window.ID   // valid when Kind == DispatchOk && Redraw == RedrawWindow
	Text   string      // valid when Kind == DispatchMessage
	Err    ErrorKind   // valid when Kind == DispatchError
}

// Ok builds a successful result with the given redraw scope.
func Ok(scope RedrawScope) DispatchResult {
	return DispatchResult{Kind: DispatchOk, Redraw: scope}
}

// OkWindow builds a successful result scoped to redrawing one window.
func OkWindow(id window.ID) DispatchResult {
	return DispatchResult{Kind: DispatchOk, Redraw: RedrawWindow, Window: id}
}

// Message builds a status-line notice result.
func Message(text string) DispatchResult {
	return DispatchResult{Kind: DispatchMessage, Text: text}
}

// Error builds a recoverable-error result.
func Error(kind ErrorKind) DispatchResult {
	return DispatchResult{Kind: DispatchError, Err: kind}
}

// Exit builds the result that ends the editor's main loop.
func Exit() DispatchResult {
	return DispatchResult{Kind: DispatchExit}
}
