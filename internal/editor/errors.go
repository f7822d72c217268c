package editor

import "fmt"

// ErrorKind is the closed set of recoverable error categories a
// dispatch handler may report via DispatchResult.Error, enumerated in
// full by spec §7. It is a closed enum, not an open sentinel-error
// chain, because front-ends match on it to decide how to surface a
// failure (status-line text vs. a beep vs. a modal), matching the
// teacher's general preference for small tagged types over ad hoc
// error strings (see renderer/dirty.ChangeType, layout.Kind).
type ErrorKind uint8

const (
	ErrBufferInvalid ErrorKind = iota
	ErrWindowInvalid
	ErrRangeInvalid
	ErrOffsetOutOfRange
	ErrRangeNotOnBoundary
	ErrNothingToUndo
	ErrNothingToRedo
	ErrLastWindow
	ErrSearchNotFound
	ErrCancelled
	ErrMacroEmpty
	ErrMacroRecursive
	ErrIOError
	ErrEncodingLossyRefused
	ErrKeyUnbound
	ErrPrefixTimeout
	ErrCommandUnknown
)

// String returns the stable identifier spec §7 uses for this kind
// (e.g. "offset-out-of-range"), suitable for status-line display or
// scripting output.
func (k ErrorKind) String() string {
	switch k {
	case ErrBufferInvalid:
		return "buffer-invalid"
	case ErrWindowInvalid:
		return "window-invalid"
	case ErrRangeInvalid:
		return "range-invalid"
	case ErrOffsetOutOfRange:
		return "offset-out-of-range"
	case ErrRangeNotOnBoundary:
		return "range-not-on-boundary"
	case ErrNothingToUndo:
		return "nothing-to-undo"
	case ErrNothingToRedo:
		return "nothing-to-redo"
	case ErrLastWindow:
		return "last-window"
	case ErrSearchNotFound:
		return "search-not-found"
	case ErrCancelled:
		return "cancelled"
	case ErrMacroEmpty:
		return "macro-empty"
	case ErrMacroRecursive:
		return "macro-recursive"
	case ErrIOError:
		return "io-error"
	case ErrEncodingLossyRefused:
		return "encoding-lossy-refused"
	case ErrKeyUnbound:
		return "key-unbound"
	case ErrPrefixTimeout:
		return "prefix-timeout"
	case ErrCommandUnknown:
		return "command-unknown"
	default:
		return "unknown-error"
	}
}

// CommandError pairs an ErrorKind with human-readable detail for
// logging; DispatchResult only ever carries the Kind to the front-end.
type CommandError struct {
	Kind   ErrorKind
	Detail string
}

func (e *CommandError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewCommandError builds a CommandError, formatting Detail like fmt.Errorf.
func NewCommandError(kind ErrorKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
