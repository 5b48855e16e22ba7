package treefs

import "fmt"

// ErrorKind classifies every failure raised by the tree operations
type ErrorKind int

const (
	InvalidArgument ErrorKind = iota + 1 // empty or malformed name
	DuplicateName                        // sibling with the same name exists
	NotFound                             // target absent among direct children
	ConfirmRequired                      // directory removal without recursive authorization
	InvalidTarget                        // change directory target missing, not a directory or stale
	IOError                              // descriptor could not be read
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case DuplicateName:
		return "duplicate name"
	case NotFound:
		return "not found"
	case ConfirmRequired:
		return "confirmation required"
	case InvalidTarget:
		return "invalid target"
	case IOError:
		return "io error"
	default:
		return "unknown error"
	}
}

// Sentinels for use with errors.Is; they match any *Error of the same Kind.
var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrDuplicateName   = &Error{Kind: DuplicateName}
	ErrNotFound        = &Error{Kind: NotFound}
	ErrConfirmRequired = &Error{Kind: ConfirmRequired}
	ErrInvalidTarget   = &Error{Kind: InvalidTarget}
	ErrIO              = &Error{Kind: IOError}
)

// Error is the single failure type returned by tree operations.
type Error struct {
	Kind ErrorKind
	Path string // offending name or path
	Msg  string
	Err  error // underlying cause, if any
}

// NewError builds an *Error with a formatted message
func NewError(kind ErrorKind, path string, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Path != "" {
		s += ": " + e.Path
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
