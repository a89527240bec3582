package clean

import (
	"errors"
	"fmt"
)

// Kind classifies why a run failed.
type Kind string

const (
	// KindUsage means the command line was wrong; no file was touched.
	KindUsage Kind = "usage"
	// KindInput means the input file could not be opened or read.
	KindInput Kind = "input"
	// KindOutput means the output file could not be created or written.
	KindOutput Kind = "output"
)

// Error wraps an underlying error with the failing step and its kind.
type Error struct {
	Op   string
	Kind Kind
	Path string // Optional: file involved
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// UsageError reports a wrong number of positional arguments.
func UsageError(got int) error {
	return &Error{
		Op:   "usage",
		Kind: KindUsage,
		Err:  fmt.Errorf("expected exactly one input file, got %d arguments", got),
	}
}
