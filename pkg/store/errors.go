package store

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies store failures so front ends can map them without string matching
type Kind int

const (
	KindUnknown     Kind = iota
	KindNotFound         // document does not exist
	KindUnavailable      // underlying storage failed
	KindValidation       // request was malformed before touching storage
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnavailable:
		return "store unavailable"
	case KindValidation:
		return "invalid request"
	default:
		return "unknown error"
	}
}

// Error is returned by every Store operation that fails.
type Error struct {
	Kind Kind
	Op   string // list, read, write, open
	Name string // document name, if any
	Err  error  // underlying cause, if any
}

var (
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrUnavailable = &Error{Kind: KindUnavailable}
	ErrValidation  = &Error{Kind: KindValidation}
)

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		op := e.Op
		if e.Name != "" {
			op += " " + e.Name
		}
		parts = append(parts, op)
	}
	parts = append(parts, e.Kind.String())
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found store error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func notFound(op, name string, err error) error {
	return errors.WithStack(&Error{Kind: KindNotFound, Op: op, Name: name, Err: err})
}

func unavailable(op, name string, err error) error {
	return errors.WithStack(&Error{Kind: KindUnavailable, Op: op, Name: name, Err: err})
}

func invalid(op, name string, err error) error {
	return errors.WithStack(&Error{Kind: KindValidation, Op: op, Name: name, Err: err})
}

// Invalid wraps err as a validation error for callers that check input before reaching a Store.
func Invalid(op string, err error) error {
	return invalid(op, "", err)
}
