package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the concrete *Error carries the
// human-readable message.
var (
	ErrValidation = errors.New("validation_error")
	ErrNotFound   = errors.New("not_found")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid_state")
	ErrForbidden  = errors.New("forbidden")
	ErrTransport  = errors.New("store_unavailable")
)

var kinds = []error{ErrValidation, ErrNotFound, ErrConflict, ErrState, ErrForbidden, ErrTransport}

type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func New(kind error, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind error, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(format string, args ...any) error { return Newf(ErrValidation, format, args...) }
func NotFound(format string, args ...any) error   { return Newf(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error   { return Newf(ErrConflict, format, args...) }
func State(format string, args ...any) error      { return Newf(ErrState, format, args...) }
func Forbidden(format string, args ...any) error  { return Newf(ErrForbidden, format, args...) }

// KindOf returns the kind sentinel err belongs to, or nil for unclassified errors.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Transport classifies an error coming back from the store. Errors that already
// carry a kind pass through untouched.
func Transport(err error) error {
	if err == nil || KindOf(err) != nil {
		return err
	}
	return Wrap(ErrTransport, err, "store unavailable: "+err.Error())
}
