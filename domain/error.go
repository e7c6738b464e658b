package domain

import (
	"errors"
	"fmt"
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	// ErrGraphUnavailable means the online fetch failed or returned an unusable
	// structure; the provider degrades to offline synthesis and never surfaces this.
	ErrGraphUnavailable = errors.New("network graph unavailable")
	// ErrNoPathFound means search yielded no connecting path or a degenerate one;
	// the planner degrades to the straight-line fallback.
	ErrNoPathFound = errors.New("no path found between origin and target")
	// ErrInvalidGeometry means a hazard or coordinate is malformed; only that
	// hazard or edge is skipped, never the whole operation.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrEmptySignal means weather or crowd data is missing; scorers return 0.0
	// with an explanatory driver instead.
	ErrEmptySignal = errors.New("signal data missing or empty")
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

var MessageInternalServerError string = "internal server error"
