package cvss

import (
	"github.com/cockroachdb/errors"
)

// Code is a stable, machine readable identifier for a scoring failure.
type Code int

const (
	CodeUnknown Code = iota
	CodeInvalidVector
	CodeMissingValue
	CodeInvalidValue
	CodeWrongRecord
	CodeInvalidMacroVector
)

// Error is the error type returned by every scoring entry point.
// Callers compare with errors.Is against the sentinels below; details
// such as the offending metric are wrapped around them.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidVector      = &Error{Code: CodeInvalidVector, Message: "the vector you have provided is invalid"}
	ErrMissingValue       = &Error{Code: CodeMissingValue, Message: "missing value"}
	ErrInvalidValue       = &Error{Code: CodeInvalidValue, Message: "value could not be parsed"}
	ErrWrongRecord        = &Error{Code: CodeWrongRecord, Message: "wrong cvss record"}
	ErrInvalidMacroVector = &Error{Code: CodeInvalidMacroVector, Message: "invalid macrovector"}
)

// CodeOf returns the stable code carried by err, or CodeUnknown when err
// did not originate from this package.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func missingValue(metric string) error {
	return errors.Wrapf(ErrMissingValue, "metric %s", metric)
}

func invalidValue(metric, value string) error {
	return errors.Wrapf(ErrInvalidValue, "metric %s value %q", metric, value)
}
