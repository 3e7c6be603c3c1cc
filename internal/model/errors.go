package model

import "errors"

// Sentinel errors for programmatic checking. Pattern and placeholder
// errors are fatal and abort a run before any write; the rest are
// reported per file or per target and the run continues.
var (
	ErrPatternCompile     = errors.New("pattern does not compile")
	ErrUnboundPlaceholder = errors.New("target template references unknown placeholder")
	ErrNoSourceFiles      = errors.New("no source files matched")
	ErrTargetMissing      = errors.New("target file does not exist")
	ErrRead               = errors.New("read failed")
	ErrWrite              = errors.New("write failed")
)

// ErrorCode provides a machine-readable error type for output.
type ErrorCode string

const (
	ECNone               ErrorCode = ""
	ECPatternCompile     ErrorCode = "ERR_PATTERN"
	ECUnboundPlaceholder ErrorCode = "ERR_UNBOUND_PLACEHOLDER"
	ECNoSourceFiles      ErrorCode = "ERR_NO_SOURCES"
	ECTargetMissing      ErrorCode = "ERR_TARGET_MISSING"
	ECReadError          ErrorCode = "ERR_READ_FILE"
	ECWriteError         ErrorCode = "ERR_WRITE_FILE"
	ECConfigError        ErrorCode = "ERR_CONFIG"
)

// RunError is a uniform error payload carrying a code alongside the
// message, wrapping the matching sentinel so errors.Is keeps working.
type RunError struct {
	Code    ErrorCode
	Message string
	Inner   error
}

func (e *RunError) Error() string {
	if e.Inner != nil {
		return e.Message + ": " + e.Inner.Error()
	}
	return e.Message
}

func (e *RunError) Unwrap() error { return e.Inner }

// Wrap builds a RunError around inner with the given code and message.
func Wrap(code ErrorCode, msg string, inner error) error {
	return &RunError{Code: code, Message: msg, Inner: inner}
}

// Fatal reports whether err must abort the whole run. Only bad user
// configuration is fatal; I/O and per-target conditions are isolated.
func Fatal(err error) bool {
	return errors.Is(err, ErrPatternCompile) || errors.Is(err, ErrUnboundPlaceholder)
}

// CodeOf extracts the ErrorCode from err, or ECNone.
func CodeOf(err error) ErrorCode {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code
	}
	return ECNone
}
