package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Install plan errors
	ErrPlanLoad    ErrorCode = "PLAN_LOAD"
	ErrPlanParse   ErrorCode = "PLAN_PARSE"
	ErrPlanInvalid ErrorCode = "PLAN_INVALID"
	ErrPlanVersion ErrorCode = "PLAN_VERSION"

	// Linking errors. These carry the source and destination paths as details.
	ErrLinkClone    ErrorCode = "LINK_CLONE"
	ErrLinkHardlink ErrorCode = "LINK_HARDLINK"
	ErrLinkSymlink  ErrorCode = "LINK_SYMLINK"
	ErrCopy         ErrorCode = "COPY"
	ErrRename       ErrorCode = "RENAME"

	// FileSystem errors
	ErrTempDir   ErrorCode = "TEMP_DIR"
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrWalk      ErrorCode = "WALK"
)

// Detail keys used by WrapPaths.
const (
	DetailFrom = "from"
	DetailTo   = "to"
)

var pathVerbs = map[ErrorCode]string{
	ErrLinkClone:    "clone",
	ErrLinkHardlink: "hard link",
	ErrLinkSymlink:  "symlink",
	ErrCopy:         "copy",
	ErrRename:       "rename",
}

// WheelinkError represents a structured error with code and details
type WheelinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WheelinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WheelinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WheelinkError) Is(target error) bool {
	var targetErr *WheelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WheelinkError with the given code and message
func New(code ErrorCode, message string) *WheelinkError {
	return &WheelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WheelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WheelinkError {
	return &WheelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WheelinkError
func Wrap(err error, code ErrorCode, message string) *WheelinkError {
	if err == nil {
		return nil
	}
	return &WheelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WheelinkError {
	if err == nil {
		return nil
	}
	return &WheelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WrapPaths wraps a filesystem error with the source and destination it was
// operating on, so callers can report it without re-deriving context.
func WrapPaths(err error, code ErrorCode, from, to string) *WheelinkError {
	if err == nil {
		return nil
	}
	verb, ok := pathVerbs[code]
	if !ok {
		verb = "place"
	}
	return Wrapf(err, code, "failed to %s `%s` to `%s`", verb, from, to).
		WithDetail(DetailFrom, from).
		WithDetail(DetailTo, to)
}

// WithDetail adds a detail to the error
func (e *WheelinkError) WithDetail(key string, value interface{}) *WheelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *WheelinkError) WithDetails(details map[string]interface{}) *WheelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wlErr *WheelinkError
	if errors.As(err, &wlErr) {
		return wlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WheelinkError
func GetErrorCode(err error) ErrorCode {
	var wlErr *WheelinkError
	if errors.As(err, &wlErr) {
		return wlErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WheelinkError
func GetErrorDetails(err error) map[string]interface{} {
	var wlErr *WheelinkError
	if errors.As(err, &wlErr) {
		return wlErr.Details
	}
	return nil
}

// GetPaths returns the source and destination recorded by WrapPaths, looking
// through any errors wrapped around it.
func GetPaths(err error) (from, to string, ok bool) {
	for err != nil {
		var wlErr *WheelinkError
		if !errors.As(err, &wlErr) {
			return "", "", false
		}
		from, fromOK := wlErr.Details[DetailFrom].(string)
		to, toOK := wlErr.Details[DetailTo].(string)
		if fromOK && toOK {
			return from, to, true
		}
		err = wlErr.Wrapped
	}
	return "", "", false
}
