package err

import (
	"errors"
	"strings"
)

// Error is the structured error returned by every package in the module.
//
// Package names the originating package ("vcs", "sources", ...), Code is a
// machine-readable category from the constants below, Op is the operation
// that failed. Err, when set, is the wrapped cause.
type Error struct {
	Package string
	Code    string
	Op      string
	Message string
	Err     error

	// Context holds optional structured metadata, allocated on first use.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] operation: message: wrapped_error
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[" + e.Package + "]")
	}
	if e.Code != "" {
		prefix.WriteString("[" + e.Code + "]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			return result + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return result
}

// Unwrap returns the underlying error for errors.Is() and errors.As() support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors carrying the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new error with the specified fields.
func New(pkg, code, op, message string, err error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps err with package and operation context. Returns nil if err is nil.
func Wrap(err error, pkg, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: err}
}

// WrapWithCode wraps err with package, code and operation. Returns nil if err is nil.
func WrapWithCode(err error, pkg, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Code: code, Op: op, Err: err}
}

// Error codes shared across packages.
const (
	// CodeUsage marks a bad invocation: wrong argument count or help requested.
	CodeUsage = "USAGE"

	// CodeInvalidInput indicates an invalid argument or setting.
	CodeInvalidInput = "INVALID_INPUT"

	// CodeNotFound indicates a required file or directory is missing.
	CodeNotFound = "NOT_FOUND"

	// CodeCommandFailed indicates an external command could not start or exited non-zero.
	CodeCommandFailed = "COMMAND_FAILED"

	// CodePatternNotFound indicates expected text was absent from command output.
	CodePatternNotFound = "PATTERN_NOT_FOUND"

	// CodeIO indicates a read or write on the filesystem failed.
	CodeIO = "IO"

	// CodeInternal indicates an unexpected internal error.
	CodeInternal = "INTERNAL"
)

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code string) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain that has one.
func GetCode(err error) string {
	var e *Error
	for errors.As(err, &e) {
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return ""
}
