package config

import (
	"fmt"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

const pkgName = "config"

// ConfigError reports a bad setting or an unreadable config file.
type ConfigError struct {
	base *scerr.Error
	Key  string // setting key if applicable
	Path string // config file if applicable
}

// NewConfigError creates a ConfigError.
func NewConfigError(op, code, key, path string, underlying error) *ConfigError {
	return &ConfigError{
		base: scerr.New(pkgName, code, op, "", underlying),
		Key:  key,
		Path: path,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.base.Error()
	if e.Key != "" {
		msg += fmt.Sprintf(" [key=%s]", e.Key)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	return msg
}

// Unwrap returns the underlying structured error.
func (e *ConfigError) Unwrap() error {
	return e.base
}
