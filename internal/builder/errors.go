package builder

import (
	"errors"
	"fmt"
)

// ConfigError reports invalid user input: a bad release path, an unexpected
// command-line token, or a malformed configuration value. The CLI prints the
// message and exits non-zero.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Configf creates a ConfigError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ExternalError marks a failure that happened inside an external tool
// invocation, either the storage copy or the packer build itself. The tool
// has already written its own diagnostics to the terminal, so the CLI exits
// non-zero without printing anything further.
type ExternalError struct {
	Tool string
	Err  error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// External wraps err as an ExternalError attributed to the named tool.
// Returns nil for a nil err, and leaves errors that already carry an
// external or config tag untouched.
func External(tool string, err error) error {
	if err == nil {
		return nil
	}
	if IsExternal(err) || IsConfig(err) {
		return err
	}
	return &ExternalError{Tool: tool, Err: err}
}

// IsExternal reports whether err originated inside an external tool.
func IsExternal(err error) bool {
	var ee *ExternalError
	return errors.As(err, &ee)
}
