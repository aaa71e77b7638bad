package specerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrDescriptor indicates an endpoint descriptor is malformed.
	ErrDescriptor = errors.New("malformed descriptor")

	// ErrReference indicates a reference does not resolve.
	ErrReference = errors.New("reference error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrSetup indicates the broker failed its setup step.
	ErrSetup = errors.New("setup error")
)

// MalformedDescriptorError reports an endpoint descriptor that cannot be
// assembled: a message without a title, a union whose variants are not
// named schemas, or a definition without a name.
type MalformedDescriptorError struct {
	// Channel is the channel name the descriptor was registered under
	Channel string
	// Title is the message title, if known
	Title string
	// Field names the offending part (e.g., "title", "oneOf", "$defs")
	Field string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedDescriptorError) Error() string {
	msg := "malformed descriptor"
	if e.Channel != "" {
		msg += " for channel " + e.Channel
	}
	if e.Title != "" {
		msg += fmt.Sprintf(" (message %q)", e.Title)
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedDescriptorError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedDescriptorError) Is(target error) bool {
	return target == ErrDescriptor
}

// ReferenceError represents a local $ref that does not resolve inside the
// document it appears in.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Location is the JSON pointer of the object holding the ref
	Location string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// ParseError represents a failure to decode a manifest or payload document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// SetupError wraps a failure of the broker's own setup step, which must
// complete before any endpoint can be described.
type SetupError struct {
	// Protocol is the broker protocol, if known
	Protocol string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *SetupError) Error() string {
	msg := "broker setup failed"
	if e.Protocol != "" {
		msg = e.Protocol + " " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetup
}
