package builder

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncspec/specerrors"
)

// ComponentType identifies the type of component where an error occurred.
type ComponentType string

const (
	// ComponentBroker indicates an error in the broker itself.
	ComponentBroker ComponentType = "broker"
	// ComponentServer indicates an error in a server record.
	ComponentServer ComponentType = "server"
	// ComponentChannel indicates an error in a channel record.
	ComponentChannel ComponentType = "channel"
	// ComponentOperation indicates an error in an operation record.
	ComponentOperation ComponentType = "operation"
	// ComponentMessage indicates an error in a message component.
	ComponentMessage ComponentType = "message"
	// ComponentSchema indicates an error in a schema component.
	ComponentSchema ComponentType = "schema"
	// ComponentReference indicates a dangling reference in the output.
	ComponentReference ComponentType = "reference"
)

// BuilderError represents a structured error from the builder package.
// It records which component, channel and message the assembler was
// working on when it stopped.
type BuilderError struct {
	// Component is the type of component where the error occurred.
	Component ComponentType
	// Channel is the raw channel name (if applicable).
	Channel string
	// Title is the message title (if applicable).
	Title string
	// Field is the specific field with the error (e.g., "oneOf").
	Field string
	// Message describes the error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface with a detailed, formatted message.
func (e *BuilderError) Error() string {
	var sb strings.Builder
	sb.WriteString("builder")

	if e.Component != "" {
		sb.WriteString(": ")
		sb.WriteString(string(e.Component))
	}
	if e.Channel != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Channel)
	}
	if e.Title != "" {
		sb.WriteString(" [message: ")
		sb.WriteString(e.Title)
		sb.WriteString("]")
	}
	if e.Field != "" {
		sb.WriteString(" field ")
		sb.WriteString(e.Field)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BuilderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Server and broker errors are configuration errors; dangling references
// are reference errors; everything else is a malformed descriptor.
func (e *BuilderError) Is(target error) bool {
	switch e.Component {
	case ComponentServer, ComponentBroker:
		return target == specerrors.ErrConfig
	case ComponentReference:
		return target == specerrors.ErrReference
	default:
		return target == specerrors.ErrDescriptor
	}
}

// HasLocation returns true if this error has location context.
func (e *BuilderError) HasLocation() bool {
	return e.Channel != "" || e.Component != ""
}

// Location returns a descriptive location string.
func (e *BuilderError) Location() string {
	switch {
	case e.Channel != "" && e.Title != "":
		return fmt.Sprintf("%s %s", e.Channel, e.Title)
	case e.Channel != "":
		return e.Channel
	case e.Component != "":
		return string(e.Component)
	}
	return "unknown"
}

// newDescriptorError builds the fail-fast error for a malformed message
// descriptor. The cause is a MalformedDescriptorError so callers can match
// it with errors.As as well as errors.Is.
func newDescriptorError(component ComponentType, channel, title, field, message string) *BuilderError {
	return &BuilderError{
		Component: component,
		Channel:   channel,
		Title:     title,
		Field:     field,
		Cause: &specerrors.MalformedDescriptorError{
			Channel: channel,
			Title:   title,
			Field:   field,
			Message: message,
		},
	}
}

// NewServerError creates an error for an unusable broker URL or metadata.
func NewServerError(url, message string, cause error) *BuilderError {
	return &BuilderError{
		Component: ComponentServer,
		Field:     "url",
		Message:   fmt.Sprintf("%q: %s", url, message),
		Cause:     cause,
	}
}

// NewCollisionError creates an error for a collision when strict collision
// handling is enabled.
func NewCollisionError(c Collision) *BuilderError {
	return &BuilderError{
		Component: c.Component,
		Message:   c.String(),
	}
}

// BuilderErrors is a collection of BuilderError with formatting support.
type BuilderErrors []*BuilderError

// Error implements the error interface with a formatted multi-error message.
func (errs BuilderErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		if errs[0] == nil {
			return ""
		}
		return errs[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("builder: %d error(s):\n", len(errs)))
	for _, e := range errs {
		if e == nil {
			continue
		}
		sb.WriteString("  - ")
		// Strip the "builder: " prefix for nested errors to avoid repetition
		sb.WriteString(strings.TrimPrefix(e.Error(), "builder: "))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Unwrap returns the errors for errors.Is and errors.As.
func (errs BuilderErrors) Unwrap() []error {
	result := make([]error, 0, len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		result = append(result, e)
	}
	return result
}
