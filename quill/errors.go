package quill

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a dispatch error.
type Kind int

const (
	KindUnknown Kind = iota
	KindPathConflict
	KindCommandNotFound
	KindNoPermission
	KindConditionFailed
	KindUnresolvableSender
	KindUnresolvableParameter
	KindValidationFailed
	KindMissingFlagValue
	KindInvalidPrefix
	KindNotEnoughArguments
	KindTooManyArguments
	KindHandlerFailure
)

func (k Kind) String() string {
	switch k {
	case KindPathConflict:
		return "path conflict"
	case KindCommandNotFound:
		return "command not found"
	case KindNoPermission:
		return "no permission"
	case KindConditionFailed:
		return "condition failed"
	case KindUnresolvableSender:
		return "unresolvable sender"
	case KindUnresolvableParameter:
		return "unresolvable parameter"
	case KindValidationFailed:
		return "validation failed"
	case KindMissingFlagValue:
		return "missing flag value"
	case KindInvalidPrefix:
		return "invalid prefix"
	case KindNotEnoughArguments:
		return "not enough arguments"
	case KindTooManyArguments:
		return "too many arguments"
	case KindHandlerFailure:
		return "handler failure"
	default:
		return "unknown"
	}
}

// Error is the dispatch error type. Registration-time kinds (PathConflict,
// InvalidPrefix) are returned synchronously from Register and the prefix
// setters; every other kind is routed to the exception handler and never
// raised to the dispatch caller.
type Error struct {
	Kind      Kind
	Message   string
	Path      Path
	Parameter *Parameter
	Cause     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)

// PathConflict is returned when a registration would make a path both a
// command and a category prefix, or would overwrite an existing command.
func PathConflict(path Path) *Error {
	return &Error{
		Kind:    KindPathConflict,
		Message: fmt.Sprintf("path '%s' conflicts with an existing command", path),
		Path:    path,
	}
}

// CommandNotFound is raised when no command node matches the input.
func CommandNotFound(path Path) *Error {
	msg := "no command specified"
	if len(path) > 0 {
		msg = fmt.Sprintf("unknown command '%s'", path)
	}
	return &Error{
		Kind:    KindCommandNotFound,
		Message: msg,
		Path:    path,
	}
}

// NoPermission is raised when the actor fails the command's permission check.
func NoPermission(cmd *Command) *Error {
	return &Error{
		Kind:    KindNoPermission,
		Message: fmt.Sprintf("you do not have permission to run '%s'", cmd.Path),
		Path:    cmd.Path,
	}
}

// ConditionFailed is raised when a registered condition rejects the dispatch.
func ConditionFailed(cmd *Command, cause error) *Error {
	return &Error{
		Kind:    KindConditionFailed,
		Message: cause.Error(),
		Path:    cmd.Path,
		Cause:   cause,
	}
}

// UnresolvableSender is raised when no sender resolver is registered for the
// parameter's type.
func UnresolvableSender(p *Parameter) *Error {
	return &Error{
		Kind:      KindUnresolvableSender,
		Message:   fmt.Sprintf("cannot resolve sender parameter '%s' of type %s", p.Name, p.Type),
		Parameter: p,
	}
}

// UnresolvableParameter is raised when no resolver (or factory) serves the
// parameter's type, or when a resolver fails to produce a value from the
// input.
func UnresolvableParameter(p *Parameter, cause error) *Error {
	msg := fmt.Sprintf("cannot resolve parameter '%s' of type %s", p.Name, p.Type)
	if cause != nil {
		msg = fmt.Sprintf("invalid value for parameter '%s': %s", p.Name, cause)
	}
	return &Error{
		Kind:      KindUnresolvableParameter,
		Message:   msg,
		Parameter: p,
		Cause:     cause,
	}
}

// ValidationFailed is raised when a registered validator rejects a bound
// value. Binding aborts for the whole command.
func ValidationFailed(p *Parameter, cause error) *Error {
	return &Error{
		Kind:      KindValidationFailed,
		Message:   fmt.Sprintf("invalid value for '%s': %s", p.Name, cause),
		Parameter: p,
		Cause:     cause,
	}
}

// MissingFlagValue is raised when a flag token appears without a following
// value token.
func MissingFlagValue(p *Parameter) *Error {
	return &Error{
		Kind:      KindMissingFlagValue,
		Message:   fmt.Sprintf("flag '%s' is missing its value", p.Name),
		Parameter: p,
	}
}

// InvalidPrefix is returned when a switch or flag prefix is set to the
// empty string.
func InvalidPrefix() *Error {
	return &Error{
		Kind:    KindInvalidPrefix,
		Message: "switch and flag prefixes must not be empty",
	}
}

// NotEnoughArguments is raised when the input is exhausted before a required
// parameter is bound.
func NotEnoughArguments(p *Parameter) *Error {
	return &Error{
		Kind:      KindNotEnoughArguments,
		Message:   fmt.Sprintf("missing required argument '%s'", p.Name),
		Parameter: p,
	}
}

// TooManyArguments is raised when positional tokens remain after the last
// parameter is bound and the handler is configured to fail on extra input.
func TooManyArguments(cmd *Command, extra []string) *Error {
	return &Error{
		Kind:    KindTooManyArguments,
		Message: fmt.Sprintf("too many arguments: unexpected '%s'", strings.Join(extra, " ")),
		Path:    cmd.Path,
	}
}

// HandlerFailure wraps a failure raised by the invoked command handler. The
// original cause is preserved unchanged and reachable via Unwrap.
func HandlerFailure(cmd *Command, cause error) *Error {
	return &Error{
		Kind:    KindHandlerFailure,
		Message: fmt.Sprintf("command '%s' failed: %s", cmd.Path, cause),
		Path:    cmd.Path,
		Cause:   cause,
	}
}
