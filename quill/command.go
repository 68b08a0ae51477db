package quill

import "github.com/google/uuid"

// Actor is the entity a command is dispatched on behalf of.
type Actor interface {
	// ID returns a stable unique identifier for the actor.
	ID() uuid.UUID

	// Name returns the actor's display name.
	Name() string

	// Reply sends a message back to the actor.
	Reply(message string)
}

// ParamKind classifies how a parameter obtains its value. The classification
// is declared on the descriptor, never inferred at resolve time, so token
// consumption order stays deterministic.
type ParamKind int

const (
	// ParamValue consumes tokens from the positional stream through the
	// value-resolver chain.
	ParamValue ParamKind = iota

	// ParamSender resolves the invoking actor's typed representation and
	// consumes no tokens.
	ParamSender

	// ParamContext resolves from ambient context and consumes no tokens.
	ParamContext

	// ParamSwitch reads a boolean from the extracted switch map.
	ParamSwitch

	// ParamFlag reads a named value from the extracted flag map; the raw
	// value is typed through the value-resolver chain.
	ParamFlag
)

// Parameter describes one declared command parameter.
type Parameter struct {
	Name     string
	Type     string
	Index    int
	Kind     ParamKind
	Optional bool

	// Default is bound when an optional parameter has no input. Switches
	// default to false regardless of this field.
	Default any

	// Greedy makes a trailing value parameter consume the rest of the
	// positional stream as a single space-joined string.
	Greedy bool

	// Suggestions provides autocomplete candidates for this parameter's
	// position. Nil means no suggestions.
	Suggestions SuggestionProvider
}

// Invocation carries everything an invoker needs for one call: the actor,
// the command descriptor, the bound argument list in declared parameter
// order, and the dependency container.
type Invocation struct {
	Actor        Actor
	Command      *Command
	Args         []any
	Dependencies *Dependencies
}

// Invoker is the opaque callable behind a command. Any error it returns is
// wrapped as a HandlerFailure and routed to the exception handler; it is
// never re-raised to the dispatch caller.
type Invoker func(inv *Invocation) (any, error)

// Command is a terminal node in the path tree: one invocable command with
// its declared parameters, gating and invoker.
type Command struct {
	Path       Path
	Summary    string
	Usage      string
	Parameters []*Parameter
	Invoker    Invoker

	// Conditions are evaluated for this command in addition to the
	// handler-wide conditions, before binding.
	Conditions []Condition

	// Permission gates dispatch. When nil at registration, the handler's
	// permission readers are consulted (first non-nil wins).
	Permission Permission

	// ResponseType selects the response handler captured at registration.
	ResponseType string

	respond ResponseHandler
}

// Name returns the command's own name, the last path segment.
func (c *Command) Name() string {
	return c.Path.Name()
}

// Category is a read-only snapshot of a non-terminal tree node: its path and
// the names of its children in insertion order.
type Category struct {
	Path     Path
	Children []string
}

// Name returns the category's own name, the last path segment.
func (c *Category) Name() string {
	return c.Path.Name()
}
