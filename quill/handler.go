// Package quill is a declarative command-dispatch engine: commands are
// registered as descriptors (path, ordered parameters, conditions,
// permissions) on a case-insensitive path tree, and free-form input is
// resolved, bound through a type-indexed resolver chain, gated and invoked
// without per-command parsing code.
package quill

import (
	"fmt"
	"sync"

	"github.com/quill-tools/quill/args"
)

const defaultPrefix = "-"

// ExceptionHandler is the single sink every dispatch failure is delivered
// to, exactly once per dispatch. cmd is nil when the failure occurred
// before a command was resolved.
type ExceptionHandler func(err error, actor Actor, cmd *Command)

// Handler is the dispatch engine facade: it owns the path tree, the
// resolver registry, the dependency container and the configuration
// surface, and orchestrates the per-call pipeline.
//
// Registration and configuration are setup-time operations; dispatch is
// synchronous, re-entrant and safe to run concurrently from independent
// goroutines.
type Handler struct {
	mu           sync.RWMutex
	switchPrefix string
	flagPrefix   string
	failOnExtra  bool
	conditions   []Condition
	permReaders  []PermissionReader
	responses    map[string]ResponseHandler
	exception    ExceptionHandler

	tree     *Tree
	registry *Registry
	deps     *Dependencies
}

// New returns a handler with `-` switch and flag prefixes, the built-in
// primitive value resolvers, and a default exception handler that replies
// the error message to the actor.
func New() *Handler {
	h := &Handler{
		switchPrefix: defaultPrefix,
		flagPrefix:   defaultPrefix,
		responses:    make(map[string]ResponseHandler),
		tree:         NewTree(),
		registry:     NewRegistry(),
		deps:         NewDependencies(),
	}
	h.exception = defaultExceptionHandler
	registerBuiltins(h.registry)
	return h
}

func defaultExceptionHandler(err error, actor Actor, _ *Command) {
	if actor == nil {
		return
	}
	actor.Reply(err.Error())
}

// SetSwitchPrefix sets the prefix switch tokens are checked against.
// Returns InvalidPrefix for the empty string.
func (h *Handler) SetSwitchPrefix(prefix string) error {
	if prefix == "" {
		return InvalidPrefix()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.switchPrefix = prefix
	return nil
}

// SetFlagPrefix sets the prefix flag tokens are checked against. Returns
// InvalidPrefix for the empty string.
func (h *Handler) SetFlagPrefix(prefix string) error {
	if prefix == "" {
		return InvalidPrefix()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flagPrefix = prefix
	return nil
}

// SwitchPrefix returns the current switch prefix.
func (h *Handler) SwitchPrefix() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.switchPrefix
}

// FlagPrefix returns the current flag prefix.
func (h *Handler) FlagPrefix() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.flagPrefix
}

// FailOnTooManyArguments makes binding fail when positional tokens remain
// after the last parameter. By default extra tokens are discarded.
func (h *Handler) FailOnTooManyArguments() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failOnExtra = true
}

func (h *Handler) failsOnExtra() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.failOnExtra
}

// SetExceptionHandler replaces the failure sink. A nil handler restores the
// default.
func (h *Handler) SetExceptionHandler(handler ExceptionHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if handler == nil {
		handler = defaultExceptionHandler
	}
	h.exception = handler
}

func (h *Handler) exceptionHandler() ExceptionHandler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.exception
}

// Register inserts the command into the path tree. When the command carries
// no explicit permission, the permission-reader chain is consulted (first
// non-nil wins). The response handler for the command's declared response
// type is captured now; registering a response handler later does not
// retrofit existing commands.
func (h *Handler) Register(cmd *Command) error {
	if cmd.Invoker == nil {
		return fmt.Errorf("command '%s' has no invoker", cmd.Path)
	}
	for i, p := range cmd.Parameters {
		p.Index = i
	}

	h.mu.RLock()
	if cmd.Permission == nil {
		for _, read := range h.permReaders {
			if perm := read(cmd); perm != nil {
				cmd.Permission = perm
				break
			}
		}
	}
	if cmd.ResponseType != "" {
		cmd.respond = h.responses[cmd.ResponseType]
	}
	h.mu.RUnlock()

	return h.tree.Register(cmd)
}

// Unregister removes the path and, for categories, its whole subtree.
func (h *Handler) Unregister(path Path) bool {
	return h.tree.Unregister(path)
}

// LookupCommand returns the command at the path, or nil.
func (h *Handler) LookupCommand(path Path) *Command {
	return h.tree.LookupCommand(path)
}

// LookupCategory returns a snapshot of the category at the path, or nil.
func (h *Handler) LookupCategory(path Path) *Category {
	return h.tree.LookupCategory(path)
}

// RegisterSenderResolver registers the sender resolver for a type tag.
func (h *Handler) RegisterSenderResolver(typeTag string, r SenderResolver) {
	h.registry.RegisterSender(typeTag, r)
}

// RegisterValueResolver registers the value resolver for a type tag.
func (h *Handler) RegisterValueResolver(typeTag string, r ValueResolver) {
	h.registry.RegisterValue(typeTag, r)
}

// RegisterContextResolver registers the context resolver for a type tag.
func (h *Handler) RegisterContextResolver(typeTag string, r ContextResolver) {
	h.registry.RegisterContext(typeTag, r)
}

// RegisterContextValue registers a constant context value for a type tag.
func (h *Handler) RegisterContextValue(typeTag string, value any) {
	h.registry.RegisterContext(typeTag, func(*ResolveContext) (any, error) {
		return value, nil
	})
}

// RegisterValueResolverFactory appends a fallback value-resolver factory.
func (h *Handler) RegisterValueResolverFactory(f ValueResolverFactory) {
	h.registry.RegisterValueFactory(f)
}

// RegisterContextResolverFactory appends a fallback context-resolver factory.
func (h *Handler) RegisterContextResolverFactory(f ContextResolverFactory) {
	h.registry.RegisterContextFactory(f)
}

// RegisterValidator appends a validator for a type tag.
func (h *Handler) RegisterValidator(typeTag string, v Validator) {
	h.registry.RegisterValidator(typeTag, v)
}

// RegisterCondition appends a handler-wide condition evaluated before every
// dispatch binds.
func (h *Handler) RegisterCondition(c Condition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conditions = append(h.conditions, c)
}

// RegisterPermissionReader appends a permission reader consulted at command
// registration.
func (h *Handler) RegisterPermissionReader(r PermissionReader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.permReaders = append(h.permReaders, r)
}

// RegisterResponseHandler registers the response handler for a response
// type tag. Must precede registration of the commands that declare it.
func (h *Handler) RegisterResponseHandler(typeTag string, r ResponseHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[typeTag] = r
}

// RegisterDependency stores a static dependency value.
func (h *Handler) RegisterDependency(typeTag string, value any) {
	h.deps.Register(typeTag, value)
}

// RegisterDependencySupplier stores a dependency supplier invoked on every
// resolve.
func (h *Handler) RegisterDependencySupplier(typeTag string, s Supplier) {
	h.deps.RegisterSupplier(typeTag, s)
}

// Dependency returns the registered dependency for a type tag.
func (h *Handler) Dependency(typeTag string) (any, bool) {
	return h.deps.Resolve(typeTag)
}

// Dispatch tokenizes the input with a whitespace split and dispatches it.
// It never returns an error: every failure is delivered to the exception
// handler exactly once and the second return value is false.
func (h *Handler) Dispatch(actor Actor, input string) (any, bool) {
	return h.DispatchStack(actor, args.Tokenize(input))
}

// DispatchTokens dispatches pre-tokenized input.
func (h *Handler) DispatchTokens(actor Actor, tokens []string) (any, bool) {
	return h.DispatchStack(actor, args.New(tokens...))
}

// DispatchStack runs the full pipeline on the given argument stack:
// resolve path, authorize, bind, invoke, respond.
func (h *Handler) DispatchStack(actor Actor, stack *args.Stack) (any, bool) {
	result, cmd, err := h.run(actor, stack)
	if err != nil {
		h.exceptionHandler()(err, actor, cmd)
		return nil, false
	}
	return result, true
}

func (h *Handler) run(actor Actor, stack *args.Stack) (any, *Command, error) {
	cmd, err := h.tree.resolve(stack)
	if err != nil {
		return nil, nil, err
	}
	if err := h.authorize(actor, cmd, stack.Remaining()); err != nil {
		return nil, cmd, err
	}
	bound, err := h.bind(actor, cmd, stack)
	if err != nil {
		return nil, cmd, err
	}
	result, err := h.invoke(actor, cmd, bound)
	if err != nil {
		return nil, cmd, err
	}
	if cmd.respond != nil {
		cmd.respond(result, actor, cmd)
	}
	return result, cmd, nil
}

// invoke calls the command's invoker, isolating arbitrary failures:
// returned errors and panics alike are wrapped as HandlerFailure with the
// original cause preserved.
func (h *Handler) invoke(actor Actor, cmd *Command, bound []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = HandlerFailure(cmd, fmt.Errorf("panic: %v", r))
		}
	}()

	result, ierr := cmd.Invoker(&Invocation{
		Actor:        actor,
		Command:      cmd,
		Args:         bound,
		Dependencies: h.deps,
	})
	if ierr != nil {
		return nil, HandlerFailure(cmd, ierr)
	}
	return result, nil
}
