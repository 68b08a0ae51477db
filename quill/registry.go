package quill

import (
	"sync"

	"github.com/quill-tools/quill/args"
)

// ResolveContext carries the ambient state a resolver or validator may
// consult while producing a value.
type ResolveContext struct {
	Actor        Actor
	Command      *Command
	Parameter    *Parameter
	Dependencies *Dependencies
}

// SenderResolver produces the invoking actor's typed representation from
// the ambient context. It consumes no tokens.
type SenderResolver func(rc *ResolveContext) (any, error)

// ValueResolver produces a value by consuming zero or more tokens from the
// argument stack.
type ValueResolver func(stack *args.Stack, rc *ResolveContext) (any, error)

// ContextResolver produces a value from ambient context without consuming
// tokens.
type ContextResolver func(rc *ResolveContext) (any, error)

// ValueResolverFactory is consulted, in registration order, when no value
// resolver is registered for a type. It returns nil when it does not apply.
type ValueResolverFactory func(typeTag string) ValueResolver

// ContextResolverFactory is the context-resolution counterpart of
// ValueResolverFactory.
type ContextResolverFactory func(typeTag string) ContextResolver

// Validator checks a bound value. A non-nil error aborts binding for the
// whole command.
type Validator func(value any, rc *ResolveContext) error

// Registry holds the type-tag-indexed resolver stores and their fallback
// factories. Reads vastly outnumber writes; a single RWMutex suffices.
type Registry struct {
	mu               sync.RWMutex
	senders          map[string]SenderResolver
	values           map[string]ValueResolver
	contexts         map[string]ContextResolver
	valueFactories   []ValueResolverFactory
	contextFactories []ContextResolverFactory
	validators       map[string][]Validator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		senders:    make(map[string]SenderResolver),
		values:     make(map[string]ValueResolver),
		contexts:   make(map[string]ContextResolver),
		validators: make(map[string][]Validator),
	}
}

// RegisterSender registers the sender resolver for a type tag.
func (r *Registry) RegisterSender(typeTag string, resolver SenderResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[typeTag] = resolver
}

// RegisterValue registers the value resolver for a type tag.
func (r *Registry) RegisterValue(typeTag string, resolver ValueResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[typeTag] = resolver
}

// RegisterContext registers the context resolver for a type tag.
func (r *Registry) RegisterContext(typeTag string, resolver ContextResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[typeTag] = resolver
}

// RegisterValueFactory appends a fallback value-resolver factory. Factories
// are asked in registration order; the first that applies wins.
func (r *Registry) RegisterValueFactory(factory ValueResolverFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valueFactories = append(r.valueFactories, factory)
}

// RegisterContextFactory appends a fallback context-resolver factory.
func (r *Registry) RegisterContextFactory(factory ContextResolverFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contextFactories = append(r.contextFactories, factory)
}

// RegisterValidator appends a validator for a type tag. Validators run in
// registration order after each bind of a value of that type.
func (r *Registry) RegisterValidator(typeTag string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[typeTag] = append(r.validators[typeTag], v)
}

func (r *Registry) senderFor(typeTag string) (SenderResolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolver, ok := r.senders[typeTag]
	return resolver, ok
}

func (r *Registry) valueFor(typeTag string) (ValueResolver, bool) {
	// Factories run outside the lock so they may register resolvers on this
	// registry without deadlocking.
	r.mu.RLock()
	if resolver, ok := r.values[typeTag]; ok {
		r.mu.RUnlock()
		return resolver, true
	}
	factories := make([]ValueResolverFactory, len(r.valueFactories))
	copy(factories, r.valueFactories)
	r.mu.RUnlock()

	for _, factory := range factories {
		if resolver := factory(typeTag); resolver != nil {
			return resolver, true
		}
	}
	return nil, false
}

func (r *Registry) contextFor(typeTag string) (ContextResolver, bool) {
	r.mu.RLock()
	if resolver, ok := r.contexts[typeTag]; ok {
		r.mu.RUnlock()
		return resolver, true
	}
	factories := make([]ContextResolverFactory, len(r.contextFactories))
	copy(factories, r.contextFactories)
	r.mu.RUnlock()

	for _, factory := range factories {
		if resolver := factory(typeTag); resolver != nil {
			return resolver, true
		}
	}
	return nil, false
}

func (r *Registry) validatorsFor(typeTag string) []Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vs := r.validators[typeTag]
	out := make([]Validator, len(vs))
	copy(out, vs)
	return out
}
