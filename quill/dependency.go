package quill

import "sync"

// Supplier produces a dependency value. Suppliers registered with
// RegisterSupplier are invoked on every resolve; values registered with
// Register always yield the same instance.
type Supplier func() any

// Dependencies is a type-tag-indexed store of injectable values consulted
// by invokers at command-object construction.
type Dependencies struct {
	mu      sync.RWMutex
	entries map[string]Supplier
}

// NewDependencies returns an empty container.
func NewDependencies() *Dependencies {
	return &Dependencies{entries: make(map[string]Supplier)}
}

// Register stores a static dependency: every resolve returns this instance.
func (d *Dependencies) Register(typeTag string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[typeTag] = func() any { return value }
}

// RegisterSupplier stores a supplier invoked on every resolve.
func (d *Dependencies) RegisterSupplier(typeTag string, supplier Supplier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[typeTag] = supplier
}

// Resolve returns the dependency for the type tag, or false if none is
// registered.
func (d *Dependencies) Resolve(typeTag string) (any, bool) {
	d.mu.RLock()
	supplier, ok := d.entries[typeTag]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return supplier(), true
}
