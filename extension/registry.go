// registry.go implements the extension registration system.
//
// Extensions self-register during init(), before main() runs. Registration
// order is preserved so command ordering is deterministic across runs.
// Duplicate names panic, following database/sql.Register.

package extension

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // preserve registration order
)

// Register adds an extension to the registry. Called from init() functions.
// Panics on a duplicate name.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// Activate hands ctx to every Activatable extension in exts, in order.
// Stops at the first failure.
func Activate(ctx Context, exts []Extension) error {
	for _, ext := range exts {
		if a, ok := ext.(Activatable); ok {
			if err := a.Activate(ctx); err != nil {
				return fmt.Errorf("activate extension %s: %w", ext.Name(), err)
			}
		}
	}
	return nil
}

// Deactivate calls Deactivate on every Deactivatable extension in reverse
// order and returns the first error.
func Deactivate(exts []Extension) error {
	var first error
	for i := len(exts) - 1; i >= 0; i-- {
		if d, ok := exts[i].(Deactivatable); ok {
			if err := d.Deactivate(); err != nil && first == nil {
				first = fmt.Errorf("deactivate extension %s: %w", exts[i].Name(), err)
			}
		}
	}
	return first
}
