// Package hooks provides a process-wide registry of named extension
// callbacks invoked at well-known points of admin operations.
//
// Hooks are registered during startup and read-only afterwards. A hook that
// returns a non-nil http.Handler short-circuits the operation: the views
// serve that handler instead of continuing.
package hooks

import (
	"net/http"
	"sort"
	"sync"
)

// Func is a hook callback. obj carries the model instance the operation
// targets, or nil when no instance exists yet.
type Func func(r *http.Request, obj any) http.Handler

type entry struct {
	order int
	seq   int
	fn    Func
}

// Registry maps hook names to ordered callbacks.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]entry
	seq     int
}

// NewRegistry returns an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]entry)}
}

// Register adds fn under name with default order 0.
func (g *Registry) Register(name string, fn Func) {
	g.RegisterWithOrder(name, 0, fn)
}

// RegisterWithOrder adds fn under name. Lower orders run first; callbacks
// with equal order run in registration order.
func (g *Registry) RegisterWithOrder(name string, order int, fn Func) {
	if g == nil || name == "" || fn == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.entries == nil {
		g.entries = make(map[string][]entry)
	}
	g.seq++
	g.entries[name] = append(g.entries[name], entry{order: order, seq: g.seq, fn: fn})
}

// Get returns the callbacks registered under name, ordered for execution.
func (g *Registry) Get(name string) []Func {
	if g == nil {
		return nil
	}
	g.mu.RLock()
	registered := g.entries[name]
	g.mu.RUnlock()
	if len(registered) == 0 {
		return nil
	}

	ordered := make([]entry, len(registered))
	copy(ordered, registered)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].seq < ordered[j].seq
	})

	callbacks := make([]Func, len(ordered))
	for i, item := range ordered {
		callbacks[i] = item.fn
	}
	return callbacks
}

// Run invokes the callbacks registered under name in order and returns the
// first non-nil handler, or nil when every callback declines to respond.
func (g *Registry) Run(name string, r *http.Request, obj any) http.Handler {
	for _, fn := range g.Get(name) {
		if response := fn(r, obj); response != nil {
			return response
		}
	}
	return nil
}

// defaultRegistry backs the package-level convenience functions.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds fn to the process-wide registry.
func Register(name string, fn Func) {
	defaultRegistry.Register(name, fn)
}

// RegisterWithOrder adds fn to the process-wide registry with an explicit order.
func RegisterWithOrder(name string, order int, fn Func) {
	defaultRegistry.RegisterWithOrder(name, order, fn)
}

// Get returns the callbacks registered under name in the process-wide registry.
func Get(name string) []Func {
	return defaultRegistry.Get(name)
}
