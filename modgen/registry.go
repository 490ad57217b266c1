package modgen

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Registry accumulates what one run has actually emitted: the entry-point
// classes the manifest must declare and the string keys the string table
// must define. Safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	activities []string
	keys       *orderedmap.OrderedMap[string, struct{}]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{keys: orderedmap.New[string, struct{}]()}
}

// AddActivity appends a fully-qualified class name.
func (r *Registry) AddActivity(fqcn string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, fqcn)
}

// AddStringKey records key and reports whether it was new.
// Re-adding an existing key is a no-op.
func (r *Registry) AddStringKey(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.keys.Get(key); present {
		return false
	}
	r.keys.Set(key, struct{}{})
	return true
}

// Activities returns the registered classes in generation order.
func (r *Registry) Activities() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.activities...)
}

// StringKeys returns the distinct keys in first-registration order.
func (r *Registry) StringKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, r.keys.Len())
	for pair := r.keys.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Merge appends everything other holds, keeping other's order.
func (r *Registry) Merge(other *Registry) {
	for _, a := range other.Activities() {
		r.AddActivity(a)
	}
	for _, k := range other.StringKeys() {
		r.AddStringKey(k)
	}
}
