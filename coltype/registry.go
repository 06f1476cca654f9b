package coltype

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps server type names to descriptors. It is consulted when reflecting existing tables. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Descriptor
}

// NewRegistry returns a registry holding the builtin descriptors.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Descriptor, len(builtins))}
	for _, d := range builtins {
		r.types[d.TypeName()] = d
	}
	return r
}

// Default is the process-wide registry. Extension packages register into it from init.
var Default = NewRegistry()

// Register associates name with d. Names are case-insensitive. Registering a name again replaces the previous
// descriptor.
func (r *Registry) Register(name string, d Descriptor) {
	r.mu.Lock()
	r.types[strings.ToLower(name)] = d
	r.mu.Unlock()
}

// Lookup returns the descriptor registered for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	d, ok := r.types[strings.ToLower(name)]
	r.mu.RUnlock()
	return d, ok
}

// Resolve returns the descriptor for a pg_type.typname. Array type names (a leading underscore) resolve to an Array of
// the element descriptor unless the array name itself is registered. Anything else that is not registered resolves to
// Unknown.
func (r *Registry) Resolve(typname string) Descriptor {
	if d, ok := r.Lookup(typname); ok {
		return d
	}

	if elemName, ok := strings.CutPrefix(typname, "_"); ok && elemName != "" {
		return ArrayOf(r.Resolve(elemName))
	}

	return Unknown{Name: typname}
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Register registers d under name in Default.
func Register(name string, d Descriptor) {
	Default.Register(name, d)
}

// Lookup looks up name in Default.
func Lookup(name string) (Descriptor, bool) {
	return Default.Lookup(name)
}
