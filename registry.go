package mapper

import (
	"context"
	"runtime"
)

// Initializer is a host-supplied function invoked by the init pipeline
// stage (spec §6): initializers[name](value, context) -> value'.
type Initializer func(ctx context.Context, value any, ectx *EvalContext, options ...any) (any, error)

// Transformer is a host-supplied function invoked by the transform
// pipeline stage: transformers[name](value, context, options?) -> value'.
type Transformer func(ctx context.Context, value any, ectx *EvalContext, options any) (any, error)

// Plugin is a host-supplied function invoked for any descriptor key that
// is not itself a recognized pipeline keyword: plugins[name](subDescriptor,
// value, context) -> value'. Plugins may be slow; they receive the Go
// context for deadline propagation (spec §5 notwithstanding — the engine
// itself never cancels on a plugin's behalf).
type Plugin func(ctx context.Context, sub *Descriptor, value any, ectx *EvalContext) (any, error)

// Registry holds the three named function tables shared by reference
// into every Context (spec §3 invariant I2), plus the $id -> mapping
// lookup table used by the dereferencer and $extend.
type Registry struct {
	Initializers map[string]Initializer
	Transformers map[string]Transformer
	Plugins      map[string]Plugin
	Mappings     *MappingRegistry

	// MaxConcurrency bounds the number of goroutines an each fan-out may
	// run at once (spec §9); first/last/all alternatives are read one
	// after another. Defaults to GOMAXPROCS.
	MaxConcurrency int

	// Sink receives values from descriptors carrying a stdout key
	// (spec §14). Nil means such values are simply discarded.
	Sink Sink
}

// NewRegistry returns a Registry with empty, ready-to-use function tables
// and a fresh mapping registry.
func NewRegistry() *Registry {
	return &Registry{
		Initializers:   make(map[string]Initializer),
		Transformers:   make(map[string]Transformer),
		Plugins:        make(map[string]Plugin),
		Mappings:       NewMappingRegistry(),
		MaxConcurrency: runtime.GOMAXPROCS(0),
	}
}

// MappingRegistry maps a mapping's $id to its (already $extend-resolved)
// descriptor. Lookups of an unregistered name return (nil, false); per
// spec §7 this is never an error except from Extend itself.
type MappingRegistry struct {
	byID map[string]*Descriptor
}

// NewMappingRegistry returns an empty registry.
func NewMappingRegistry() *MappingRegistry {
	return &MappingRegistry{byID: make(map[string]*Descriptor)}
}

// Lookup returns the mapping registered under id.
func (r *MappingRegistry) Lookup(id string) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Register stores descriptor under id, returning ErrDuplicateMappingID if
// id is already taken.
func (r *MappingRegistry) Register(id string, descriptor *Descriptor) error {
	if _, exists := r.byID[id]; exists {
		return ErrDuplicateMappingID
	}
	r.byID[id] = descriptor
	return nil
}

// Put stores descriptor under id unconditionally, overwriting any prior
// registration — used by Extend to replace a mapping with its flattened
// form after resolution.
func (r *MappingRegistry) Put(id string, descriptor *Descriptor) {
	r.byID[id] = descriptor
}

// IDs returns every registered mapping name, in no particular order.
func (r *MappingRegistry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids
}
