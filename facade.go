package mapper

import "context"

// Mapper is the façade over a parsed, $extend-resolved mapping library
// plus its host-supplied function registries (spec §13). Zero value is
// not usable; construct with NewMapper.
type Mapper struct {
	registry *Registry
	root     *Descriptor
}

// NewMapper parses data as a mapping descriptor or mapping library
// (spec §2's {"mappings": [...]} container form), registers every named
// mapping, resolves all $extend chains eagerly, and returns a ready
// Mapper. For a single bare mapping document that is the root; for a
// "mappings" container the last entry becomes the root evaluated by Map.
func NewMapper(data []byte) (*Mapper, error) {
	lib, err := ParseMappingLibrary(data)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	var root *Descriptor

	if lib.Descriptor != nil {
		root = lib.Descriptor
		if id, ok := root.StringField("$id"); ok {
			if err := registry.Mappings.Register(id, root); err != nil {
				return nil, err
			}
		}
	} else {
		// In a multi-mapping library the last entry is the root: $extend
		// chains build toward their most-derived mapping, which by
		// convention is listed last (spec §4.9's container form doesn't
		// otherwise name a root).
		for _, m := range lib.Mappings {
			id, ok := m.StringField("$id")
			if !ok {
				return nil, ErrUnknownRootMapping
			}
			if err := registry.Mappings.Register(id, m); err != nil {
				return nil, err
			}
			root = m
		}
	}
	if root == nil {
		return nil, ErrNilDescriptor
	}

	if err := ExtendAll(registry.Mappings); err != nil {
		return nil, err
	}
	if id, ok := root.StringField("$id"); ok {
		if resolved, ok := registry.Mappings.Lookup(id); ok {
			root = resolved
		}
	}

	return &Mapper{registry: registry, root: root}, nil
}

// AddInitializer registers a named init-stage function.
func (m *Mapper) AddInitializer(name string, fn Initializer) *Mapper {
	m.registry.Initializers[name] = fn
	return m
}

// AddTransformer registers a named transform-stage function.
func (m *Mapper) AddTransformer(name string, fn Transformer) *Mapper {
	m.registry.Transformers[name] = fn
	return m
}

// AddPlugin registers a named plugin, consulted for any descriptor key
// the pipeline does not itself recognize.
func (m *Mapper) AddPlugin(name string, fn Plugin) *Mapper {
	m.registry.Plugins[name] = fn
	return m
}

// WithSink attaches the sink that stdout-marked descriptors write to.
func (m *Mapper) WithSink(sink Sink) *Mapper {
	m.registry.Sink = sink
	return m
}

// WithMaxConcurrency overrides the default GOMAXPROCS bound on each
// fan-out goroutines.
func (m *Mapper) WithMaxConcurrency(n int) *Mapper {
	if n > 0 {
		m.registry.MaxConcurrency = n
	}
	return m
}

// Map evaluates the root mapping against input, returning the target
// object plus accumulated validation errors (spec §13). A bare JSON
// array input is rewrapped per spec §4.9: the input becomes
// {"items": input} and the root mapping itself becomes the per-element
// body of an auto-generated "/items" each over it, so every element is
// independently evaluated through the user's unmodified mapping rather
// than the mapping being asked to address "/items" itself.
func (m *Mapper) Map(ctx context.Context, input any) (*Result, error) {
	root := m.root
	normalized := input
	if arr, ok := input.([]any); ok {
		normalized = map[string]any{"items": arr}
		root = wrapRootForArrayInput(root)
	}
	return Map(ctx, root, m.registry, normalized)
}

// wrapRootForArrayInput builds { mapping: { "/items": { source: "/items",
// each: { mapping: <root's own pairings> } } } }, taking the pairings
// from whichever of "mapping"/"each" the root itself uses. A root with
// neither key is returned unchanged.
func wrapRootForArrayInput(root *Descriptor) *Descriptor {
	pairsRaw, ok := root.Fields.Get("mapping")
	if !ok {
		pairsRaw, ok = root.Fields.Get("each")
	}
	if !ok {
		return root
	}

	eachWrapper := NewOrderedMap()
	eachWrapper.Set("mapping", pairsRaw)

	itemFields := NewOrderedMap()
	itemFields.Set("source", "/items")
	itemFields.Set("each", eachWrapper)
	itemDesc := &Descriptor{Kind: KindObject, Fields: itemFields}

	outerMapping := NewOrderedMap()
	outerMapping.Set("/items", itemDesc)

	outerFields := NewOrderedMap()
	outerFields.Set("mapping", outerMapping)
	return &Descriptor{Kind: KindObject, Fields: outerFields}
}
