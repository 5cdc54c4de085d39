package mapper

// Kind discriminates the four descriptor shapes the language supports
// (spec §9: "an open sum over shapes ... the discriminator is key
// presence"). Rather than a class hierarchy, a descriptor is this tagged
// union with typed accessors.
type Kind int

const (
	// KindObject is a descriptor carrying recognized keys (source,
	// target, mapping, constant, ...) plus arbitrary plugin keys.
	KindObject Kind = iota
	// KindString is a bare string shorthand: a JSON Pointer, a
	// mapping-name reference, or (inside a template) a literal.
	KindString
	// KindArray is a disjunction list: alternatives tried via read,
	// first truthy result wins (spec §4.6) — or, within an object
	// field such as "first"/"all", a list of sub-descriptors.
	KindArray
	// KindScalar is any other bare JSON leaf (number, bool, null),
	// used only where a raw constant is expected in descriptor
	// position (e.g. a "cases" branch value).
	KindScalar
)

// Descriptor is a parsed node of the mapping language. Its Fields map
// (for KindObject) retains JSON key order, since plugin dispatch order
// and $extend's merge order both depend on it.
type Descriptor struct {
	Kind   Kind
	Str    string
	List   []*Descriptor
	Fields *OrderedMap
	Scalar any
}

// ToDescriptor wraps a raw decoded JSON value (string, *OrderedMap,
// []any, or scalar) as a Descriptor, recursively for arrays.
func ToDescriptor(raw any) *Descriptor {
	switch v := raw.(type) {
	case *Descriptor:
		return v
	case *OrderedMap:
		return &Descriptor{Kind: KindObject, Fields: v}
	case string:
		return &Descriptor{Kind: KindString, Str: v}
	case []any:
		list := make([]*Descriptor, len(v))
		for i, item := range v {
			list[i] = ToDescriptor(item)
		}
		return &Descriptor{Kind: KindArray, List: list}
	default:
		return &Descriptor{Kind: KindScalar, Scalar: v}
	}
}

// ParseDescriptor decodes JSON text into a Descriptor, preserving object
// key order throughout.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	raw, err := DecodeOrderedJSON(data)
	if err != nil {
		return nil, err
	}
	return ToDescriptor(raw), nil
}

// field returns the raw value of a key on an object descriptor.
func (d *Descriptor) field(key string) (any, bool) {
	if d == nil || d.Kind != KindObject {
		return nil, false
	}
	return d.Fields.Get(key)
}

// StringField returns key's value as a string, if present and a string.
func (d *Descriptor) StringField(key string) (string, bool) {
	v, ok := d.field(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether an object descriptor carries key at all (even if
// its value is null) — used for the "defined, not truthy" bound checks
// (e.g. minimum: 0).
func (d *Descriptor) Has(key string) bool {
	if d == nil || d.Kind != KindObject {
		return false
	}
	return d.Fields.Has(key)
}

// Raw returns key's raw decoded value.
func (d *Descriptor) Raw(key string) any {
	v, _ := d.field(key)
	return v
}

// SubDescriptor returns key's value converted to a *Descriptor.
func (d *Descriptor) SubDescriptor(key string) *Descriptor {
	v, ok := d.field(key)
	if !ok {
		return nil
	}
	return ToDescriptor(v)
}

// DescriptorList returns key's value as a list of sub-descriptors: the
// value is expected to be a JSON array (used for first/last/all).
func (d *Descriptor) DescriptorList(key string) []*Descriptor {
	v, ok := d.field(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Descriptor, len(arr))
	for i, item := range arr {
		out[i] = ToDescriptor(item)
	}
	return out
}

// IsMapping reports whether this descriptor has pairings of its own,
// directly (mapping) or via each, per spec §4.6's case split.
func (d *Descriptor) IsMapping() bool {
	if d == nil || d.Kind != KindObject {
		return false
	}
	return d.Fields.Has("mapping") || d.Fields.Has("each")
}

// Pairings returns the ordered (targetPointer, descriptor) entries of a
// mapping descriptor's mapping/each object, in JSON key order.
func (d *Descriptor) Pairings() []Pairing {
	if d == nil || d.Kind != KindObject {
		return nil
	}
	raw, ok := d.Fields.Get("mapping")
	if !ok {
		raw, ok = d.Fields.Get("each")
	}
	if !ok {
		return nil
	}
	obj, ok := raw.(*OrderedMap)
	if !ok {
		return nil
	}
	obj = unwrapPairingsObject(obj)
	pairings := make([]Pairing, 0, obj.Len())
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		pairings = append(pairings, Pairing{Target: key, Descriptor: ToDescriptor(v)})
	}
	return pairings
}

// unwrapPairingsObject resolves spec §4.3 step 5's nested shape, where a
// mapping/each value is itself { "mapping": {...pairs} } rather than the
// pairs object directly. Target pointers always start with "/" (or are
// the empty root pointer), so a lone bare "mapping" key can only be this
// wrapper, never a legitimate pairing.
func unwrapPairingsObject(obj *OrderedMap) *OrderedMap {
	if obj.Len() == 1 && obj.Keys()[0] == "mapping" {
		if inner, ok := obj.Get("mapping"); ok {
			if innerObj, ok := inner.(*OrderedMap); ok {
				return unwrapPairingsObject(innerObj)
			}
		}
	}
	return obj
}

// Pairing is one entry of a mapping: a target pointer and the
// source-side descriptor that produces its value.
type Pairing struct {
	Target     string
	Descriptor *Descriptor
}

// MappingLibrary is the top-level document passed to NewMapper:
// either a bare mapping descriptor, or a container of several named
// mappings under "mappings".
type MappingLibrary struct {
	Descriptor *Descriptor
	Mappings   []*Descriptor
}

// ParseMappingLibrary decodes a top-level mapping document, recognizing
// the "mappings" container shape described in spec §4.9.
func ParseMappingLibrary(data []byte) (*MappingLibrary, error) {
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, err
	}
	if d.Kind == KindObject && d.Fields.Has("mappings") {
		list := d.DescriptorList("mappings")
		return &MappingLibrary{Mappings: list}, nil
	}
	return &MappingLibrary{Descriptor: d}, nil
}
