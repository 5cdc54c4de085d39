package mapper

// Deref implements spec §4.4/§9 open question 3, with the intended
// precedence resolved: a bare string is looked up as a mapping name
// first; it is only treated as a JSON Pointer if no mapping is
// registered under that name. An object carrying $ref always performs a
// name lookup, and a missing name resolves to nil (downstream treated
// as a no-op) rather than an error — only Extend errors on an unknown
// name (spec §7).
func Deref(ref *Descriptor, registry *MappingRegistry) *Descriptor {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case KindString:
		if m, ok := registry.Lookup(ref.Str); ok {
			return m
		}
		return ref
	case KindObject:
		if name, ok := ref.StringField("$ref"); ok {
			m, ok := registry.Lookup(name)
			if !ok {
				return nil
			}
			return m
		}
		return ref
	default:
		return ref
	}
}
