package mapper

// ExtendAll eagerly resolves every $extend chain registered in registry,
// replacing each mapping's stored descriptor with its flattened form
// (spec §4.7). It is mutually recursive across chains and detects cycles
// via a per-call visiting set, returning ErrExtendCycle the moment a name
// reappears on its own ancestor chain.
func ExtendAll(registry *MappingRegistry) error {
	resolved := make(map[string]bool)
	for _, id := range registry.IDs() {
		if resolved[id] {
			continue
		}
		if err := extendOne(id, registry, resolved, make(map[string]bool)); err != nil {
			return err
		}
	}
	return nil
}

func extendOne(id string, registry *MappingRegistry, resolved, visiting map[string]bool) error {
	if resolved[id] {
		return nil
	}
	if visiting[id] {
		return ErrExtendCycle
	}
	visiting[id] = true
	defer delete(visiting, id)

	d, ok := registry.Lookup(id)
	if !ok {
		return ErrUnknownExtendParent
	}

	parentName, hasExtend := d.StringField("$extend")
	if hasExtend {
		if _, ok := registry.Lookup(parentName); !ok {
			return ErrUnknownExtendParent
		}
		if err := extendOne(parentName, registry, resolved, visiting); err != nil {
			return err
		}
		parent, _ := registry.Lookup(parentName)
		registry.Put(id, Merge(parent, d))
	}

	resolved[id] = true
	return nil
}

// Merge flattens child onto parent per spec §4.7: $id and description
// come from child; the merged mapping's keys are the union of parent and
// child keys in stable first-appearance order (computed by reversing the
// concatenated key list, deduping to front, then reversing back — child
// order wins for shared keys, new child keys append in child order,
// parent-only keys keep their parent position). Values come from the
// child where the key is redefined there, else from the parent.
func Merge(parent, child *Descriptor) *Descriptor {
	parentPairs := mappingFields(parent)
	childPairs := mappingFields(child)

	combined := append(append([]string{}, parentPairs.Keys()...), childPairs.Keys()...)
	for i, j := 0, len(combined)-1; i < j; i, j = i+1, j-1 {
		combined[i], combined[j] = combined[j], combined[i]
	}
	seen := make(map[string]bool, len(combined))
	deduped := make([]string, 0, len(combined))
	for _, k := range combined {
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, k)
		}
	}
	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}

	merged := NewOrderedMap()
	for _, k := range deduped {
		if v, ok := childPairs.Get(k); ok {
			merged.Set(k, v)
			continue
		}
		v, _ := parentPairs.Get(k)
		merged.Set(k, v)
	}

	fields := NewOrderedMap()
	if v, ok := child.Fields.Get("$id"); ok {
		fields.Set("$id", v)
	}
	if v, ok := child.Fields.Get("description"); ok {
		fields.Set("description", v)
	}
	fields.Set("mapping", merged)
	return &Descriptor{Kind: KindObject, Fields: fields}
}

// mappingFields returns a mapping descriptor's pairing object, under
// whichever of "mapping"/"each" it is keyed by, or an empty map.
func mappingFields(d *Descriptor) *OrderedMap {
	if d == nil || d.Kind != KindObject {
		return NewOrderedMap()
	}
	if raw, ok := d.Fields.Get("mapping"); ok {
		if obj, ok := raw.(*OrderedMap); ok {
			return obj
		}
	}
	if raw, ok := d.Fields.Get("each"); ok {
		if obj, ok := raw.(*OrderedMap); ok {
			return obj
		}
	}
	return NewOrderedMap()
}
