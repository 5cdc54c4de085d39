package mapper

import "context"

// Read dispatches a single descriptor (spec §4.6): a bare name or $ref
// is dereferenced against the mapping registry first; the result is
// then either recursed into as a nested mapping (Nest) or evaluated as
// a leaf value (Evaluate), depending on whether it carries a
// mapping/each body.
func Read(goCtx context.Context, desc *Descriptor, parentCtx *Context, changes *ShiftChanges) (any, error) {
	if desc == nil {
		return Undefined, nil
	}
	// An array descriptor is a list of alternatives: each is read in turn
	// and the first defined, truthy result wins.
	if desc.Kind == KindArray {
		for _, alt := range desc.List {
			v, err := Read(goCtx, alt, parentCtx, changes)
			if err != nil {
				return nil, err
			}
			if IsDefined(v) && truthy(v) {
				return v, nil
			}
		}
		return Undefined, nil
	}
	resolved := desc
	if desc.Kind == KindString {
		resolved = Deref(desc, parentCtx.Registry.Mappings)
		if resolved == nil {
			return Undefined, nil
		}
	} else if desc.Kind == KindObject {
		if _, ok := desc.StringField("$ref"); ok {
			resolved = Deref(desc, parentCtx.Registry.Mappings)
			if resolved == nil {
				return Undefined, nil
			}
		}
	}

	// A mapping/each body is only a nesting point on its own; paired with
	// "template" it instead feeds that pipeline stage's parameter build
	// (spec §8), so the whole descriptor still goes through Evaluate.
	if resolved.Kind == KindObject && (resolved.Has("mapping") || resolved.Has("each")) && !resolved.Has("template") {
		return Nest(goCtx, resolved, parentCtx, changes)
	}

	child, err := Shift(goCtx, resolved, parentCtx, changes)
	if err != nil {
		return nil, err
	}
	return Evaluate(goCtx, resolved, child)
}

// Nest evaluates a mapping or each descriptor's body, assembling the
// pairings (or per-element pairings) into the resulting object/array
// (spec §4.4, §9 Map/each).
func Nest(goCtx context.Context, desc *Descriptor, parentCtx *Context, changes *ShiftChanges) (any, error) {
	child, err := Shift(goCtx, desc, parentCtx, changes)
	if err != nil {
		return nil, err
	}
	if child.Mapping == nil {
		return Undefined, nil
	}

	if desc.Kind == KindObject && desc.Has("each") {
		arr, ok := child.Source.([]any)
		if !ok {
			if IsUndefined(child.Source) {
				return []any{}, nil
			}
			arr = []any{child.Source}
		}
		return evalEach(goCtx, child, arr)
	}

	return evalMapping(goCtx, child)
}

// evalMapping walks a context's pairings in order, writing each defined
// value into a freshly built target tree via its target pointer.
// Pairings whose value is Undefined are omitted entirely (spec §4.4
// invariant). Once the shared error list is non-empty after a pairing,
// the remaining pairings are skipped and the mapping evaluates to nil.
func evalMapping(goCtx context.Context, child *Context) (any, error) {
	var root any = map[string]any{}
	for _, pairing := range child.Pairings {
		val, err := Read(goCtx, pairing.Descriptor, child, nil)
		if err != nil {
			return nil, err
		}
		if !IsUndefined(val) {
			var setErr error
			root, setErr = Set(root, pairing.Target, val)
			if setErr != nil {
				return nil, setErr
			}
		}
		if child.Errors.Len() > 0 {
			return nil, nil
		}
	}
	return root, nil
}

// evalEach fans an array source out across the shared body mapping, one
// shifted context per element (carrying the element's index into the
// source path per spec §4.2), bounded to MaxConcurrency concurrent
// goroutines (spec §9 O1-O3: results are assembled back in source order
// regardless of completion order).
func evalEach(goCtx context.Context, child *Context, arr []any) (any, error) {
	out := make([]any, len(arr))
	errs := make([]error, len(arr))

	limit := child.Registry.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	done := make(chan int, len(arr))

	for i, elem := range arr {
		i, elem := i, elem
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; done <- i }()
			idx := i
			itemCtx, shiftErr := Shift(goCtx, nil, child, &ShiftChanges{Source: elem, HasSource: true, Index: &idx})
			if shiftErr != nil {
				errs[i] = shiftErr
				return
			}
			itemCtx.Mapping = child.Mapping
			itemCtx.Pairings = child.Mapping.Pairings()
			v, err := evalMapping(goCtx, itemCtx)
			out[i] = v
			errs[i] = err
		}()
	}
	for range arr {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Map runs desc as the root mapping against input, producing the final
// Result (spec §9's Mapper.Map / facade entrypoint). desc may itself be
// a bare mapping-name reference, resolved against registry.Mappings
// first.
func Map(goCtx context.Context, desc *Descriptor, registry *Registry, input any) (*Result, error) {
	root := NewRootContext(input, map[string]any{}, registry)

	resolved := Deref(desc, registry.Mappings)
	if resolved == nil {
		resolved = desc
	}

	val, err := Nest(goCtx, resolved, root, nil)
	if err != nil {
		return nil, err
	}
	target, _ := val.(map[string]any)
	if target == nil {
		target = map[string]any{}
	}
	return &Result{
		Target: target,
		Valid:  root.Errors.Len() == 0,
		Errors: root.Errors.All(),
	}, nil
}
