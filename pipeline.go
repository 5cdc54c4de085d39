package mapper

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// recognizedKeys are descriptor keys consumed by the pipeline/evaluator
// itself; any other key on an object descriptor is consulted against
// the plugin registry (spec §3, §9 "plugin key iteration order").
var recognizedKeys = map[string]bool{
	"$id": true, "$extend": true, "description": true, "$ref": true,
	"source": true, "target": true, "input": true, "output": true,
	"first": true, "last": true, "all": true, "switch": true, "find": true,
	"mapping": true, "each": true,
	"concat": true, "init": true, "constant": true, "random": true, "unique": true,
	"template": true, "transform": true, "as": true, "default": true, "regexp_i": true,
	"type": true, "maximum": true, "minimum": true, "multipleOf": true,
	"minLength": true, "maxLength": true, "enum": true, "pattern": true, "required": true,
	"stdout": true, "pointer": true,
}

// Evaluate runs the fixed fourteen-stage value pipeline (spec §4.5)
// against a leaf descriptor, returning the derived value. Plugin,
// template, and transform calls are the suspension points; goCtx
// carries cancellation/deadline through to those host-supplied
// functions without the engine itself ever canceling its own traversal.
func Evaluate(goCtx context.Context, desc *Descriptor, ectx *EvalContext) (any, error) {
	value, err := selectSource(goCtx, desc, ectx)
	if err != nil {
		return nil, err
	}
	value, err = applySwitch(goCtx, desc, ectx, value)
	if err != nil {
		return nil, err
	}
	value, err = applyPlugins(goCtx, desc, ectx, value)
	if err != nil {
		return nil, err
	}
	value = applyFind(desc, value)
	value = applyConcat(desc, value)
	value, err = applyInit(goCtx, desc, ectx, value)
	if err != nil {
		return nil, err
	}
	value = applyConstant(desc, value)
	value = applyRandom(desc, value)
	value, err = applyTemplate(goCtx, desc, ectx, value)
	if err != nil {
		return nil, err
	}
	value, err = applyTransform(goCtx, desc, ectx, value)
	if err != nil {
		return nil, err
	}
	runValidators(ectx, desc, value)
	value = applyDefault(desc, value)
	value = applyRegexpI(desc, value)
	value = coerce(desc, value)
	writeToSink(desc, ectx, value)
	return value, nil
}

// writeToSink forwards value to the registered Sink when the descriptor
// carries a stdout key (spec §14).
func writeToSink(desc *Descriptor, ectx *EvalContext, value any) {
	if desc == nil || desc.Kind != KindObject || !desc.Has("stdout") || ectx.Registry == nil || ectx.Registry.Sink == nil {
		return
	}
	ectx.Registry.Sink.Write(value)
}

// selectSource implements pipeline stage 1.
func selectSource(goCtx context.Context, desc *Descriptor, ectx *EvalContext) (any, error) {
	if desc == nil {
		return ectx.Source, nil
	}
	if desc.Kind == KindString {
		return selectSourceString(goCtx, desc.Str, ectx)
	}
	if desc.Kind != KindObject {
		return desc.Scalar, nil
	}

	if s, ok := desc.StringField("source"); ok {
		return Get(ectx.Source, s), nil
	}
	if s, ok := desc.StringField("target"); ok {
		return Get(ectx.Target, s), nil
	}
	if s, ok := desc.StringField("input"); ok {
		return Get(ectx.Input, s), nil
	}
	if s, ok := desc.StringField("output"); ok {
		return Get(ectx.Output, s), nil
	}
	if list := desc.DescriptorList("first"); list != nil {
		for _, item := range list {
			v, err := Read(goCtx, item, ectx, nil)
			if err != nil {
				return nil, err
			}
			if IsDefined(v) {
				return v, nil
			}
		}
		return Undefined, nil
	}
	if list := desc.DescriptorList("last"); list != nil {
		var last any = Undefined
		for _, item := range list {
			v, err := Read(goCtx, item, ectx, nil)
			if err != nil {
				return nil, err
			}
			if IsDefined(v) {
				last = v
			}
		}
		return last, nil
	}
	if list := desc.DescriptorList("all"); list != nil {
		out := []any{}
		for _, item := range list {
			v, err := Read(goCtx, item, ectx, nil)
			if err != nil {
				return nil, err
			}
			if IsDefined(v) {
				out = append(out, v)
			}
		}
		return out, nil
	}
	return ectx.Source, nil
}

func selectSourceString(goCtx context.Context, s string, ectx *EvalContext) (any, error) {
	if strings.HasPrefix(s, "/") {
		return Get(ectx.Source, s), nil
	}
	if strings.Contains(s, "../") {
		resolved := Resolve(ectx.Paths.Source, s)
		return Get(ectx.Input, resolved), nil
	}
	return ectx.Source, nil
}

// applySwitch implements pipeline stage 2.
func applySwitch(goCtx context.Context, desc *Descriptor, ectx *EvalContext, value any) (any, error) {
	sw := desc.SubDescriptor("switch")
	if sw == nil || sw.Kind != KindObject {
		return value, nil
	}

	root, pointer := value, ""
	if p, ok := sw.StringField("source"); ok {
		root, pointer = ectx.Source, p
	} else if p, ok := sw.StringField("target"); ok {
		root, pointer = ectx.Target, p
	} else if p, ok := sw.StringField("input"); ok {
		root, pointer = ectx.Input, p
	} else if p, ok := sw.StringField("output"); ok {
		root, pointer = ectx.Output, p
	}
	branch := Get(root, pointer)

	casesRaw, ok := sw.field("cases")
	if !ok {
		return Undefined, nil
	}
	cases, ok := casesRaw.(*OrderedMap)
	if !ok {
		return Undefined, nil
	}

	key := fmt.Sprint(branch)
	selected, ok := cases.Get(key)
	if !ok {
		selected, ok = cases.Get("default")
		if !ok {
			return Undefined, nil
		}
	}
	return Read(goCtx, ToDescriptor(selected), ectx, &ShiftChanges{Source: value, HasSource: true})
}

// applyPlugins implements pipeline stage 3: every non-recognized key on
// the descriptor, in JSON key order, is dispatched to a registered
// plugin. Missing plugin names are silently skipped (spec §7).
func applyPlugins(goCtx context.Context, desc *Descriptor, ectx *EvalContext, value any) (any, error) {
	if desc == nil || desc.Kind != KindObject || ectx.Registry == nil {
		return value, nil
	}
	for _, key := range desc.Fields.Keys() {
		if recognizedKeys[key] {
			continue
		}
		plugin, ok := ectx.Registry.Plugins[key]
		if !ok {
			continue
		}
		raw, _ := desc.Fields.Get(key)
		sub := ToDescriptor(raw)
		newVal, err := plugin(goCtx, sub, value, ectx)
		if err != nil {
			return nil, err
		}
		if sub.Kind == KindObject {
			if p, ok := sub.StringField("pointer"); ok {
				newVal = Get(newVal, p)
			}
		}
		value = newVal
	}
	return value, nil
}

// applyFind implements pipeline stage 4.
func applyFind(desc *Descriptor, value any) any {
	find := desc.SubDescriptor("find")
	if find == nil || find.Kind != KindObject {
		return value
	}
	eqRaw, ok := find.field("eq")
	if !ok {
		return value
	}
	eq, ok := eqRaw.(*OrderedMap)
	if !ok {
		return value
	}

	var arr []any
	if a, ok := value.([]any); ok {
		arr = a
	} else {
		arr = []any{value}
	}

	for _, elem := range arr {
		if matchesEq(elem, eq) {
			if p, ok := find.StringField("pointer"); ok {
				return Get(elem, p)
			}
			return elem
		}
	}
	return Undefined
}

func matchesEq(elem any, eq *OrderedMap) bool {
	obj, ok := elem.(*OrderedMap)
	if !ok {
		if m, ok := elem.(map[string]any); ok {
			for _, k := range eq.Keys() {
				want, _ := eq.Get(k)
				if got, ok := m[k]; !ok || got != want {
					return false
				}
			}
			return true
		}
		return false
	}
	for _, k := range eq.Keys() {
		want, _ := eq.Get(k)
		got, ok := obj.Get(k)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// applyConcat implements pipeline stage 5: flatten an array value by one
// level.
func applyConcat(desc *Descriptor, value any) any {
	if !desc.Has("concat") {
		return value
	}
	arr, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, 0, len(arr))
	for _, item := range arr {
		if sub, ok := item.([]any); ok {
			out = append(out, sub...)
		} else {
			out = append(out, item)
		}
	}
	return out
}

// applyInit implements pipeline stage 6. The init value may be a plain
// registered name, or (spec SPEC_FULL §11 convenience) call syntax like
// "now(\"2006-01-02\")", whose parsed arguments are passed through as
// the initializer's options.
func applyInit(goCtx context.Context, desc *Descriptor, ectx *EvalContext, value any) (any, error) {
	name, ok := desc.StringField("init")
	if !ok || ectx.Registry == nil {
		return value, nil
	}
	fnName := name
	var args []any
	if call, _ := parseFunctionCall(name); call != nil {
		fnName = call.Name
		args = call.Args
	}
	fn, ok := ectx.Registry.Initializers[fnName]
	if !ok {
		return value, nil
	}
	return fn(goCtx, value, ectx, args...)
}

// applyConstant implements pipeline stage 7.
func applyConstant(desc *Descriptor, value any) any {
	if !desc.Has("constant") {
		return value
	}
	return desc.Raw("constant")
}

// applyRandom implements pipeline stage 8. With unique, the number of
// selections is capped at len(value), and every multi-pick stops after
// 4*len(value)+4 draws, so a unique request larger than the source array
// terminates instead of looping forever (spec §8 boundary behavior); a
// unique pick that runs out of draws returns fewer elements.
func applyRandom(desc *Descriptor, value any) any {
	if !desc.Has("random") {
		return value
	}
	n, ok := asFloat(desc.Raw("random"))
	if !ok {
		return value
	}
	count := int(n)
	arr, ok := value.([]any)
	if !ok || len(arr) == 0 || count < 1 {
		return value
	}
	if count == 1 {
		return arr[rand.Intn(len(arr))]
	}

	unique, _ := desc.Raw("unique").(bool)
	target := count
	if unique && target > len(arr) {
		target = len(arr)
	}
	picked := make([]any, 0, target)
	seen := make(map[int]bool, target)
	maxAttempts := len(arr)*4 + 4
	for attempts := 0; len(picked) < target && attempts < maxAttempts; attempts++ {
		idx := rand.Intn(len(arr))
		if unique {
			if seen[idx] {
				continue
			}
			seen[idx] = true
		}
		picked = append(picked, arr[idx])
	}
	return picked
}

// applyTemplate implements pipeline stage 9: the sub-mapping (if any) is
// evaluated against value to build a parameter object, then {{name}}
// occurrences in the template string are substituted from it.
func applyTemplate(goCtx context.Context, desc *Descriptor, ectx *EvalContext, value any) (any, error) {
	tmpl, ok := desc.StringField("template")
	if !ok {
		return value, nil
	}
	params := map[string]any{}
	if desc.IsMapping() {
		mappingDesc := desc
		sub := desc.SubDescriptor("mapping")
		if sub == nil {
			sub = desc.SubDescriptor("each")
		}
		if sub != nil && sub.Kind == KindString {
			if named := Deref(sub, ectx.Registry.Mappings); named != nil {
				mappingDesc = named
			}
		}
		paramCtx := &Context{
			Input:    ectx.Input,
			Output:   ectx.Output,
			Source:   value,
			Target:   ectx.Target,
			Paths:    ectx.Paths,
			Errors:   ectx.Errors,
			Registry: ectx.Registry,
			Mapping:  mappingDesc,
			Pairings: mappingDesc.Pairings(),
		}
		nested, err := evalMapping(goCtx, paramCtx)
		if err != nil {
			return nil, err
		}
		if m, ok := nested.(map[string]any); ok {
			for k, v := range m {
				params[strings.TrimPrefix(k, "/")] = v
			}
		}
	}
	return renderTemplate(tmpl, params), nil
}

// applyTransform implements pipeline stage 10, with the corrected
// array-form semantics from spec §9 open question 2: each string step
// names a transformer applied to the fold accumulator, which is
// reassigned, rather than to the whole array or to the original value.
func applyTransform(goCtx context.Context, desc *Descriptor, ectx *EvalContext, value any) (any, error) {
	raw, ok := desc.field("transform")
	if !ok || ectx.Registry == nil {
		return value, nil
	}
	switch t := raw.(type) {
	case string:
		fn, ok := ectx.Registry.Transformers[t]
		if !ok {
			return value, nil
		}
		return fn(goCtx, value, ectx, nil)
	case []any:
		result := value
		for _, step := range t {
			switch s := step.(type) {
			case string:
				if fn, ok := ectx.Registry.Transformers[s]; ok {
					newVal, err := fn(goCtx, result, ectx, nil)
					if err != nil {
						return nil, err
					}
					result = newVal
				}
			case *OrderedMap:
				for _, name := range s.Keys() {
					options, _ := s.Get(name)
					if fn, ok := ectx.Registry.Transformers[name]; ok {
						newVal, err := fn(goCtx, result, ectx, options)
						if err != nil {
							return nil, err
						}
						result = newVal
					}
				}
			}
		}
		return result, nil
	default:
		return value, nil
	}
}

// applyDefault implements pipeline stage 12: runs after validation, per
// spec §8's invariant that default never runs before validation.
func applyDefault(desc *Descriptor, value any) any {
	if !desc.Has("default") || !IsUndefined(value) {
		return value
	}
	return desc.Raw("default")
}

// applyRegexpI implements pipeline stage 13.
func applyRegexpI(desc *Descriptor, value any) any {
	if !desc.Has("regexp_i") {
		return value
	}
	s, ok := value.(string)
	if !ok {
		return value
	}
	return "/" + s + "/i"
}

// coerce implements pipeline stage 14.
func coerce(desc *Descriptor, value any) any {
	as, ok := desc.StringField("as")
	if !ok {
		return value
	}
	switch as {
	case "string":
		if value == nil || IsUndefined(value) {
			return ""
		}
		return fmt.Sprint(value)
	case "number":
		switch v := value.(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return value
	case "boolean":
		return truthy(value)
	case "json":
		raw, err := json.Marshal(unwrapOrdered(value))
		if err != nil {
			return value
		}
		return string(raw)
	default:
		return value
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// unwrapOrdered converts *OrderedMap nodes back to plain map[string]any
// (recursively) so goccy/go-json can marshal them; used only by the
// "as: json" coercion.
func unwrapOrdered(value any) any {
	switch v := value.(type) {
	case *OrderedMap:
		out := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			raw, _ := v.Get(k)
			out[k] = unwrapOrdered(raw)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = unwrapOrdered(item)
		}
		return out
	default:
		return v
	}
}
