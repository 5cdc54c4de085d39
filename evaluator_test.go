package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapDirectPointerCopy(t *testing.T) {
	registry := NewRegistry()
	root := buildMapping("root", "", map[string]string{
		"/fullName": "/name",
	}, []string{"/fullName"})

	result, err := Map(context.Background(), root, registry, map[string]any{"name": "Ada Lovelace"})
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", result.Target["fullName"])
	assert.True(t, result.Valid)
}

// buildEachProjection constructs the literal spec §8 scenario 2 shape:
// a mapping/each descriptor whose own "each" value is itself nested as
// { "mapping": {...pairs} } rather than the pairs object directly.
func buildEachProjection(body *OrderedMap) *Descriptor {
	wrapper := NewOrderedMap()
	wrapper.Set("mapping", body)

	each := NewOrderedMap()
	each.Set("source", "/users")
	each.Set("each", wrapper)

	rootMapping := NewOrderedMap()
	rootMapping.Set("/people", each)
	fields := NewOrderedMap()
	fields.Set("$id", "root")
	fields.Set("mapping", rootMapping)
	return &Descriptor{Kind: KindObject, Fields: fields}
}

func TestMapEachProjection(t *testing.T) {
	registry := NewRegistry()

	body := NewOrderedMap()
	body.Set("/id", "/id")
	body.Set("/label", "/name")
	root := buildEachProjection(body)

	input := map[string]any{
		"users": []any{
			map[string]any{"id": "1", "name": "Ada"},
			map[string]any{"id": "2", "name": "Grace"},
		},
	}

	result, err := Map(context.Background(), root, registry, input)
	assert.NoError(t, err)

	people, ok := result.Target["people"].([]any)
	assert.True(t, ok)
	assert.Len(t, people, 2)

	first := people[0].(map[string]any)
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "Ada", first["label"])

	second := people[1].(map[string]any)
	assert.Equal(t, "2", second["id"])
	assert.Equal(t, "Grace", second["label"])
}

func TestMapEachOverEmptyArray(t *testing.T) {
	registry := NewRegistry()

	body := NewOrderedMap()
	body.Set("/id", "/id")
	root := buildEachProjection(body)

	result, err := Map(context.Background(), root, registry, map[string]any{"users": []any{}})
	assert.NoError(t, err)
	people, ok := result.Target["people"].([]any)
	assert.True(t, ok)
	assert.Len(t, people, 0)
}

func TestMapValidationErrorsPropagateToResult(t *testing.T) {
	registry := NewRegistry()
	body := NewOrderedMap()
	body.Set("/age", "age-field")

	fields := NewOrderedMap()
	fields.Set("$id", "root")
	fields.Set("mapping", body)
	root := &Descriptor{Kind: KindObject, Fields: fields}

	// Replace the plain pointer with an inline descriptor carrying a
	// minimum constraint that the input value fails.
	ageDesc := NewOrderedMap()
	ageDesc.Set("source", "/age")
	ageDesc.Set("minimum", 18.0)
	body.Set("/age", ageDesc)

	result, err := Map(context.Background(), root, registry, map[string]any{"age": 5.0})
	assert.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "value_below_minimum", result.Errors[0].Code)
}

func TestMapTemplateField(t *testing.T) {
	registry := NewRegistry()

	mapping := NewOrderedMap()
	mapping.Set("/first", "/f")
	mapping.Set("/last", "/l")

	fields := NewOrderedMap()
	fields.Set("source", "/person")
	fields.Set("mapping", mapping)
	fields.Set("template", "{{first}} {{last}}")

	rootMapping := NewOrderedMap()
	rootMapping.Set("/greeting", &Descriptor{Kind: KindObject, Fields: fields})
	rootFields := NewOrderedMap()
	rootFields.Set("$id", "root")
	rootFields.Set("mapping", rootMapping)
	root := &Descriptor{Kind: KindObject, Fields: rootFields}

	input := map[string]any{"person": map[string]any{"f": "Ada", "l": "Lovelace"}}
	result, err := Map(context.Background(), root, registry, input)
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", result.Target["greeting"])
}
