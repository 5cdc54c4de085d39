package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftInheritsSourceAndTargetByDefault(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{"a": 1}, map[string]any{}, registry)

	child, err := Shift(context.Background(), ToDescriptor(NewOrderedMap()), root, nil)
	assert.NoError(t, err)

	assert.Equal(t, root.Source, child.Source)
	assert.Equal(t, root.Target, child.Target)
	assert.Equal(t, "/", child.Paths.Source)
	assert.Equal(t, "/", child.Paths.Target)
}

func TestShiftAccumulatesSourceAndTargetPaths(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{}, map[string]any{}, registry)
	root.Paths = Paths{Source: "/user", Target: "/profile"}

	desc := NewOrderedMap()
	desc.Set("source", "name")
	desc.Set("target", "fullName")

	child, err := Shift(context.Background(), ToDescriptor(desc), root, nil)
	assert.NoError(t, err)

	assert.Equal(t, "/user/name", child.Paths.Source)
	assert.Equal(t, "/profile/fullName", child.Paths.Target)
}

func TestShiftOverridesSourceAndTargetFromChanges(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{}, map[string]any{}, registry)

	child, err := Shift(context.Background(), ToDescriptor(NewOrderedMap()), root, &ShiftChanges{
		Source: "elem", HasSource: true,
		Target: "out", HasTarget: true,
	})
	assert.NoError(t, err)

	assert.Equal(t, "elem", child.Source)
	assert.Equal(t, "out", child.Target)
}

func TestShiftInsertsIndexSegmentForEach(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{}, map[string]any{}, registry)
	root.Paths.Source = "/items"

	idx := 2
	child, err := Shift(context.Background(), nil, root, &ShiftChanges{Index: &idx})
	assert.NoError(t, err)

	assert.Equal(t, "/items/2", child.Paths.Source)
}

func TestShiftComputesInlinePairings(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{}, map[string]any{}, registry)

	mapping := NewOrderedMap()
	mapping.Set("/first", "/a")
	desc := NewOrderedMap()
	desc.Set("mapping", mapping)

	child, err := Shift(context.Background(), ToDescriptor(desc), root, nil)
	assert.NoError(t, err)

	assert.NotNil(t, child.Mapping)
	pairings := child.Mapping.Pairings()
	assert.Len(t, pairings, 1)
	assert.Equal(t, "/first", pairings[0].Target)
}

func TestShiftResolvesNamedMappingReference(t *testing.T) {
	registry := NewRegistry()
	named := NewOrderedMap()
	namedMapping := NewOrderedMap()
	namedMapping.Set("/x", "/a")
	named.Set("$id", "sub")
	named.Set("mapping", namedMapping)
	registry.Mappings.Register("sub", ToDescriptor(named))

	root := NewRootContext(map[string]any{}, map[string]any{}, registry)
	desc := NewOrderedMap()
	desc.Set("mapping", "sub")

	child, err := Shift(context.Background(), ToDescriptor(desc), root, nil)
	assert.NoError(t, err)

	assert.NotNil(t, child.Mapping)
	pairings := child.Mapping.Pairings()
	assert.Len(t, pairings, 1)
	assert.Equal(t, "/x", pairings[0].Target)
}

func TestShiftComputesSeedValueForMappingOwnSource(t *testing.T) {
	registry := NewRegistry()
	root := NewRootContext(map[string]any{
		"books": []any{map[string]any{"title": "Dune"}},
	}, map[string]any{}, registry)

	body := NewOrderedMap()
	body.Set("/t", "/title")
	desc := NewOrderedMap()
	desc.Set("source", "/books")
	desc.Set("each", body)

	child, err := Shift(context.Background(), ToDescriptor(desc), root, nil)
	assert.NoError(t, err)

	arr, ok := child.Source.([]any)
	assert.True(t, ok, "Shift must resolve the mapping/each descriptor's own source field into an array seed, not just inherit the parent's whole source")
	assert.Len(t, arr, 1)
}
