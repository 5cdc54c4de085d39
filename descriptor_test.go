package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDescriptorPreservesKeyOrder(t *testing.T) {
	data := []byte(`{"c": 1, "a": 2, "b": 3}`)
	desc, err := ParseDescriptor(data)
	assert.NoError(t, err)
	assert.Equal(t, KindObject, desc.Kind)
	assert.Equal(t, []string{"c", "a", "b"}, desc.Fields.Keys())
}

func TestParseDescriptorShapes(t *testing.T) {
	str, err := ParseDescriptor([]byte(`"/user/name"`))
	assert.NoError(t, err)
	assert.Equal(t, KindString, str.Kind)
	assert.Equal(t, "/user/name", str.Str)

	arr, err := ParseDescriptor([]byte(`["/a", "/b"]`))
	assert.NoError(t, err)
	assert.Equal(t, KindArray, arr.Kind)
	assert.Len(t, arr.List, 2)

	num, err := ParseDescriptor([]byte(`42`))
	assert.NoError(t, err)
	assert.Equal(t, KindScalar, num.Kind)
	assert.Equal(t, float64(42), num.Scalar)
}

func TestDescriptorHasDistinguishesZeroFromAbsent(t *testing.T) {
	desc, err := ParseDescriptor([]byte(`{"minimum": 0}`))
	assert.NoError(t, err)
	assert.True(t, desc.Has("minimum"))
	assert.False(t, desc.Has("maximum"))
}

func TestPairingsReadsMappingInOrder(t *testing.T) {
	desc, err := ParseDescriptor([]byte(`{"mapping": {"/b": "/y", "/a": "/x"}}`))
	assert.NoError(t, err)
	pairings := desc.Pairings()
	assert.Len(t, pairings, 2)
	assert.Equal(t, "/b", pairings[0].Target)
	assert.Equal(t, "/a", pairings[1].Target)
}

func TestPairingsUnwrapsNestedMappingWrapper(t *testing.T) {
	desc, err := ParseDescriptor([]byte(`{"each": {"mapping": {"/t": "/title"}}}`))
	assert.NoError(t, err)
	pairings := desc.Pairings()
	assert.Len(t, pairings, 1)
	assert.Equal(t, "/t", pairings[0].Target)
	assert.Equal(t, "/title", pairings[0].Descriptor.Str)
}

func TestParseMappingLibraryRecognizesContainer(t *testing.T) {
	lib, err := ParseMappingLibrary([]byte(`{"mappings": [{"$id": "a", "mapping": {}}, {"$id": "b", "mapping": {}}]}`))
	assert.NoError(t, err)
	assert.Nil(t, lib.Descriptor)
	assert.Len(t, lib.Mappings, 2)
}

func TestParseMappingLibraryBareMapping(t *testing.T) {
	lib, err := ParseMappingLibrary([]byte(`{"mapping": {"/x": "/y"}}`))
	assert.NoError(t, err)
	assert.NotNil(t, lib.Descriptor)
	assert.Nil(t, lib.Mappings)
}
