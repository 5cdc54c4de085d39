package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMapperDirectPointerCopy(t *testing.T) {
	doc := []byte(`{
		"$id": "root",
		"mapping": {
			"/fullName": "/name",
			"/city": "/address/city"
		}
	}`)

	m, err := NewMapper(doc)
	assert.NoError(t, err)

	result, err := m.Map(context.Background(), map[string]any{
		"name":    "Ada Lovelace",
		"address": map[string]any{"city": "London"},
	})
	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "Ada Lovelace", result.Target["fullName"])
	assert.Equal(t, "London", result.Target["city"])
}

func TestNewMapperMappingLibraryWithExtend(t *testing.T) {
	doc := []byte(`{
		"mappings": [
			{
				"$id": "person",
				"mapping": {"/id": "/id", "/name": "/name"}
			},
			{
				"$id": "root",
				"$extend": "person",
				"mapping": {"/name": "/fullName", "/email": "/email"}
			}
		]
	}`)

	m, err := NewMapper(doc)
	assert.NoError(t, err)

	root, ok := m.registry.Mappings.Lookup("root")
	assert.True(t, ok)
	pairings := root.Pairings()
	assert.Len(t, pairings, 3)
}

func TestMapperWithPluginsAndInitializers(t *testing.T) {
	doc := []byte(`{
		"$id": "root",
		"mapping": {
			"/createdAt": {"init": "now"},
			"/slug": {"source": "/title", "slugify": true}
		}
	}`)

	m, err := NewMapper(doc)
	assert.NoError(t, err)
	m.AddInitializer("now", func(_ context.Context, _ any, _ *EvalContext, _ ...any) (any, error) {
		return "2026-07-31T00:00:00Z", nil
	})
	m.AddPlugin("slugify", func(_ context.Context, _ *Descriptor, value any, _ *EvalContext) (any, error) {
		s, _ := value.(string)
		return "slug-" + s, nil
	})

	result, err := m.Map(context.Background(), map[string]any{"title": "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "2026-07-31T00:00:00Z", result.Target["createdAt"])
	assert.Equal(t, "slug-hello", result.Target["slug"])
}

func TestMapperArrayInputIsWrappedUnderItems(t *testing.T) {
	// The user's mapping addresses each array element directly, as if it
	// always receives one element at a time — NewMapper/Map auto-wraps
	// it into a per-element "/items" each projection (spec §4.9), the
	// user never writes "/items" themselves.
	doc := []byte(`{
		"$id": "root",
		"mapping": {
			"/id": "/id",
			"/label": "/name"
		}
	}`)

	m, err := NewMapper(doc)
	assert.NoError(t, err)

	result, err := m.Map(context.Background(), []any{
		map[string]any{"id": "1", "name": "Ada"},
		map[string]any{"id": "2", "name": "Grace"},
	})
	assert.NoError(t, err)

	items, ok := result.Target["items"].([]any)
	assert.True(t, ok)
	assert.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "1", first["id"])
	assert.Equal(t, "Ada", first["label"])

	second := items[1].(map[string]any)
	assert.Equal(t, "2", second["id"])
	assert.Equal(t, "Grace", second["label"])
}
