package mapper

import (
	"fmt"
	"strings"
)

// replace substitutes {key} placeholders in template with params[key],
// used by ValidationError.Error to render a human-readable message.
func replace(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}

// getDataType identifies the descriptor-language type name for a Go
// value, used by the "type" validator: array, boolean, integer, null,
// number, object, string.
func getDataType(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		if val == float64(int64(val)) {
			return "integer"
		}
		return "number"
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case *OrderedMap, map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
