package mapper

import "strings"

// evaluateType implements the "type" keyword (spec §4.8): array, boolean,
// integer, null, number, object, or string. A mismatch is only raised
// when value is defined; integer is a number with no fractional part,
// and object excludes arrays and null.
func evaluateType(desc *Descriptor, value any) *ValidationError {
	wantRaw, ok := desc.field("type")
	if !ok {
		return nil
	}
	if IsUndefined(value) {
		return nil
	}

	var want []string
	switch w := wantRaw.(type) {
	case string:
		want = []string{w}
	case []any:
		for _, item := range w {
			if s, ok := item.(string); ok {
				want = append(want, s)
			}
		}
	default:
		return nil
	}

	got := getDataType(value)
	for _, t := range want {
		if t == got {
			return nil
		}
		if t == "number" && got == "integer" {
			return nil
		}
	}
	return NewValidationError("type", "type_mismatch", "Value is {received} but should be {expected}", map[string]any{
		"expected": strings.Join(want, ", "),
		"received": got,
	})
}
