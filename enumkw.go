package mapper

import "reflect"

// evaluateEnum implements "enum": value must equal one of the declared
// alternatives. Only applied when value is defined.
func evaluateEnum(desc *Descriptor, value any) *ValidationError {
	raw, ok := desc.field("enum")
	if !ok || IsUndefined(value) {
		return nil
	}
	alternatives, ok := raw.([]any)
	if !ok || len(alternatives) == 0 {
		return nil
	}
	for _, alt := range alternatives {
		if reflect.DeepEqual(value, alt) {
			return nil
		}
	}
	return NewValidationError("enum", "value_not_in_enum", "Value should match one of the values specified by the enum")
}
