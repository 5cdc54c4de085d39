package mapper

// evaluateMaxLength implements "maxLength": value.length must be at
// most the bound. Works on both strings (rune count) and arrays
// (element count), per spec §4.8.
func evaluateMaxLength(desc *Descriptor, value any) *ValidationError {
	if !desc.Has("maxLength") {
		return nil
	}
	bound, ok := asFloat(desc.Raw("maxLength"))
	if !ok {
		return nil
	}
	length, ok := valueLength(value)
	if !ok {
		return nil
	}
	if length > int(bound) {
		return NewValidationError("maxLength", "too_long", "Value should be at most {max_length} characters", map[string]any{
			"max_length": bound,
			"length":     length,
		})
	}
	return nil
}

// valueLength returns the length of a string (rune count) or array
// (element count), and false for any other type.
func valueLength(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len([]rune(v)), true
	case []any:
		return len(v), true
	}
	return 0, false
}
