package mapper

// evaluateMinLength implements "minLength": value.length must be at
// least the bound. Unlike the teacher (strings only), spec §4.8 requires
// this to work on arrays too, comparing rune count for strings and
// element count for arrays.
func evaluateMinLength(desc *Descriptor, value any) *ValidationError {
	if !desc.Has("minLength") {
		return nil
	}
	bound, ok := asFloat(desc.Raw("minLength"))
	if !ok {
		return nil
	}
	length, ok := valueLength(value)
	if !ok {
		return nil
	}
	if length < int(bound) {
		return NewValidationError("minLength", "too_short", "Value should be at least {min_length} characters", map[string]any{
			"min_length": bound,
			"length":     length,
		})
	}
	return nil
}
