package mapper

// evaluateMaximum implements the "maximum" keyword: value must be less
// than or equal to the declared bound. Only applied when value is a
// finite number. Resolves §9 open question 1 the same way as minimum: a
// maximum: 0 constraint is enforced.
func evaluateMaximum(desc *Descriptor, value any) *ValidationError {
	if !desc.Has("maximum") {
		return nil
	}
	bound, ok := asFloat(desc.Raw("maximum"))
	if !ok {
		return nil
	}
	v, ok := asFloat(value)
	if !ok {
		return nil
	}
	if v > bound {
		return NewValidationError("maximum", "value_above_maximum", "{value} should be at most {maximum}", map[string]any{
			"value":   v,
			"maximum": bound,
		})
	}
	return nil
}
