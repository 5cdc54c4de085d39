package mapper

// evaluateMinimum implements the "minimum" keyword: value must be
// greater than or equal to the declared bound. Only applied when value
// is a finite number (spec §4.8). Per §9 open question 1, this resolves
// the bound on "defined" (the key was present in the descriptor), not
// truthiness — a minimum: 0 constraint is enforced, unlike the source.
func evaluateMinimum(desc *Descriptor, value any) *ValidationError {
	if !desc.Has("minimum") {
		return nil
	}
	bound, ok := asFloat(desc.Raw("minimum"))
	if !ok {
		return nil
	}
	v, ok := asFloat(value)
	if !ok {
		return nil
	}
	if v < bound {
		return NewValidationError("minimum", "value_below_minimum", "{value} should be at least {minimum}", map[string]any{
			"value":   v,
			"minimum": bound,
		})
	}
	return nil
}
