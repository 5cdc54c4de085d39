package mapper

// runValidators implements pipeline stage 11 (spec §4.8): it never
// changes value, only appends structured errors to ctx.Errors for each
// constraint the descriptor declares and the value fails.
func runValidators(ctx *Context, desc *Descriptor, value any) {
	if desc == nil || desc.Kind != KindObject {
		return
	}
	checks := []func(*Descriptor, any) *ValidationError{
		evaluateType,
		evaluateMinimum,
		evaluateMaximum,
		evaluateMultipleOf,
		evaluateMinLength,
		evaluateMaxLength,
		evaluateEnum,
		evaluatePattern,
		evaluateRequired,
	}
	for _, check := range checks {
		if err := check(desc, value); err != nil {
			ctx.Errors.Append(err.withLocation(ctx, value))
		}
	}
}

// asFloat reports whether v is a JSON number and returns it as float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
