package mapper

import "regexp"

// evaluatePattern implements "pattern": value must match the declared
// regular expression. Only applied when value is a string.
func evaluatePattern(desc *Descriptor, value any) *ValidationError {
	pattern, ok := desc.StringField("pattern")
	if !ok {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return NewValidationError("pattern", "invalid_pattern", "Invalid regular expression pattern {pattern}", map[string]any{
			"pattern": pattern,
		})
	}
	if !re.MatchString(str) {
		return NewValidationError("pattern", "pattern_mismatch", "Value does not match the required pattern {pattern}", map[string]any{
			"pattern": pattern,
			"value":   str,
		})
	}
	return nil
}
