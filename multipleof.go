package mapper

import "math/big"

// evaluateMultipleOf implements the "multipleOf" keyword: value must
// divide evenly by the declared divisor. Division is performed on exact
// rationals (via Rat) rather than floating point so that decimal
// divisors (spec §4.8: "supports decimals via scaling") compare exactly.
func evaluateMultipleOf(desc *Descriptor, value any) *ValidationError {
	divisorRaw, ok := desc.field("multipleOf")
	if !ok {
		return nil
	}
	divisor := NewRat(divisorRaw)
	if divisor == nil || divisor.Sign() <= 0 {
		return nil
	}
	v := NewRat(value)
	if v == nil {
		return nil
	}
	quotient := new(big.Rat).Quo(v.Rat, divisor.Rat)
	if quotient.IsInt() {
		return nil
	}
	return NewValidationError("multipleOf", "not_multiple_of", "{value} should be a multiple of {multiple_of}", map[string]any{
		"value":       FormatRat(v),
		"multiple_of": FormatRat(divisor),
	})
}
