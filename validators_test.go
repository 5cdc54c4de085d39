package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func descFromJSON(t *testing.T, data string) *Descriptor {
	t.Helper()
	desc, err := ParseDescriptor([]byte(data))
	assert.NoError(t, err)
	return desc
}

func TestEvaluateTypeMismatch(t *testing.T) {
	desc := descFromJSON(t, `{"type": "string"}`)
	err := evaluateType(desc, 5.0)
	assert.NotNil(t, err)
	assert.Equal(t, "type_mismatch", err.Code)
}

func TestEvaluateTypeSkipsUndefined(t *testing.T) {
	desc := descFromJSON(t, `{"type": "string"}`)
	assert.Nil(t, evaluateType(desc, Undefined))
}

func TestEvaluateTypeNumberAcceptsInteger(t *testing.T) {
	desc := descFromJSON(t, `{"type": "number"}`)
	assert.Nil(t, evaluateType(desc, 3.0))
}

func TestEvaluateMinimumZeroIsEnforced(t *testing.T) {
	desc := descFromJSON(t, `{"minimum": 0}`)
	assert.NotNil(t, evaluateMinimum(desc, -1.0))
	assert.Nil(t, evaluateMinimum(desc, 0.0))
}

func TestEvaluateMaximumZeroIsEnforced(t *testing.T) {
	desc := descFromJSON(t, `{"maximum": 0}`)
	assert.NotNil(t, evaluateMaximum(desc, 1.0))
	assert.Nil(t, evaluateMaximum(desc, 0.0))
}

func TestEvaluateMultipleOfExactRational(t *testing.T) {
	desc := descFromJSON(t, `{"multipleOf": 0.1}`)
	assert.Nil(t, evaluateMultipleOf(desc, 0.3))
	assert.NotNil(t, evaluateMultipleOf(desc, 0.25))
}

func TestEvaluateMinLengthAndMaxLengthOnArrays(t *testing.T) {
	min := descFromJSON(t, `{"minLength": 2}`)
	max := descFromJSON(t, `{"maxLength": 2}`)
	short := []any{1.0}
	long := []any{1.0, 2.0, 3.0}

	assert.NotNil(t, evaluateMinLength(min, short))
	assert.NotNil(t, evaluateMaxLength(max, long))
	assert.Nil(t, evaluateMinLength(min, long))
}

func TestEvaluateEnum(t *testing.T) {
	desc := descFromJSON(t, `{"enum": ["a", "b"]}`)
	assert.Nil(t, evaluateEnum(desc, "a"))
	assert.NotNil(t, evaluateEnum(desc, "c"))
}

func TestEvaluatePatternInvalidRegex(t *testing.T) {
	desc := descFromJSON(t, `{"pattern": "("}`)
	err := evaluatePattern(desc, "x")
	assert.NotNil(t, err)
	assert.Equal(t, "invalid_pattern", err.Code)
}

func TestEvaluateRequiredFailsOnlyWhenTruthyAndUndefined(t *testing.T) {
	desc := descFromJSON(t, `{"required": true}`)
	assert.NotNil(t, evaluateRequired(desc, Undefined))
	assert.Nil(t, evaluateRequired(desc, "present"))

	notRequired := descFromJSON(t, `{"required": false}`)
	assert.Nil(t, evaluateRequired(notRequired, Undefined))
}

func TestRunValidatorsAppendsLocatedErrors(t *testing.T) {
	desc := descFromJSON(t, `{"minimum": 10}`)
	registry := NewRegistry()
	ctx := NewRootContext(map[string]any{}, map[string]any{}, registry)
	ctx.Paths.Source = "/amount"

	runValidators(ctx, desc, 5.0)

	errs := ctx.Errors.All()
	assert.Len(t, errs, 1)
	assert.Equal(t, "/amount", errs[0].Source)
	assert.Equal(t, 5.0, errs[0].Value)
}
