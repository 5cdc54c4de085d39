package mapper

import "errors"

// === Structural errors ===
// Structural errors abort Mapper construction or evaluation outright; they
// indicate a malformed descriptor library rather than a failed validation.
var (
	// ErrUnknownExtendParent is returned when a mapping's $extend names a
	// mapping that is not registered.
	ErrUnknownExtendParent = errors.New("$extend: unknown parent mapping")

	// ErrExtendCycle is returned when a chain of $extend references loops
	// back on one of its own ancestors.
	ErrExtendCycle = errors.New("$extend: cycle detected")

	// ErrUnknownRootMapping is returned by NewMapper when an entry of a
	// "mappings" container carries no $id to register it under.
	ErrUnknownRootMapping = errors.New("no mapping registered for $id")

	// ErrDuplicateMappingID is returned when two mappings register the
	// same $id.
	ErrDuplicateMappingID = errors.New("duplicate mapping $id")

	// ErrInvalidInputShape names a top-level input that is neither an
	// object nor an array. Map does not check the input's shape and does
	// not return this error.
	ErrInvalidInputShape = errors.New("input must be a JSON object or array")

	// ErrNilDescriptor is returned when a nil descriptor is passed where a
	// mapping root is required.
	ErrNilDescriptor = errors.New("descriptor is nil")
)

// === Descriptor parsing errors ===
var (
	// ErrDescriptorDecode is returned when a raw JSON descriptor cannot be
	// tokenized into an ordered field list.
	ErrDescriptorDecode = errors.New("descriptor decode failed")

	// ErrInvalidSwitchDescriptor names a switch descriptor missing its
	// cases object. The switch stage does not return it: such a switch
	// evaluates to Undefined.
	ErrInvalidSwitchDescriptor = errors.New("switch descriptor missing cases")

	// ErrInvalidFindDescriptor names a find whose value is not an array.
	// The find stage does not return it: a non-array value is searched
	// as a one-element list.
	ErrInvalidFindDescriptor = errors.New("find descriptor requires an array source")

	// ErrInvalidConcatDescriptor names a concat whose value is not a list.
	// The concat stage does not return it: a non-array value passes
	// through unchanged.
	ErrInvalidConcatDescriptor = errors.New("concat descriptor requires a list of parts")
)

// === Pointer errors ===
var (
	// ErrInvalidPointer is returned when a string does not parse as a
	// JSON Pointer per RFC 6901.
	ErrInvalidPointer = errors.New("invalid json pointer")

	// ErrPointerThroughScalar is returned when a pointer tries to descend
	// into a value that is neither an object nor an array.
	ErrPointerThroughScalar = errors.New("json pointer traverses a scalar value")
)

// === Numeric conversion errors ===
var (
	// ErrUnsupportedRatType is returned when a value cannot be converted
	// to an exact rational for numeric comparison.
	ErrUnsupportedRatType = errors.New("unsupported type for numeric comparison")

	// ErrRatConversion is returned when a value looks numeric but cannot
	// be parsed as one.
	ErrRatConversion = errors.New("value is not a valid number")
)

// === Template and function-call errors ===
var (
	// ErrFunctionCallParsing names an init value whose call syntax, e.g.
	// "now(\"2006-01-02\")", cannot be parsed. parseFunctionCall does not
	// return it: a string that is not a call is used as a plain name.
	ErrFunctionCallParsing = errors.New("function call parsing failed")

	// ErrUnknownInitFunc names an init descriptor whose function is not
	// registered. The init stage does not return it: an unknown name
	// leaves the value unchanged.
	ErrUnknownInitFunc = errors.New("unknown init function")
)
