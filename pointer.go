package mapper

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// undefinedType is the type of Undefined, a sentinel distinguishing "no
// value at this path" from a JSON null stored at that path.
type undefinedType struct{}

// Undefined is returned by Get when a pointer does not resolve to a value.
var Undefined = undefinedType{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

// IsDefined reports whether v is neither Undefined nor Go nil.
func IsDefined(v any) bool {
	return !IsUndefined(v) && v != nil
}

// Get reads the value at pointer inside root, per RFC 6901. It never
// panics: a pointer through a missing key, an out-of-range index, or a
// non-container value resolves to Undefined.
func Get(root any, pointer string) any {
	segments, ok := splitPointer(pointer)
	if !ok {
		return Undefined
	}
	cur := root
	for _, seg := range segments {
		switch c := cur.(type) {
		case map[string]any:
			v, found := c[seg]
			if !found {
				return Undefined
			}
			cur = v
		case *OrderedMap:
			v, found := c.Get(seg)
			if !found {
				return Undefined
			}
			cur = v
		case []any:
			idx, ok := arrayIndex(seg, len(c))
			if !ok {
				return Undefined
			}
			cur = c[idx]
		default:
			return Undefined
		}
	}
	return cur
}

// Set writes value at pointer inside root, creating intermediate
// containers on demand. The type of container created for a missing
// intermediate segment is decided by the *next* segment: numeric selects
// an array, anything else an object. Setting at "" or "/" replaces the
// root outright.
func Set(root any, pointer string, value any) (any, error) {
	segments, ok := splitPointer(pointer)
	if !ok {
		return nil, ErrInvalidPointer
	}
	if len(segments) == 0 {
		return value, nil
	}
	newRoot, err := setAt(root, segments, value)
	if err != nil {
		return nil, err
	}
	return newRoot, nil
}

func setAt(cur any, segments []string, value any) (any, error) {
	seg := segments[0]
	rest := segments[1:]

	if len(rest) == 0 {
		switch c := cur.(type) {
		case map[string]any:
			c[seg] = value
			return c, nil
		case []any:
			idx, ok := arrayIndex(seg, len(c))
			if ok {
				c[idx] = value
				return c, nil
			}
			if seg == "-" || idx == len(c) {
				return append(c, value), nil
			}
			return nil, ErrPointerThroughScalar
		case nil:
			return setAt(newContainerFor(seg, value), segments, value)
		default:
			return nil, ErrPointerThroughScalar
		}
	}

	switch c := cur.(type) {
	case map[string]any:
		child, err := setAt(c[seg], rest, value)
		if err != nil {
			return nil, err
		}
		c[seg] = child
		return c, nil
	case []any:
		idx, ok := arrayIndex(seg, len(c))
		if !ok {
			if seg == "-" || idx == len(c) {
				child, err := setAt(nil, rest, value)
				if err != nil {
					return nil, err
				}
				return append(c, child), nil
			}
			return nil, ErrPointerThroughScalar
		}
		child, err := setAt(c[idx], rest, value)
		if err != nil {
			return nil, err
		}
		c[idx] = child
		return c, nil
	case nil:
		child, err := setAt(nil, rest, value)
		if err != nil {
			return nil, err
		}
		container := newContainerFor(seg, nil)
		return setAt(container, []string{seg}, child)
	default:
		return nil, ErrPointerThroughScalar
	}
}

// newContainerFor returns the container type appropriate for holding seg
// as a key: an array when seg is a valid array index, else an object.
func newContainerFor(seg string, _ any) any {
	if jsonpointer.IsValidIndex(seg) || seg == "-" {
		return []any{}
	}
	return map[string]any{}
}

func arrayIndex(seg string, length int) (int, bool) {
	if seg == "-" {
		return length, false
	}
	if !jsonpointer.IsValidIndex(seg) {
		return 0, false
	}
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}

// splitPointer tokenizes a JSON Pointer into unescaped reference tokens.
// "" and "/" both denote the document root.
func splitPointer(pointer string) ([]string, bool) {
	if pointer == "" || pointer == "/" {
		return nil, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}
	raw := strings.Split(pointer[1:], "/")
	segments := make([]string, len(raw))
	for i, tok := range raw {
		segments[i] = jsonpointer.UnescapeComponent(tok)
	}
	return segments, true
}

// FormatPointer renders segments back into an escaped RFC 6901 pointer
// string, the inverse of splitPointer.
func FormatPointer(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(jsonpointer.EscapeComponent(seg))
	}
	return b.String()
}
