package mapper

import (
	"bytes"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-json"
)

// OrderedMap is a JSON object that remembers the order its keys were
// first seen in, the way encoding/json's map[string]any cannot. Plugin
// dispatch (spec §4.5 stage 3) and $extend's merged key order both
// depend on this.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty, ready-to-use OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set assigns value to key, appending key to the order if it is new.
func (m *OrderedMap) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored at key and whether it was present.
func (m *OrderedMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in first-appearance order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len reports how many keys are stored.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// MarshalJSON preserves key order when an OrderedMap ends up embedded in
// a value that goes through encoding/goccy's json.Marshal, e.g. a
// constant pulled straight from a descriptor body.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return nil, err
	}
	for _, k := range m.Keys() {
		if err := enc.WriteToken(jsontext.String(k)); err != nil {
			return nil, err
		}
		v, _ := m.Get(k)
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := enc.WriteValue(raw); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteToken(jsontext.ObjectEnd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a shallow copy with an independent key-order slice.
func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// DecodeOrderedJSON parses data as a JSON value, preserving object key
// order at every level via jsontext's token stream. Objects decode to
// *OrderedMap, arrays to []any, and scalars to their natural Go type
// (string, float64, bool, nil) — mirroring encoding/json's untyped
// decoding except for object order.
func DecodeOrderedJSON(data []byte) (any, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	v, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, ErrDescriptorDecode
	}
	return v, nil
}

func decodeOrderedValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case '{':
		obj := NewOrderedMap()
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(keyTok.String(), val)
		}
		if _, err := dec.ReadToken(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		var arr []any
		for dec.PeekKind() != ']' {
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.ReadToken(); err != nil { // consume ']'
			return nil, err
		}
		if arr == nil {
			arr = []any{}
		}
		return arr, nil
	case '"':
		return tok.String(), nil
	case '0':
		return tok.Float(), nil
	case 't', 'f':
		return tok.Bool(), nil
	case 'n':
		return nil, nil
	default:
		return nil, ErrDescriptorDecode
	}
}
