package interp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders m with its keys in insertion order, the same order
// Keys() reports them in, rather than encoding/json's usual alphabetical
// order for map[string]any.
func (m *Map) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		v, _ := m.Get(k)
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalJSON renders a TrustedHtml as the plain string it wraps: JSON has
// no notion of "raw" markup, so the trust wrapper only matters to the HTML
// serializer.
func (t TrustedHtml) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String)
}

// MarshalJSON renders Undefined as null: JSON has no undefined literal,
// and null is the closer of the two to "absent" when a value that
// contains an undefined gets printed.
func (Undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// FromJSON decodes data into a Value, turning JSON objects into *Map (with
// keys kept in the order they appeared in the document) and JSON arrays
// into []Value, the same shapes a dnjs object or array literal evaluates
// to. It's how the CLI turns a positional JSON argument file into a value
// a dnjs function can be called with.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected JSON object key, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			list := []Value{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// string, bool, or nil: all pass through as the Value shapes they
		// already are.
		return t, nil
	}
}
