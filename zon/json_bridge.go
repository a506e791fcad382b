package zon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// JSON bridge. Structs map to objects, tuples to arrays, scalars map
// directly. Text emission is delegated to encoding/json; the custom
// marshaler only exists to keep struct fields in insertion order, which
// the stdlib map type would not.

// MarshalJSON implements json.Marshaler, preserving struct field order.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}

	switch v.kind {
	case KindBool:
		return json.Marshal(v.boolVal)

	case KindInt:
		return json.Marshal(v.intVal)

	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return nil, fmt.Errorf("zon: NaN/Infinity not representable in JSON")
		}
		return json.Marshal(v.floatVal)

	case KindString:
		return json.Marshal(v.strVal)

	case KindStruct:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil

	case KindTuple:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := json.Marshal(elem)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("zon: unsupported value kind: %s", v.kind)
	}
}

// ToJSON converts a Value to JSON text. indent <= 0 produces compact
// output; a positive indent pretty-prints with that many spaces per level.
func ToJSON(v *Value, indent int) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if indent <= 0 {
		return string(data), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", strings.Repeat(" ", indent)); err != nil {
		return "", err
	}
	return out.String(), nil
}

// FromJSON converts JSON text to a Value. Objects become structs with
// field order taken from the document, arrays become tuples.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := fromJSONToken(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the first value.
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("zon: trailing content after JSON value")
	}
	return v, nil
}

func fromJSONToken(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("zon: JSON parse error: %w", err)
	}
	return fromJSONValue(dec, tok)
}

func fromJSONValue(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("zon: invalid JSON number %q", t.String())
		}
		return Float(f), nil

	case json.Delim:
		switch t {
		case '{':
			result := StructOf()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("zon: JSON parse error: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("zon: expected JSON object key, got %v", keyTok)
				}
				val, err := fromJSONToken(dec)
				if err != nil {
					return nil, err
				}
				result.setField(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume }
				return nil, fmt.Errorf("zon: JSON parse error: %w", err)
			}
			return result, nil

		case '[':
			result := TupleOf()
			for dec.More() {
				elem, err := fromJSONToken(dec)
				if err != nil {
					return nil, err
				}
				result.appendElem(elem)
			}
			if _, err := dec.Token(); err != nil { // consume ]
				return nil, fmt.Errorf("zon: JSON parse error: %w", err)
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("zon: unsupported JSON token %v", tok)
}

// JSONEqual checks if two JSON byte slices represent equal values.
func JSONEqual(a, b []byte) (bool, error) {
	var va, vb interface{}
	if err := json.Unmarshal(a, &va); err != nil {
		return false, fmt.Errorf("parse a: %w", err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false, fmt.Errorf("parse b: %w", err)
	}
	return jsonValueEqual(va, vb), nil
}

func jsonValueEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch va := a.(type) {
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case float64:
		vb, ok := b.(float64)
		return ok && va == vb
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case []interface{}:
		vb, ok := b.([]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !jsonValueEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		vb, ok := b.(map[string]interface{})
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, valA := range va {
			valB, exists := vb[k]
			if !exists || !jsonValueEqual(valA, valB) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
