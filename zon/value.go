package zon

import "fmt"

// Kind represents ZON value types.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindStruct
	KindTuple
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindStruct:
		return "struct"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value represents a ZON value.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string

	// Container values
	fields []Field  // struct: insertion-ordered key/value pairs
	elems  []*Value // tuple: elements in source order
}

// Field represents a key-value pair in a struct.
type Field struct {
	Key   string
	Value *Value
}

// Position represents a source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// StructOf creates a struct value from fields, preserving order.
func StructOf(fields ...Field) *Value {
	return &Value{kind: KindStruct, fields: fields}
}

// TupleOf creates a tuple value.
func TupleOf(elems ...*Value) *Value {
	return &Value{kind: KindTuple, elems: elems}
}

// FieldOf creates a Field for use in StructOf.
func FieldOf(key string, value *Value) Field {
	return Field{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("zon: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("zon: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("zon: nil value")
	}
	if v.kind != KindInt {
		return 0, fmt.Errorf("zon: expected int, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("zon: nil value")
	}
	if v.kind != KindFloat {
		return 0, fmt.Errorf("zon: expected float, got %s", v.kind)
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil {
		return "", fmt.Errorf("zon: nil value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("zon: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// Fields returns the struct fields in insertion order.
func (v *Value) Fields() ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("zon: nil value")
	}
	if v.kind != KindStruct {
		return nil, fmt.Errorf("zon: expected struct, got %s", v.kind)
	}
	return v.fields, nil
}

// Elems returns the tuple elements in source order.
func (v *Value) Elems() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("zon: nil value")
	}
	if v.kind != KindTuple {
		return nil, fmt.Errorf("zon: expected tuple, got %s", v.kind)
	}
	return v.elems, nil
}

// Len returns the length of a struct or tuple.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindStruct:
		return len(v.fields)
	case KindTuple:
		return len(v.elems)
	default:
		return 0
	}
}

// Get returns a field value by key from a struct, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindStruct {
		return nil
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Index returns the i-th element of a tuple.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindTuple {
		return nil, fmt.Errorf("zon: not a tuple")
	}
	if i < 0 || i >= len(v.elems) {
		return nil, fmt.Errorf("zon: index %d out of bounds (len=%d)", i, len(v.elems))
	}
	return v.elems[i], nil
}

// setField sets a struct field, overwriting an existing key in place.
func (v *Value) setField(key string, val *Value) {
	for i := range v.fields {
		if v.fields[i].Key == key {
			v.fields[i].Value = val
			return
		}
	}
	v.fields = append(v.fields, Field{Key: key, Value: val})
}

// appendElem adds an element to a tuple.
func (v *Value) appendElem(val *Value) {
	v.elems = append(v.elems, val)
}

// Equal reports whether two value trees are structurally equal.
// Struct field order is significant, matching the serialized form.
func (v *Value) Equal(o *Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == o.boolVal
	case KindInt:
		return v.intVal == o.intVal
	case KindFloat:
		return v.floatVal == o.floatVal
	case KindString:
		return v.strVal == o.strVal
	case KindStruct:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key {
				return false
			}
			if !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	case KindTuple:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
