// Package value provides a tagged JSON value model: a closed set of variants
// (null, bool, int, double, string, array, object) with typed accessors and
// no cross-variant coercion. It is the representation used for request bodies
// and decoded responses throughout the restful client.
//
// Objects preserve key insertion order for serialization; equality is
// order-insensitive.
package value

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind, for logs and errors.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	s    string
	a    []Value
	o    *Object
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integral number value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double returns a floating-point number value.
func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value holding the given items in order.
func Array(items ...Value) Value { return Value{kind: KindArray, a: items} }

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the payload when v is a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the payload when v is an integral number. A double never
// satisfies AsInt, even when its value is integral.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsDouble returns the payload when v is a floating-point number.
func (v Value) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.d, true
}

// AsString returns the payload when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns the payload when v is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.a, true
}

// AsObject returns the payload when v is an object.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.o, true
}

// Equal reports structural equality. Variants never compare equal across
// kinds (Int(1) is not equal to Double(1)); object key order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindDouble:
		return v.d == other.d
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.o.Equal(other.o)
	default:
		return false
	}
}

// Object is an ordered JSON object: keys are unique and serialization
// preserves insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Set stores v under key. Setting an existing key replaces its value but
// keeps its original position. Returns the object for chaining.
func (o *Object) Set(key string, v Value) *Object {
	if _, exists := o.fields[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not mutate it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Value wraps o as an object Value.
func (o *Object) Value() Value { return Value{kind: KindObject, o: o} }

// Equal reports whether both objects hold the same key set with equal
// values, regardless of insertion order.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o.Len() == 0 && other.Len() == 0
	}
	if len(o.fields) != len(other.fields) {
		return false
	}
	for k, v := range o.fields {
		ov, ok := other.fields[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
