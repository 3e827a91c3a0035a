// Package tree implements the generic document tree that cluster specifications
// and schema documents are parsed into.
//
// # Variants
//
// A Value is exactly one of:
//
//	Null      - YAML/JSON null
//	Boolean   - true / false
//	Number    - numeric literal, kept as text
//	String    - string scalar
//	*Array    - ordered sequence of values
//	*Object   - ordered mapping from string keys to values
//
// The set is closed: Value carries an unexported method, so callers can switch
// exhaustively over the concrete types. Arrays and objects are reference types
// and may be mutated in place (the defaults engine relies on this).
//
// # Paths
//
// Path is an absolute sequence of object keys and array indices from the root to a
// node. Its String form is the dotted/bracketed notation used in user-facing errors:
//
//	machines[0].hcloud.serverType
package tree

import "strconv"

// Kind names the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
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

// Value is a node of the document tree.
type Value interface {
	Kind() Kind
	value()
}

// Null is the null scalar.
type Null struct{}

// Boolean is a boolean scalar.
type Boolean bool

// Number is a numeric scalar holding its canonical decimal text.
type Number string

// String is a string scalar.
type String string

// Array is an ordered sequence of values.
type Array struct {
	Items []Value
}

// Object is a mapping with string keys that remembers insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

func (Null) Kind() Kind    { return KindNull }
func (Boolean) Kind() Kind { return KindBoolean }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (*Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (Null) value()    {}
func (Boolean) value() {}
func (Number) value()  {}
func (String) value()  {}
func (*Array) value()  {}
func (*Object) value() {}

// Float64 returns the numeric value of n.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// NewArray returns an array holding items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Items)
}

// At returns the element at index i, or false when i is out of range.
func (a *Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.Items) {
		return nil, false
	}
	return a.Items[i], true
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the field named key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether the field named key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Set stores v under key. New keys are appended to the key order; existing keys keep
// their position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = make(map[string]Value)
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// GetString returns the string field named key, or "" when absent or not a string.
func (o *Object) GetString(key string) string {
	if s, ok := o.fields[key].(String); ok {
		return string(s)
	}
	return ""
}

// GetBool returns the boolean field named key, or false when absent or not a boolean.
func (o *Object) GetBool(key string) bool {
	if b, ok := o.fields[key].(Boolean); ok {
		return bool(b)
	}
	return false
}

// Clone returns a deep copy of v. Scalars are returned as is.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		out := NewObject()
		for _, k := range t.keys {
			out.Set(k, Clone(t.fields[k]))
		}
		return out
	case *Array:
		items := make([]Value, len(t.Items))
		for i, item := range t.Items {
			items[i] = Clone(item)
		}
		return &Array{Items: items}
	default:
		return v
	}
}

// Equal reports whether a and b are structurally equal. Numbers compare by value.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		fx, errx := x.Float64()
		fy, erry := y.Float64()
		return errx == nil && erry == nil && fx == fy
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.fields[k]
			if !ok || !Equal(x.fields[k], yv) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
