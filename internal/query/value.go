// Package query exposes the graph to a presentation layer: field
// dispatch, null-safe comparators, vitality scores and filters.
package query

import (
	"strconv"
)

// Kind is the dynamic type of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindText
	KindNumber
)

// Value is a field value. The zero Value is undefined: the field does not
// apply to the object, which is different from 0 or "".
type Value struct {
	kind Kind
	text string
	num  float64
}

// Undefined returns the undefined value.
func Undefined() Value { return Value{} }

// Text returns a text value; the empty string is undefined.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value from an integer.
func Int(n int64) Value { return Number(float64(n)) }

// IntPtr returns an undefined value for nil.
func IntPtr(n *int64) Value {
	if n == nil {
		return Value{}
	}
	return Int(*n)
}

// FloatPtr returns an undefined value for nil.
func FloatPtr(f *float64) Value {
	if f == nil {
		return Value{}
	}
	return Number(*f)
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsDefined() bool   { return v.kind != KindUndefined }
func (v Value) AsText() string    { return v.text }
func (v Value) AsNumber() float64 { return v.num }

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return ""
}
