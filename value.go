// File: lixenwraith/conftree/value.go
package conftree

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies which member of the value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTuple
)

// String returns the lowercase name of the kind.
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
	case KindTuple:
		return "tuple"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a closed union over the types a configuration leaf can hold:
// null, bool, int, float, string, or a homogeneous tuple of scalars.
// The zero Value is null. Values are immutable.
//
// Null is a valid standalone value, used as an untyped placeholder whose
// type is inferred from the first assignment.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	elems []Value
}

// NullValue returns the null placeholder value.
func NullValue() Value { return Value{} }

// BoolValue returns a bool value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// IntValue returns an int value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue returns a float value.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue returns a string value.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// TupleValue builds a tuple from the given elements. A tuple is never empty
// and is homogeneous: every element must have the same scalar kind as the
// first. Null and nested tuples are not permitted as elements.
func TupleValue(elems ...Value) (Value, error) {
	if len(elems) == 0 {
		return Value{}, fmt.Errorf("%w: empty lists are disallowed because their element type is unclear", ErrInvalidValue)
	}
	first := elems[0].kind
	switch first {
	case KindBool, KindInt, KindFloat, KindString:
	default:
		return Value{}, fmt.Errorf("%w: lists can only contain strings, floats, ints, and bools, not %s", ErrInvalidValue, first)
	}
	for _, e := range elems[1:] {
		if e.kind != first {
			return Value{}, fmt.Errorf("%w: elements of a list must all be of the same type, got %s and %s", ErrInvalidValue, first, e.kind)
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindTuple, elems: cp}, nil
}

// Kind reports which member of the union the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null placeholder.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the bool payload; ok is false if the value is not a bool.
func (v Value) Bool() (val bool, ok bool) { return v.b, v.kind == KindBool }

// Int returns the int payload; ok is false if the value is not an int.
func (v Value) Int() (val int64, ok bool) { return v.i, v.kind == KindInt }

// Float returns the float payload; ok is false if the value is not a float.
func (v Value) Float() (val float64, ok bool) { return v.f, v.kind == KindFloat }

// Str returns the string payload; ok is false if the value is not a string.
func (v Value) Str() (val string, ok bool) { return v.s, v.kind == KindString }

// Elems returns a copy of the tuple elements, or nil for non-tuples.
func (v Value) Elems() []Value {
	if v.kind != KindTuple {
		return nil
	}
	cp := make([]Value, len(v.elems))
	copy(cp, v.elems)
	return cp
}

// ElemKind returns the scalar kind of the tuple elements, or KindNull for
// non-tuples.
func (v Value) ElemKind() Kind {
	if v.kind != KindTuple {
		return KindNull
	}
	return v.elems[0].kind
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
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
	}
	return false
}

// String formats the value for display. Bools render as "True"/"False" to
// match the literal forms the flag resolver accepts, tuples render as
// "[a, b, c]".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindTuple:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// TypeName returns the display name of the value's type. Tuples report the
// pluralized element type, e.g. "ints".
func (v Value) TypeName() string {
	if v.kind == KindTuple {
		return v.elems[0].kind.String() + "s"
	}
	return v.kind.String()
}

// native converts the value back to a plain Go representation suitable for
// serialization: nil, bool, int64, float64, string, or []any.
func (v Value) native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTuple:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.native()
		}
		return out
	}
	return nil
}

// valueFromAny normalizes an arbitrary raw value into a Value. The mapping
// is JSON-canonical: integer types become ints, floating types become
// floats, slices and arrays become tuples (validated for homogeneity and
// non-emptiness). Anything else fails with ErrInvalidValue.
func valueFromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case bool:
		return BoolValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case float64:
		return FloatValue(v), nil
	case string:
		return StringValue(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return IntValue(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: unparsable number %q", ErrInvalidValue, v.String())
		}
		return FloatValue(f), nil
	case []any:
		return tupleFromSlice(len(v), func(i int) any { return v[i] })
	}

	// Fall back to reflection for named types (time.Duration and friends)
	// and concretely typed slices ([]int, []string, ...).
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Bool:
		return BoolValue(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: unsigned integer %d overflows int", ErrInvalidValue, u)
		}
		return IntValue(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float()), nil
	case reflect.String:
		return StringValue(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return tupleFromSlice(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidValue, raw)
}

func tupleFromSlice(n int, at func(int) any) (Value, error) {
	elems := make([]Value, n)
	for i := 0; i < n; i++ {
		e, err := valueFromAny(at(i))
		if err != nil {
			return Value{}, err
		}
		elems[i] = e
	}
	return TupleValue(elems...)
}

// coerceValue converts incoming to the kind of current, the type-preserving
// merge rule used by Config.Update. A null current value adopts the incoming
// value as-is; its type is inferred from the first assignment.
func coerceValue(current, incoming Value) (Value, error) {
	switch current.kind {
	case KindNull:
		return incoming, nil

	case KindBool:
		switch incoming.kind {
		case KindBool:
			return incoming, nil
		case KindInt:
			return BoolValue(incoming.i != 0), nil
		case KindFloat:
			return BoolValue(incoming.f != 0), nil
		case KindString:
			switch incoming.s {
			case "True":
				return BoolValue(true), nil
			case "False":
				return BoolValue(false), nil
			}
		}

	case KindInt:
		switch incoming.kind {
		case KindInt:
			return incoming, nil
		case KindBool:
			if incoming.b {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		case KindFloat:
			if incoming.f != math.Trunc(incoming.f) {
				return Value{}, fmt.Errorf("%w: cannot convert fractional float %v to int", ErrInvalidValue, incoming.f)
			}
			return IntValue(int64(incoming.f)), nil
		case KindString:
			if i, err := strconv.ParseInt(incoming.s, 10, 64); err == nil {
				return IntValue(i), nil
			}
		}

	case KindFloat:
		switch incoming.kind {
		case KindFloat:
			return incoming, nil
		case KindInt:
			return FloatValue(float64(incoming.i)), nil
		case KindBool:
			if incoming.b {
				return FloatValue(1), nil
			}
			return FloatValue(0), nil
		case KindString:
			if f, err := strconv.ParseFloat(incoming.s, 64); err == nil {
				return FloatValue(f), nil
			}
		}

	case KindString:
		switch incoming.kind {
		case KindString:
			return incoming, nil
		case KindBool, KindInt, KindFloat:
			return StringValue(incoming.String()), nil
		}

	case KindTuple:
		if incoming.kind == KindTuple {
			template := current.elems[0]
			out := make([]Value, len(incoming.elems))
			for i, e := range incoming.elems {
				c, err := coerceValue(template, e)
				if err != nil {
					return Value{}, err
				}
				out[i] = c
			}
			return TupleValue(out...)
		}
	}

	return Value{}, fmt.Errorf("%w: cannot convert '%s' to type '%s'", ErrTypeMismatch, incoming, current.TypeName())
}
