// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jval

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TypeError is reported by the As* accessors when a value does not have the
// requested type.
type TypeError struct {
	Want string // the requested type
	Got  Value  // the value itself
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("value is %s, not %s", kindName(t.Got), t.Want)
}

func kindName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case Null:
		return "null"
	case Bool:
		return "a bool"
	case String:
		return "a string"
	case Int64, Double, Decimal:
		return "a number"
	case Object:
		return "an object"
	case Array:
		return "an array"
	}
	return fmt.Sprintf("%T", v)
}

// AsString returns the string denoted by v, or a *TypeError if v is not a
// string.
func AsString(v Value) (string, error) {
	if t, ok := v.(String); ok {
		return string(t), nil
	}
	return "", &TypeError{Want: "a string", Got: v}
}

// AsBool returns the Boolean denoted by v, or a *TypeError if v is not a
// Boolean.
func AsBool(v Value) (bool, error) {
	if t, ok := v.(Bool); ok {
		return bool(t), nil
	}
	return false, &TypeError{Want: "a bool", Got: v}
}

// AsInt64 returns the integer denoted by v. Doubles and decimals that denote
// an exact integer in range are accepted; anything else reports a
// *TypeError.
func AsInt64(v Value) (int64, error) {
	switch t := v.(type) {
	case Int64:
		return int64(t), nil
	case Double:
		f := float64(t)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), nil
		}
	case Decimal:
		if t.IsInteger() {
			if z := t.BigInt(); z.IsInt64() {
				return z.Int64(), nil
			}
		}
	}
	return 0, &TypeError{Want: "an integer", Got: v}
}

// AsFloat64 returns the floating-point value denoted by v. Integers and
// decimals are converted; anything else reports a *TypeError.
func AsFloat64(v Value) (float64, error) {
	switch t := v.(type) {
	case Int64:
		return float64(t), nil
	case Double:
		return float64(t), nil
	case Decimal:
		f, _ := t.Float64()
		return f, nil
	}
	return 0, &TypeError{Want: "a number", Got: v}
}

// AsObject returns the object denoted by v, or a *TypeError if v is not an
// object.
func AsObject(v Value) (Object, error) {
	if t, ok := v.(Object); ok {
		return t, nil
	}
	return nil, &TypeError{Want: "an object", Got: v}
}

// AsArray returns the array denoted by v, or a *TypeError if v is not an
// array.
func AsArray(v Value) (Array, error) {
	if t, ok := v.(Array); ok {
		return t, nil
	}
	return nil, &TypeError{Want: "an array", Got: v}
}

// FromGo converts a plain Go value into a Value. It supports nil, bool,
// string, the built-in integer and float types, decimal.Decimal,
// map[string]any, []any, and values already satisfying Value. FromGo panics
// if it is given any other type.
func FromGo(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int64(t)
	case int8:
		return Int64(t)
	case int16:
		return Int64(t)
	case int32:
		return Int64(t)
	case int64:
		return Int64(t)
	case uint8:
		return Int64(t)
	case uint16:
		return Int64(t)
	case uint32:
		return Int64(t)
	case uint:
		if uint64(t) > math.MaxInt64 {
			return Double(t)
		}
		return Int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return Double(t)
		}
		return Int64(t)
	case float32:
		return Double(t)
	case float64:
		return Double(t)
	case decimal.Decimal:
		return Decimal{t}
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = FromGo(elt)
		}
		return out
	case map[string]any:
		out := make(Object, len(t))
		for key, elt := range t {
			out[key] = FromGo(elt)
		}
		return out
	default:
		panic(fmt.Sprintf("cannot convert %T to a JSON value", v))
	}
}
