// Copyright (C) 2024 The jot authors. All Rights Reserved.

// Package jval defines an in-memory representation of JSON values, a decoder
// that builds values from JSON source, and an encoder that serializes them.
package jval

import (
	"math"

	"github.com/shopspring/decimal"
)

// Value is the interface satisfied by all JSON values. The concrete types
// are Null, Bool, String, Int64, Double, Decimal, Object, and Array.
type Value interface {
	isValue()
}

// Null represents the JSON null constant.
type Null struct{}

// Bool represents a JSON Boolean constant.
type Bool bool

// String represents a JSON string value.
type String string

// Int64 represents a JSON number held as a 64-bit integer.
type Int64 int64

// Double represents a JSON number held as a 64-bit float.
type Double float64

// Decimal represents a JSON number held as an arbitrary-precision decimal.
type Decimal struct{ decimal.Decimal }

// Object represents a JSON object as a map of member names to values.
// Member order is not preserved.
type Object map[string]Value

// Array represents a JSON array of values.
type Array []Value

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (String) isValue()  {}
func (Int64) isValue()   {}
func (Double) isValue()  {}
func (Decimal) isValue() {}
func (Object) isValue()  {}
func (Array) isValue()   {}

// Dec constructs a Decimal from its text representation. It panics if text
// is not a valid decimal number; it is intended for use with constants.
func Dec(text string) Decimal {
	return Decimal{decimal.RequireFromString(text)}
}

// Find returns the value of the named member of o, or nil if no such member
// exists. Find on a nil Object reports nil.
func (o Object) Find(key string) Value {
	v, ok := o[key]
	if !ok {
		return nil
	}
	return v
}

// Equal reports whether a and b denote equal JSON values. Numbers compare by
// numeric value across representations, so Int64(2) equals Double(2.0);
// objects and arrays compare recursively.
func Equal(a, b Value) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		tb, ok := b.(Bool)
		return ok && ta == tb
	case String:
		tb, ok := b.(String)
		return ok && ta == tb
	case Int64, Double, Decimal:
		return numEqual(a, b)
	case Object:
		tb, ok := b.(Object)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for key, va := range ta {
			vb, ok := tb[key]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case Array:
		tb, ok := b.(Array)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i, va := range ta {
			if !Equal(va, tb[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// numEqual compares two numeric values, which may use different
// representations.
func numEqual(a, b Value) bool {
	da, ok := toDecimal(a)
	if !ok {
		return false
	}
	db, ok := toDecimal(b)
	if !ok {
		return false
	}
	return da.Cmp(db) == 0
}

// toDecimal converts a numeric value to an exact decimal. Non-numeric values
// and doubles with no decimal representation (NaN, infinities) report false.
func toDecimal(v Value) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case Int64:
		return decimal.NewFromInt(int64(t)), true
	case Double:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(f), true
	case Decimal:
		return t.Decimal, true
	}
	return decimal.Decimal{}, false
}
