// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jval

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/seaward/jot"
)

// Encode writes the compact JSON encoding of v to w.
func Encode(w io.Writer, v Value) error { return encode(w, v, false) }

// EncodePretty writes an indented multi-line JSON encoding of v to w.
func EncodePretty(w io.Writer, v Value) error { return encode(w, v, true) }

// EncodeString returns the JSON encoding of v as a string.
func EncodeString(v Value, pretty bool) (string, error) {
	data, err := EncodeBytes(v, pretty)
	return string(data), err
}

// EncodeBytes returns the JSON encoding of v as a byte slice.
func EncodeBytes(v Value, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, pretty); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(w io.Writer, v Value, pretty bool) error {
	e := jot.NewEncoder(w)
	e.Pretty(pretty)
	if err := encodeValue(e, v); err != nil {
		return err
	}
	return e.Flush()
}

// encodeValue walks v and issues the corresponding encoder calls. Object
// members are written in sorted order of their names, so that the encoding
// of a value is deterministic.
func encodeValue(e *jot.Encoder, v Value) error {
	switch t := v.(type) {
	case Null:
		return e.WriteNull()
	case Bool:
		return e.WriteBool(bool(t))
	case String:
		return e.WriteString(string(t))
	case Int64:
		return e.WriteInt64(int64(t))
	case Double:
		return e.WriteFloat64(float64(t))
	case Decimal:
		return e.WriteDecimal(t.Decimal)
	case Array:
		if err := e.BeginArray(); err != nil {
			return err
		}
		for _, elt := range t {
			if err := encodeValue(e, elt); err != nil {
				return err
			}
		}
		return e.EndArray()
	case Object:
		if err := e.BeginObject(); err != nil {
			return err
		}
		for _, key := range slices.Sorted(maps.Keys(t)) {
			if err := e.WriteString(key); err != nil {
				return err
			}
			if err := encodeValue(e, t[key]); err != nil {
				return err
			}
		}
		return e.EndObject()
	}
	return fmt.Errorf("cannot encode %T", v)
}
