// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/seaward/jot/internal/escape"
	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// An Encoder writes a stream of JSON values to an underlying writer. It is
// the inverse of a Parser: the caller issues Begin/End and Write calls, and
// the encoder supplies separators and (optionally) indentation. Structural
// misuse, such as a non-string in object key position, is reported as an
// error; once an error occurs all further calls report it.
//
// The caller must invoke Flush when the stream is complete to ensure all
// buffered output reaches the writer.
type Encoder struct {
	w      *bufio.Writer
	pretty bool
	frames []encFrame
	rooted bool // at least one root value was written
	err    error
}

// encFrame records the layout state of one open object or array.
type encFrame struct {
	object   bool // object, not array
	nonEmpty bool // at least one element or member written
	wantKey  bool // object only: the next string is a member key
}

// NewEncoder constructs an encoder that writes output to w.
func NewEncoder(w io.Writer) *Encoder {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Encoder{w: bw}
}

// Pretty configures the encoder to write multi-line indented output (true)
// or compact output with no interstitial whitespace (false, the default).
func (e *Encoder) Pretty(ok bool) { e.pretty = ok }

// Flush writes any buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// BeginObject opens an object. Until the matching EndObject, strings written
// to e alternate between member keys and member values.
func (e *Encoder) BeginObject() error { return e.begin(true) }

// BeginArray opens an array.
func (e *Encoder) BeginArray() error { return e.begin(false) }

// EndObject closes the innermost open object.
func (e *Encoder) EndObject() error { return e.end(true) }

// EndArray closes the innermost open array.
func (e *Encoder) EndArray() error { return e.end(false) }

// WriteNull writes the null constant.
func (e *Encoder) WriteNull() error { return e.writeRaw("null") }

// WriteBool writes a Boolean constant.
func (e *Encoder) WriteBool(b bool) error {
	if b {
		return e.writeRaw("true")
	}
	return e.writeRaw("false")
}

// WriteInt64 writes an integer value.
func (e *Encoder) WriteInt64(z int64) error {
	return e.writeRaw(strconv.FormatInt(z, 10))
}

// WriteFloat64 writes a floating-point value using the shortest
// representation that parses back to the same value. NaN and infinities have
// no JSON encoding and are reported as errors.
func (e *Encoder) WriteFloat64(f float64) error {
	if e.err != nil {
		return e.err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return e.fail(errors.New("value has no JSON encoding"))
	}
	return e.writeRaw(strconv.FormatFloat(f, 'g', -1, 64))
}

// WriteDecimal writes an arbitrary-precision decimal value.
func (e *Encoder) WriteDecimal(d decimal.Decimal) error {
	return e.writeRaw(d.String())
}

// WriteString writes a string. Inside an object, strings alternate between
// member keys and member values, starting with a key.
func (e *Encoder) WriteString(s string) error {
	if e.err != nil {
		return e.err
	}
	if f := e.top(); f != nil && f.object && f.wantKey {
		e.sep(f)
		e.writeQuoted(s)
		e.w.WriteByte(':')
		if e.pretty {
			e.w.WriteByte(' ')
		}
		f.wantKey = false
		return e.err
	}
	if err := e.beforeValue(); err != nil {
		return err
	}
	e.writeQuoted(s)
	e.afterValue()
	return e.err
}

// Emit translates a parser event into the corresponding encoder call, so a
// Parser can be piped directly into an Encoder to transcode or reformat a
// document.
func (e *Encoder) Emit(ev Event) error {
	switch ev.Kind() {
	case ObjectStart:
		return e.BeginObject()
	case ObjectEnd:
		return e.EndObject()
	case ArrayStart:
		return e.BeginArray()
	case ArrayEnd:
		return e.EndArray()
	case BoolValue:
		return e.WriteBool(ev.Bool())
	case Int64Value:
		return e.WriteInt64(ev.Int64())
	case DoubleValue:
		return e.WriteFloat64(ev.Float64())
	case StringValue:
		return e.WriteString(ev.Text())
	case NullValue:
		return e.WriteNull()
	}
	return e.fail(fmt.Errorf("cannot encode event %v", ev.Kind()))
}

func (e *Encoder) begin(object bool) error {
	if err := e.beforeValue(); err != nil {
		return err
	}
	if object {
		e.w.WriteByte('{')
	} else {
		e.w.WriteByte('[')
	}
	e.frames = append(e.frames, encFrame{object: object, wantKey: object})
	return e.err
}

func (e *Encoder) end(object bool) error {
	if e.err != nil {
		return e.err
	}
	f := e.top()
	if f == nil || f.object != object {
		return e.fail(errors.New("unbalanced close"))
	}
	if f.object && f.nonEmpty && !f.wantKey {
		return e.fail(errors.New("missing value for object member"))
	}
	nonEmpty := f.nonEmpty
	e.frames = e.frames[:len(e.frames)-1]
	if nonEmpty && e.pretty {
		e.w.WriteByte('\n')
		e.w.WriteString(e.indent(len(e.frames)))
	}
	if object {
		e.w.WriteByte('}')
	} else {
		e.w.WriteByte(']')
	}
	e.afterValue()
	return e.err
}

// beforeValue writes whatever separates the new value from the output so
// far, and validates that a value is permitted at this position.
func (e *Encoder) beforeValue() error {
	if e.err != nil {
		return e.err
	}
	f := e.top()
	if f == nil {
		if e.rooted {
			e.w.WriteByte('\n') // separate concatenated root values
		}
		return nil
	}
	if f.object {
		if f.wantKey {
			return e.fail(errors.New("expected object key, got value"))
		}
		return nil // the separator was written with the key
	}
	e.sep(f)
	return nil
}

func (e *Encoder) afterValue() {
	f := e.top()
	if f == nil {
		e.rooted = true
	} else if f.object {
		f.wantKey = true
	}
}

// sep writes the separator before a new element or key of frame f.
func (e *Encoder) sep(f *encFrame) {
	if f.nonEmpty {
		e.w.WriteByte(',')
	}
	f.nonEmpty = true
	if e.pretty {
		e.w.WriteByte('\n')
		e.w.WriteString(e.indent(len(e.frames)))
	}
}

func (e *Encoder) indent(depth int) string { return strings.Repeat("    ", depth) }

func (e *Encoder) top() *encFrame {
	if len(e.frames) == 0 {
		return nil
	}
	return &e.frames[len(e.frames)-1]
}

func (e *Encoder) writeRaw(text string) error {
	if err := e.beforeValue(); err != nil {
		return err
	}
	e.w.WriteString(text)
	e.afterValue()
	return e.err
}

func (e *Encoder) writeQuoted(s string) {
	e.w.WriteByte('"')
	e.w.Write(escape.Quote(mem.S(s)))
	e.w.WriteByte('"')
}

func (e *Encoder) fail(err error) error {
	e.err = err
	return err
}
