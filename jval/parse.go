// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jval

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/seaward/jot"
	"github.com/shopspring/decimal"
)

// Options control the behavior of Parse and Stream. A nil *Options is ready
// for use and provides default values as described.
type Options struct {
	// Reject trailing commas before "]" and "}". Default: accept them.
	Strict bool

	// If positive, the maximum permitted nesting depth of objects and
	// arrays. Input nested more deeply fails with a *DepthError.
	// Default: no limit.
	DepthLimit int

	// Permit and ignore comments in the input. Default: reject them.
	AllowComments bool

	// Represent all numbers as Decimal values, parsed exactly from their
	// literal text. Default: numbers become Int64 when they fit, and
	// Double otherwise.
	UseDecimal bool
}

func (o *Options) strict() bool        { return o != nil && o.Strict }
func (o *Options) allowComments() bool { return o != nil && o.AllowComments }
func (o *Options) useDecimal() bool    { return o != nil && o.UseDecimal }

func (o *Options) depthLimit() int {
	if o == nil {
		return 0
	}
	return o.DepthLimit
}

// DepthError is reported when the input exceeds the configured depth limit.
type DepthError struct {
	Limit    int
	Location jot.LineCol
}

// Error satisfies the error interface.
func (d *DepthError) Error() string {
	return fmt.Sprintf("at %s: exceeded depth limit (%d)", d.Location, d.Limit)
}

// Parse parses a single JSON value from r. If the input contains anything
// after the value, or no value at all, Parse reports an error of concrete
// type *jot.SyntaxError. If an object contains duplicate member names, the
// last occurrence wins.
func Parse(r io.Reader, opts *Options) (Value, error) {
	p := newParser(r, opts, false)
	b := builder{opts: opts}
	v, ok, err := b.next(p)
	if err != nil {
		return nil, err
	} else if !ok {
		// The non-streaming parser reports unexpected EOF itself, so err is
		// set whenever no value was produced; this is unreachable.
		return nil, io.ErrUnexpectedEOF
	}
	// Drain to surface trailing garbage after the root value.
	if p.Next() {
		return nil, fmt.Errorf("unexpected event %v", p.Event())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseBytes parses a single JSON value from data.
func ParseBytes(data []byte, opts *Options) (Value, error) {
	return Parse(bytes.NewReader(data), opts)
}

// ParseString parses a single JSON value from s.
func ParseString(s string, opts *Options) (Value, error) {
	return Parse(strings.NewReader(s), opts)
}

// Stream returns an iterator over the concatenated JSON values in r. Values
// are parsed lazily as the iterator is advanced. If parsing a value fails,
// the iterator yields a nil value with the error and then stops.
func Stream(r io.Reader, opts *Options) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		p := newParser(r, opts, true)
		b := builder{opts: opts}
		for {
			v, ok, err := b.next(p)
			if err != nil {
				yield(nil, err)
				return
			} else if !ok {
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func newParser(r io.Reader, opts *Options, streaming bool) *jot.Parser {
	p := jot.NewParser(r)
	p.Strict(opts.strict())
	p.AllowComments(opts.allowComments())
	p.Streaming(streaming)
	return p
}

// A builder assembles parser events into a Value using an explicit stack of
// partial containers.
type builder struct {
	opts *Options
	stk  []bframe
}

// bframe is a partially-built object or array.
type bframe struct {
	object bool
	obj    Object
	arr    Array
	key    string
	hasKey bool
}

// next consumes events from p until one complete value is assembled. It
// reports false with a nil error at a clean end of input.
func (b *builder) next(p *jot.Parser) (Value, bool, error) {
	b.stk = b.stk[:0]
	for p.Next() {
		ev := p.Event()
		var v Value
		switch ev.Kind() {
		case jot.ObjectStart, jot.ArrayStart:
			if limit := b.opts.depthLimit(); limit > 0 && len(b.stk) >= limit {
				return nil, false, &DepthError{Limit: limit, Location: ev.Location().First}
			}
			if ev.Kind() == jot.ObjectStart {
				b.stk = append(b.stk, bframe{object: true, obj: make(Object)})
			} else {
				b.stk = append(b.stk, bframe{})
			}
			continue

		case jot.ObjectEnd:
			v = b.stk[len(b.stk)-1].obj
			b.stk = b.stk[:len(b.stk)-1]

		case jot.ArrayEnd:
			v = b.stk[len(b.stk)-1].arr
			b.stk = b.stk[:len(b.stk)-1]

		case jot.StringValue:
			if top := b.top(); top != nil && top.object && !top.hasKey {
				top.key, top.hasKey = ev.Text(), true
				continue
			}
			v = String(ev.Text())

		case jot.Int64Value, jot.DoubleValue:
			num, err := b.number(ev)
			if err != nil {
				return nil, false, err
			}
			v = num

		case jot.BoolValue:
			v = Bool(ev.Bool())

		case jot.NullValue:
			v = Null{}

		default:
			return nil, false, fmt.Errorf("unexpected event %v", ev.Kind())
		}

		if top := b.top(); top == nil {
			return v, true, nil
		} else if top.object {
			top.obj[top.key] = v // duplicate keys: last write wins
			top.hasKey = false
		} else {
			top.arr = append(top.arr, v)
		}
	}
	if err := p.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

func (b *builder) top() *bframe {
	if len(b.stk) == 0 {
		return nil
	}
	return &b.stk[len(b.stk)-1]
}

// number converts a numeric event into a value. In decimal mode the value is
// reparsed exactly from the literal text of the input.
func (b *builder) number(ev jot.Event) (Value, error) {
	if b.opts.useDecimal() {
		d, err := decimal.NewFromString(ev.Text())
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", ev.Location().First, err)
		}
		return Decimal{d}, nil
	}
	if ev.Kind() == jot.Int64Value {
		return Int64(ev.Int64()), nil
	}
	return Double(ev.Float64()), nil
}
