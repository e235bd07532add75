package jot

import "fmt"

// Kind is the type of an event reported by a Parser.
type Kind byte

// Constants defining the valid event kinds.
const (
	NoEvent     Kind = iota // zero value, no event
	ObjectStart             // begin an object: "{"
	ObjectEnd               // end the innermost object: "}"
	ArrayStart              // begin an array: "["
	ArrayEnd                // end the innermost array: "]"
	BoolValue               // a Boolean constant: true or false
	Int64Value              // a number representable as an int64
	DoubleValue             // a number representable as a float64
	StringValue             // a string value, or an object key
	NullValue               // the null constant
)

var kindStr = [...]string{
	NoEvent:     "noEvent",
	ObjectStart: "objectStart",
	ObjectEnd:   "objectEnd",
	ArrayStart:  "arrayStart",
	ArrayEnd:    "arrayEnd",
	BoolValue:   "booleanValue",
	Int64Value:  "int64Value",
	DoubleValue: "doubleValue",
	StringValue: "stringValue",
	NullValue:   "nullValue",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[NoEvent]
	}
	return kindStr[k]
}

// An Event is a single unit of parser output. Each event carries at most one
// payload, reported by the accessor matching its kind; the other accessors
// return zero values.
type Event struct {
	kind Kind
	b    bool
	n    int64
	f    float64
	s    string
	loc  Location
}

// Kind returns the kind of the event.
func (e Event) Kind() Kind { return e.kind }

// Bool returns the payload of a BoolValue event.
func (e Event) Bool() bool { return e.b }

// Int64 returns the payload of an Int64Value event.
func (e Event) Int64() int64 { return e.n }

// Float64 returns the payload of a DoubleValue event.
func (e Event) Float64() float64 { return e.f }

// Text returns the decoded text of a StringValue event. For number events it
// returns the raw literal text, permitting exact reparsing; for constants it
// returns their spelling in the input.
func (e Event) Text() string { return e.s }

// Location returns the location of the token that produced the event.
func (e Event) Location() Location { return e.loc }

func (e Event) String() string {
	switch e.kind {
	case BoolValue:
		return fmt.Sprintf("booleanValue(%v)", e.b)
	case Int64Value:
		return fmt.Sprintf("int64Value(%d)", e.n)
	case DoubleValue:
		return fmt.Sprintf("doubleValue(%v)", e.f)
	case StringValue:
		return fmt.Sprintf("stringValue(%q)", e.s)
	default:
		return e.kind.String()
	}
}
