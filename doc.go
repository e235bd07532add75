// Copyright (C) 2024 The jot authors. All Rights Reserved.

// Package jot implements a streaming JSON scanner, parser, and encoder.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and reports whether one is available:
//
//	s := jot.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// When Next returns false, Err reports nil if the input ended cleanly, or an
// error of concrete type *jot.SyntaxError carrying the line and column of the
// failure.
//
// # Parsing
//
// The Parser type turns the token stream into a stream of events describing
// the structure of the input:
//
//	Event kind                | Description
//	------------------------- | ---------------------------------
//	ObjectStart, ObjectEnd    | { ... }
//	ArrayStart, ArrayEnd     | [ ... ]
//	StringValue               | a string value, or an object key
//	Int64Value, DoubleValue   | numbers
//	BoolValue, NullValue      | true, false, null
//
// Within an object, each member is reported as a StringValue event for its
// key followed by the events of its value. The parser verifies that brackets
// pair correctly; by default a single root value is required, and anything
// after it is an error. In streaming mode (the Streaming option) the input
// may be a concatenation of root values, pulled one at a time:
//
//	p := jot.NewParser(input)
//	for p.Next() {
//	   log.Printf("Event: %v", p.Event())
//	}
//	if p.Err() != nil {
//	   log.Fatalf("Parse failed: %v", p.Err())
//	}
//
// # Input encodings
//
// NewParser detects the encoding of its input among UTF-8, UTF-16, and
// UTF-32, in either byte order, with or without a byte-order mark, and
// converts it to UTF-8 before scanning. NewUnicodeReader exposes the same
// conversion for use with a standalone Scanner.
//
// # Encoding
//
// The Encoder type is the inverse of the Parser: the caller issues
// BeginObject, WriteString, and similar calls, and the encoder renders a
// syntactically valid document, either compact or indented. An Encoder's
// Emit method accepts parser events directly, so documents can be
// transcoded or reformatted without building a tree.
//
// To work with complete values in memory, see the jval subpackage.
package jot
