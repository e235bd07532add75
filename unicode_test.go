// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"unicode/utf16"

	"github.com/seaward/jot"
)

// utf16Bytes encodes s as UTF-16 in the given byte order, optionally with a
// byte-order mark.
func utf16Bytes(s string, order binary.ByteOrder, bom bool) []byte {
	var buf bytes.Buffer
	if bom {
		binary.Write(&buf, order, uint16(0xFEFF))
	}
	for _, u := range utf16.Encode([]rune(s)) {
		binary.Write(&buf, order, u)
	}
	return buf.Bytes()
}

// utf32Bytes encodes s as UTF-32 in the given byte order, optionally with a
// byte-order mark.
func utf32Bytes(s string, order binary.ByteOrder, bom bool) []byte {
	var buf bytes.Buffer
	if bom {
		binary.Write(&buf, order, uint32(0xFEFF))
	}
	for _, r := range s {
		binary.Write(&buf, order, uint32(r))
	}
	return buf.Bytes()
}

func TestDetectEncoding(t *testing.T) {
	const doc = `{"a": [1, true]}`
	tests := []struct {
		name    string
		input   []byte
		enc     jot.Encoding
		bomSize int
	}{
		{"UTF8", []byte(doc), jot.UTF8, 0},
		{"UTF8-BOM", append([]byte{0xEF, 0xBB, 0xBF}, doc...), jot.UTF8, 3},
		{"UTF16LE", utf16Bytes(doc, binary.LittleEndian, false), jot.UTF16LE, 0},
		{"UTF16LE-BOM", utf16Bytes(doc, binary.LittleEndian, true), jot.UTF16LE, 2},
		{"UTF16BE", utf16Bytes(doc, binary.BigEndian, false), jot.UTF16BE, 0},
		{"UTF16BE-BOM", utf16Bytes(doc, binary.BigEndian, true), jot.UTF16BE, 2},
		{"UTF32LE", utf32Bytes(doc, binary.LittleEndian, false), jot.UTF32LE, 0},
		{"UTF32LE-BOM", utf32Bytes(doc, binary.LittleEndian, true), jot.UTF32LE, 4},
		{"UTF32BE", utf32Bytes(doc, binary.BigEndian, false), jot.UTF32BE, 0},
		{"UTF32BE-BOM", utf32Bytes(doc, binary.BigEndian, true), jot.UTF32BE, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			enc, n := jot.DetectEncoding(test.input)
			if enc != test.enc || n != test.bomSize {
				t.Errorf("DetectEncoding: got %v, %d; want %v, %d", enc, n, test.enc, test.bomSize)
			}

			// The converted stream must scan as plain UTF-8.
			data, err := io.ReadAll(jot.NewUnicodeReader(bytes.NewReader(test.input)))
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if got := string(data); got != doc {
				t.Errorf("Converted text: got %#q, want %#q", got, doc)
			}
		})
	}
}

// Short inputs still detect, since a JSON document can be a bare scalar.
func TestDetectEncoding_short(t *testing.T) {
	tests := []struct {
		input []byte
		enc   jot.Encoding
	}{
		{[]byte(`1`), jot.UTF8},
		{[]byte{'1', 0}, jot.UTF16LE},
		{[]byte{0, '1'}, jot.UTF16BE},
		{[]byte{'1', 0, 0, 0}, jot.UTF32LE},
		{[]byte{0, 0, 0, '1'}, jot.UTF32BE},
		{[]byte{'1', 0, '2', 0}, jot.UTF16LE},
		{[]byte{0, '1', 0, '2'}, jot.UTF16BE},
		{nil, jot.UTF8},
	}
	for _, test := range tests {
		enc, _ := jot.DetectEncoding(test.input)
		if enc != test.enc {
			t.Errorf("DetectEncoding(%v): got %v, want %v", test.input, enc, test.enc)
		}
	}
}

func TestParser_encodings(t *testing.T) {
	const doc = `{"name": "pâté", "tags": [1, 2.5, null]}`
	want := []string{
		"objectStart",
		`stringValue("name")`, `stringValue("pâté")`,
		`stringValue("tags")`, "arrayStart",
		"int64Value(1)", "doubleValue(2.5)", "nullValue",
		"arrayEnd",
		"objectEnd",
	}
	inputs := map[string][]byte{
		"UTF8":        []byte(doc),
		"UTF16LE-BOM": utf16Bytes(doc, binary.LittleEndian, true),
		"UTF16BE":     utf16Bytes(doc, binary.BigEndian, false),
		"UTF32LE":     utf32Bytes(doc, binary.LittleEndian, false),
		"UTF32BE-BOM": utf32Bytes(doc, binary.BigEndian, true),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			p := jot.NewParser(bytes.NewReader(input))
			var got []string
			for p.Next() {
				got = append(got, p.Event().String())
			}
			if p.Err() != nil {
				t.Fatalf("Parse failed: %v", p.Err())
			}
			if len(got) != len(want) {
				t.Fatalf("Events: got %v, want %v", got, want)
			}
			for i, w := range want {
				if got[i] != w {
					t.Errorf("Event %d: got %s, want %s", i, got[i], w)
				}
			}
		})
	}
}

// Ill-formed input in the detected encoding decodes as replacement runes
// rather than failing the conversion.
func TestUnicodeReader_replacement(t *testing.T) {
	// A lone UTF-16LE surrogate code unit inside a string.
	input := utf16Bytes(`"a`, binary.LittleEndian, false)
	input = append(input, 0x3D, 0xD8) // unpaired lead surrogate
	input = append(input, utf16Bytes(`b"`, binary.LittleEndian, false)...)

	data, err := io.ReadAll(jot.NewUnicodeReader(bytes.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	const want = "\"a�b\""
	if got := string(data); got != want {
		t.Errorf("Converted text: got %#q, want %#q", got, want)
	}
}

func TestEncodingString(t *testing.T) {
	names := map[jot.Encoding]string{
		jot.UTF8:    "UTF-8",
		jot.UTF16LE: "UTF-16LE",
		jot.UTF16BE: "UTF-16BE",
		jot.UTF32LE: "UTF-32LE",
		jot.UTF32BE: "UTF-32BE",
	}
	for enc, want := range names {
		if got := enc.String(); got != want {
			t.Errorf("String(%d): got %q, want %q", enc, got, want)
		}
	}
	if got := jot.Encoding(100).String(); got != "unknown" {
		t.Errorf("String(100): got %q, want \"unknown\"", got)
	}
}
