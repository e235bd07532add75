// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding denotes a Unicode encoding scheme for JSON input.
type Encoding byte

// Constants defining the supported encodings.
const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var encodingStr = [...]string{
	UTF8:    "UTF-8",
	UTF16LE: "UTF-16LE",
	UTF16BE: "UTF-16BE",
	UTF32LE: "UTF-32LE",
	UTF32BE: "UTF-32BE",
}

func (e Encoding) String() string {
	if int(e) >= len(encodingStr) {
		return "unknown"
	}
	return encodingStr[e]
}

// DetectEncoding reports the encoding of a JSON document beginning with the
// given prefix, along with the length in bytes of a leading byte-order mark
// (0 if none is present). Detection first checks for a BOM; absent one, it
// applies the RFC 4627 layout rule that the first two scalars of a JSON text
// are ASCII, so the pattern of zero bytes identifies the encoding. A prefix
// matching no pattern is taken to be UTF-8.
func DetectEncoding(prefix []byte) (Encoding, int) {
	// BOM checks. UTF-32LE must precede UTF-16LE, whose BOM it extends.
	switch {
	case len(prefix) >= 4 && prefix[0] == 0x00 && prefix[1] == 0x00 && prefix[2] == 0xFE && prefix[3] == 0xFF:
		return UTF32BE, 4
	case len(prefix) >= 4 && prefix[0] == 0xFF && prefix[1] == 0xFE && prefix[2] == 0x00 && prefix[3] == 0x00:
		return UTF32LE, 4
	case len(prefix) >= 3 && prefix[0] == 0xEF && prefix[1] == 0xBB && prefix[2] == 0xBF:
		return UTF8, 3
	case len(prefix) >= 2 && prefix[0] == 0xFE && prefix[1] == 0xFF:
		return UTF16BE, 2
	case len(prefix) >= 2 && prefix[0] == 0xFF && prefix[1] == 0xFE:
		return UTF16LE, 2
	}

	// No BOM: infer the encoding from the zero-byte pattern.
	switch {
	case len(prefix) >= 4 && prefix[0] == 0 && prefix[1] == 0 && prefix[2] == 0 && prefix[3] != 0:
		return UTF32BE, 0
	case len(prefix) >= 4 && prefix[0] != 0 && prefix[1] == 0 && prefix[2] == 0 && prefix[3] == 0:
		return UTF32LE, 0
	case len(prefix) >= 2 && prefix[0] == 0 && prefix[1] != 0:
		return UTF16BE, 0
	case len(prefix) >= 2 && prefix[0] != 0 && prefix[1] == 0:
		return UTF16LE, 0
	}
	return UTF8, 0
}

// NewUnicodeReader returns a reader that converts JSON input from r into
// UTF-8. The encoding of r is detected from its first bytes, and a leading
// byte-order mark is removed. Byte sequences that are not valid in the
// detected encoding are replaced by U+FFFD; conversion itself never fails.
func NewUnicodeReader(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	prefix, _ := br.Peek(4) // short reads are fine, Peek returns what it has
	enc, bom := DetectEncoding(prefix)
	br.Discard(bom)

	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Reader(br)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Reader(br)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder().Reader(br)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder().Reader(br)
	}
	return br
}
