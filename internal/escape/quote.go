// Copyright (C) 2024 The jot authors. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789ABCDEF")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// Control characters are escaped, quotation marks and backslashes are
// escaped, and all other characters pass through verbatim.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
		} else {
			var rbuf [6]byte
			nb := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:nb]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
