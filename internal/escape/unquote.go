// Copyright (C) 2024 The jot authors. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and paired
// surrogate escapes are combined into the scalar they encode. Invalid escapes
// and unpaired surrogates are replaced by the Unicode replacement rune.
// Unquote reports an error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		dec = mem.Append(dec, src)
		return dec, nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute. There should not be errors here, but if there are, insert
		// replacement runes (utf8.RuneError == '�').
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			putByte(byte(r))
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				putRune(utf8.RuneError)
				break
			}
			r := rune(v)
			if !utf16.IsSurrogate(r) {
				putRune(r)
				break
			}
			// A leading surrogate must combine with a trailing escape that
			// immediately follows it; anything else is replaced.
			if r2, rest, ok := trailingEscape(src); ok {
				if c := utf16.DecodeRune(r, r2); c != utf8.RuneError {
					putRune(c)
					src = rest
					break
				}
			}
			putRune(utf8.RuneError)
		default:
			putRune(utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// trailingEscape decodes a "\uXXXX" escape at the head of src, reporting its
// value and the remainder of src after it.
func trailingEscape(src mem.RO) (rune, mem.RO, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, false
	}
	v, err := parseHex(src.SliceFrom(2).SliceTo(4))
	if err != nil {
		return 0, src, false
	}
	return rune(v), src.SliceFrom(6), true
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
