// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a stream of Unicode scalars encoded as
// UTF-8. Use NewUnicodeReader to convert other encodings before scanning.
// Each call to Next advances the scanner to the next token, or reports an
// error via Err.
type Scanner struct {
	r        *bufio.Reader
	comments bool         // allow comments
	buf      bytes.Buffer // current token
	tok      Token
	err      error
	eof      bool

	pos, end int // start and end byte offsets of the current token
	last     int // size in bytes of the last-read input rune

	// Line and column of the next scalar to be read. Lines are 0-based;
	// columns are the 1-based scalar offset on the line.
	eline, ecol int
	rline, rcol int // line and column of the last-read scalar
	pline, pcol int // line and column where the current token begins
	uline, ucol int // saved position for unrune
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br, ecol: 1}
}

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are an extension of the JSON grammar. If enabled,
// C++ style block comments (/* ... */) and line comments (// ... <LF>) are
// reported as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input. It returns false when the
// input is exhausted or an error occurs; use Err to distinguish the cases.
func (s *Scanner) Next() bool {
	if s.err != nil || s.eof {
		return false
	}
	s.buf.Reset()
	s.tok = Invalid

	for {
		s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
		ch, err := s.rune()
		if err == io.EOF {
			s.eof = true
			return false
		} else if err != nil {
			s.err = err
			return false
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return true
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString()
		}

		// Handle comments, if enabled.
		if ch == '/' && s.comments {
			return s.scanComment(ch)
		}

		// Handle constants: true, false, null.
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
		case 'f':
			s.tok = False
			want = mem.S("false")
		case 'n':
			s.tok = Null
			want = mem.S("null")
		default:
			return s.failStart(InvalidSyntax)
		}
		if !s.scanName(ch) {
			return false
		}
		if !mem.B(s.buf.Bytes()).Equal(want) {
			return s.failStart(InvalidSyntax)
		}
		return true // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that terminated scanning, or nil if scanning has not
// ended or ended at a clean end of input.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value is
// only valid until the next call of Next; the caller must copy the contents
// of the slice if they are needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Span returns the byte-offset span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline, Column: s.pcol},
		Last:  LineCol{Line: s.eline, Column: s.ecol},
	}
}

// Pos returns the position at which the next token would begin. After the
// end of input this is one position past the last scalar.
func (s *Scanner) Pos() LineCol { return LineCol{Line: s.eline, Column: s.ecol} }

func (s *Scanner) scanString() bool {
	s.buf.WriteByte('"')
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failEOF() // unterminated string
		} else if err != nil {
			s.err = err
			return false
		}
		switch {
		case ch == '"':
			s.buf.WriteByte('"')
			s.tok = String
			return true
		case ch == '\\':
			if !s.scanEscape() {
				return false
			}
		case ch < ' ':
			return s.failAt(ControlCharacterInString, s.rline, s.rcol)
		default:
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape consumes the remainder of a backslash escape, the "\" having
// already been read. An escape encoding a leading surrogate must be followed
// immediately by an escape encoding its trailing partner; both halves are
// consumed here.
func (s *Scanner) scanEscape() bool {
	eline, ecol := s.rline, s.rcol // position of the backslash
	s.buf.WriteByte('\\')
	ch, err := s.rune()
	if err == io.EOF {
		return s.failEOF()
	} else if err != nil {
		s.err = err
		return false
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.buf.WriteByte(byte(ch))
		return true
	case 'u':
		s.buf.WriteByte('u')
		v, ok := s.readHex4(eline, ecol)
		if !ok {
			return false
		}
		if isLeadSurrogate(v) {
			return s.scanTrailingSurrogate(eline, ecol)
		}
		if isTrailSurrogate(v) {
			return s.failAt(InvalidUnicodeScalar, eline, ecol)
		}
		return true
	default:
		return s.failAt(InvalidEscape, eline, ecol)
	}
}

// scanTrailingSurrogate requires the next input to be a "\uXXXX" escape whose
// value is a trailing surrogate, completing the pair begun at eline, ecol.
func (s *Scanner) scanTrailingSurrogate(eline, ecol int) bool {
	ch, err := s.rune()
	if err == io.EOF {
		return s.failEOF()
	} else if err != nil {
		s.err = err
		return false
	}
	if ch != '\\' {
		return s.failAt(LoneLeadingSurrogate, eline, ecol)
	}
	s.buf.WriteByte('\\')
	ch, err = s.rune()
	if err == io.EOF {
		return s.failEOF()
	} else if err != nil {
		s.err = err
		return false
	}
	if ch != 'u' {
		return s.failAt(LoneLeadingSurrogate, eline, ecol)
	}
	s.buf.WriteByte('u')
	v, ok := s.readHex4(eline, ecol)
	if !ok {
		return false
	}
	if !isTrailSurrogate(v) {
		return s.failAt(LoneLeadingSurrogate, eline, ecol)
	}
	return true
}

// readHex4 reads exactly four hexadecimal digits and returns their value.
func (s *Scanner) readHex4(eline, ecol int) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return 0, s.failEOF()
		} else if err != nil {
			s.err = err
			return 0, false
		}
		d, ok := hexValue(ch)
		if !ok {
			return 0, s.failAt(InvalidUnicodeScalar, eline, ecol)
		}
		s.buf.WriteRune(ch)
		v = v<<4 | d
	}
	return v, true
}

func (s *Scanner) scanNumber(start rune) bool {
	s.buf.WriteRune(start)

	if start == '-' {
		// A leading sign must be followed by at least one digit.
		ch, err := s.rune()
		if err != nil || !isDigit(ch) {
			if err == nil {
				s.unrune()
			}
			return s.failStart(InvalidNumber)
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of the integer part.
	_, ch, err := s.readWhile(isDigit)
	if err == io.EOF {
		if hasExtraLeadingZeroes(s.buf.Bytes()) {
			return s.failStart(InvalidNumber)
		}
		s.tok = Integer
		return true
	} else if err != nil {
		s.err = err
		return false
	}

	// Check for extra leading zeroes, which the grammar disallows.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failStart(InvalidNumber)
	}

	// If a decimal point follows, consume a fractional part.
	var isFloat bool
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if nr == 0 {
			return s.failStart(InvalidNumber) // a digit must follow "."
		}
		if err == io.EOF {
			s.tok = Number
			return true
		} else if err != nil {
			s.err = err
			return false
		}
		isFloat = true
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		if isFloat {
			s.tok = Number
		} else {
			s.tok = Integer
		}
		return true
	}

	s.buf.WriteRune(ch)
	ch, err = s.rune()
	if err != nil || !isExpStart(ch) {
		if err == nil {
			s.unrune()
		}
		return s.failStart(InvalidNumber) // a sign or digit must follow "e"
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (ch == '-' || ch == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.failStart(InvalidNumber)
	} else if err == io.EOF {
		s.tok = Number
		return true
	} else if err != nil {
		s.err = err
		return false
	}
	s.unrune()
	s.tok = Number
	return true
}

func (s *Scanner) scanComment(first rune) bool {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err == io.EOF {
		return s.failStart(InvalidSyntax)
	} else if err != nil {
		s.err = err
		return false
	}
	switch ch {
	case '/': // line comment, to LF
		s.buf.WriteRune(ch)
		_, end, err := s.readWhile(isNotLF)
		if err == nil {
			s.buf.WriteRune(end)
		} else if err != io.EOF {
			s.err = err
			return false
		}
		s.tok = LineComment
		return true

	case '*': // block comment
		s.buf.WriteRune(ch)
		for {
			_, end, err := s.readWhile(isNotStar)
			if err == io.EOF {
				return s.failEOF()
			} else if err != nil {
				s.err = err
				return false
			}
			s.buf.WriteRune(end) // end == '*'

			// Check whether we have "*/", which would end the comment.
			next, err := s.rune()
			if err == io.EOF {
				return s.failEOF()
			} else if err != nil {
				s.err = err
				return false
			}
			s.buf.WriteRune(next)
			if next == '/' {
				s.tok = BlockComment
				return true
			}

			// We saw "*" but not "/", keep scanning for the end of the block.
		}

	default:
		return s.failStart(InvalidSyntax)
	}
}

func (s *Scanner) scanName(first rune) bool {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return true
	} else if err != nil {
		s.err = err
		return false
	}
	s.unrune()
	return true
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	if err != nil {
		s.last = 0
		return 0, err
	}
	s.last = nb
	s.end += nb
	s.uline, s.ucol = s.eline, s.ecol
	s.rline, s.rcol = s.eline, s.ecol
	if ch == '\n' {
		s.eline++
		s.ecol = 1
	} else {
		s.ecol++
	}
	return ch, nil
}

func (s *Scanner) unrune() {
	if s.last == 0 {
		return
	}
	s.end -= s.last
	s.eline, s.ecol = s.uline, s.ucol
	s.last = 0
	s.r.UnreadRune()
}

// readWhile consumes runes matching f from the input until EOF or until a
// rune not matching f is found. The first non-matching rune (if any) is
// returned; it is the caller's responsibility to unread this rune if
// desired. The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

func (s *Scanner) failAt(code ErrorCode, line, col int) bool {
	s.err = &SyntaxError{Code: code, Location: LineCol{Line: line, Column: col}}
	return false
}

func (s *Scanner) failStart(code ErrorCode) bool { return s.failAt(code, s.pline, s.pcol) }

func (s *Scanner) failEOF() bool { return s.failAt(UnexpectedEOF, s.eline, s.ecol) }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNotStar(ch rune) bool  { return ch != '*' }
func isNotLF(ch rune) bool    { return ch != '\n' }
func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isLeadSurrogate(r rune) bool  { return r >= 0xD800 && r < 0xDC00 }
func isTrailSurrogate(r rune) bool { return r >= 0xDC00 && r < 0xE000 }

func hexValue(ch rune) (rune, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK only if it is the sole digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
