// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/seaward/jot"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jot.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jot.Token{jot.True, jot.False, jot.Null}},

		// Punctuation
		{"{ [ ] } , :", []jot.Token{
			jot.LBrace, jot.LSquare, jot.RSquare, jot.RBrace, jot.Comma, jot.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jot.Token{jot.String, jot.String, jot.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jot.Token{jot.String}},
		{`"\u0020\u01fc\uAA9c"`, []jot.Token{jot.String}},
		{`"\uD83D\uDCA9"`, []jot.Token{jot.String}}, // surrogate pair

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jot.Token{
			jot.Integer, jot.Integer, jot.Integer,
			jot.Number, jot.Number, jot.Number, jot.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jot.Token{
			jot.LBrace, jot.True, jot.Comma, jot.String, jot.Colon,
			jot.Integer, jot.Null, jot.LSquare, jot.RSquare, jot.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jot.Token{
			jot.LBrace,
			jot.String, jot.Colon, jot.True, jot.Comma,
			jot.String, jot.Colon,
			jot.LSquare,
			jot.Null, jot.Comma, jot.Integer, jot.Comma, jot.Number,
			jot.RSquare,
			jot.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jot.Token{
			jot.String, jot.Comma, jot.Integer, jot.Comma, jot.True,
			jot.False, jot.LSquare, jot.String, jot.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jot.Token
		s := jot.NewScanner(strings.NewReader(test.input))
		for s.Next() {
			got = append(got, s.Token())
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input string
		code  jot.ErrorCode
		line  int
		col   int
	}{
		// Unterminated strings report the end of input.
		{`"abc`, jot.UnexpectedEOF, 0, 5},
		{`"`, jot.UnexpectedEOF, 0, 2},
		{`"ab\`, jot.UnexpectedEOF, 0, 5},
		{`"ab\u12`, jot.UnexpectedEOF, 0, 8},

		// Escape errors report the backslash that began the escape.
		{`"\q"`, jot.InvalidEscape, 0, 2},
		{`"ab\x"`, jot.InvalidEscape, 0, 4},
		{`"\uZZZZ"`, jot.InvalidUnicodeScalar, 0, 2},
		{`"\u12G4"`, jot.InvalidUnicodeScalar, 0, 2},
		{`"\uDCA9"`, jot.InvalidUnicodeScalar, 0, 2}, // unpaired trailing surrogate
		{`"\uD83D x"`, jot.LoneLeadingSurrogate, 0, 2},
		{`"\uD83D\n"`, jot.LoneLeadingSurrogate, 0, 2},
		{`"\uD83D\uD83D"`, jot.LoneLeadingSurrogate, 0, 2},

		// Raw control characters report their own position.
		{"\"a\tb\"", jot.ControlCharacterInString, 0, 3},
		{"\"\x00\"", jot.ControlCharacterInString, 0, 2},

		// Number errors report the start of the number.
		{`01`, jot.InvalidNumber, 0, 1},
		{`-01`, jot.InvalidNumber, 0, 1},
		{`1.`, jot.InvalidNumber, 0, 1},
		{`-`, jot.InvalidNumber, 0, 1},
		{`1e`, jot.InvalidNumber, 0, 1},
		{`1e+`, jot.InvalidNumber, 0, 1},
		{`[0, 1.]`, jot.InvalidNumber, 0, 5},

		// Misspelled constants and junk report the token start.
		{`tru`, jot.InvalidSyntax, 0, 1},
		{`falze`, jot.InvalidSyntax, 0, 1},
		{`nul`, jot.InvalidSyntax, 0, 1},
		{`@`, jot.InvalidSyntax, 0, 1},
		{"\n  @", jot.InvalidSyntax, 1, 3},
	}

	for _, test := range tests {
		s := jot.NewScanner(strings.NewReader(test.input))
		for s.Next() {
		}
		var serr *jot.SyntaxError
		if !errors.As(s.Err(), &serr) {
			t.Errorf("Input %#q: got error %v, want *SyntaxError", test.input, s.Err())
			continue
		}
		if serr.Code != test.code {
			t.Errorf("Input %#q: got code %v, want %v", test.input, serr.Code, test.code)
		}
		if serr.Location.Line != test.line || serr.Location.Column != test.col {
			t.Errorf("Input %#q: got location %v, want line %d, column %d",
				test.input, serr.Location, test.line, test.col)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []jot.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jot.Token{jot.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []jot.Token{jot.LineComment, jot.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []jot.Token{jot.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []jot.Token{
			jot.LBrace, jot.String, jot.Colon, jot.Integer, jot.Comma, jot.LineComment,
			jot.String, jot.BlockComment, jot.Colon, jot.Number, jot.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},

		{"/**\n*/", []jot.Token{jot.BlockComment}, []string{"/**\n*/"}},

		{`/**/"foo"/***/"bar"/****/false/*x*/null`, []jot.Token{
			jot.BlockComment, jot.String,
			jot.BlockComment, jot.String,
			jot.BlockComment, jot.False,
			jot.BlockComment, jot.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		var got []jot.Token
		var coms []string
		s := jot.NewScanner(strings.NewReader(test.input))
		s.AllowComments(true)
		for s.Next() {
			got = append(got, s.Token())
			if tok := s.Token(); tok == jot.LineComment || tok == jot.BlockComment {
				coms = append(coms, string(s.Text()))
			}
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jot.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jot.LBrace, "0:1-2"}, {jot.RBrace, "0:3-4"}}},
		{`"foo" // bar`, []tokPos{{jot.String, "0:1-6"}, {jot.LineComment, "0:7-13"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{
			{jot.BlockComment, "0:1-9"}, {jot.True, "1:1-5"}, {jot.False, "2:2-7"},
		}},
		{"/* ok\n*/\n null", []tokPos{{jot.BlockComment, "0:1-1:3"}, {jot.Null, "2:2-6"}}},
		{"// first\n[1, 2\n]", []tokPos{
			{jot.LineComment, "0:1-1:1"}, {jot.LSquare, "1:1-2"}, {jot.Integer, "1:2-3"},
			{jot.Comma, "1:3-4"}, {jot.Integer, "1:5-6"}, {jot.RSquare, "2:1-2"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jot.NewScanner(strings.NewReader(tc.input))
		s.AllowComments(true)
		for s.Next() {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"This is the end\v", `"This is the end\u000B"`},
		{"<\x1e>", `"<\u001E>"`},

		// Non-ASCII characters pass through verbatim.
		{"\u2028 \u2029 \ufffd", "\"\u2028 \u2029 \ufffd\""},
		{"pâté \U0001F4A9", "\"pâté \U0001F4A9\""},
	}
	for _, test := range tests {
		got := jot.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},    // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, "�", false},         // invalid Unicode escape
		{`"\u019 "`, "�", false},         // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok

		// Surrogate pairs combine into the scalar they encode; unpaired
		// surrogates are replaced.
		{`"💩"`, "\U0001F4A9", false},
		{`"x\uD83Dy"`, "x�y", false},
		{`"x\uDCA9y"`, "x�y", false},
		{`"\uD83D\uD83D"`, "��", false},
	}

	for _, test := range tests {
		got, err := jot.Unquote([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if err == nil && test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}
