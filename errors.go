package jot

import "fmt"

// ErrorCode identifies the failure reported by a SyntaxError.
type ErrorCode int

// Constants defining the valid ErrorCode values.
const (
	InvalidSyntax ErrorCode = 1 + iota
	InvalidNumber
	InvalidEscape
	InvalidUnicodeScalar
	LoneLeadingSurrogate
	ControlCharacterInString
	ExpectedColon
	MissingKey
	NonStringKey
	MissingValue
	TrailingComma
	TrailingCharacters
	UnexpectedEOF
)

var codeStr = [...]string{
	InvalidSyntax:            "invalid syntax",
	InvalidNumber:            "invalid number",
	InvalidEscape:            "invalid escape sequence",
	InvalidUnicodeScalar:     "invalid unicode scalar",
	LoneLeadingSurrogate:     "lone leading surrogate in unicode escape",
	ControlCharacterInString: "control character in string",
	ExpectedColon:            "expected colon",
	MissingKey:               "missing object key",
	NonStringKey:             "object key is not a string",
	MissingValue:             "missing value",
	TrailingComma:            "trailing comma",
	TrailingCharacters:       "trailing characters after value",
	UnexpectedEOF:            "unexpected end of input",
}

func (c ErrorCode) String() string {
	if c <= 0 || int(c) >= len(codeStr) {
		return "unknown error"
	}
	return codeStr[c]
}

// SyntaxError is the concrete type of errors reported by the Scanner and the
// Parser. The location identifies the start of the offending token; for
// errors at the end of input it is the position just past the last scalar.
type SyntaxError struct {
	Code     ErrorCode
	Location LineCol
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Code)
}
