// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot

import (
	"io"
	"strconv"

	"github.com/creachadair/mds/stack"
)

type bracket byte

const (
	inArray bracket = iota
	inObject
)

// pstate is a state of the parsing automaton. The comma states loop back to
// their element states inside Next, so parsing consumes no call stack
// regardless of input depth.
type pstate byte

const (
	stateInitial        pstate = iota // before the first value of a document
	stateArrayFirst                   // inside "[", no elements seen
	stateArrayNext                    // inside an array, after a comma
	stateArrayComma                   // inside an array, after an element
	stateObjectKeyFirst               // inside "{", no members seen
	stateObjectKeyNext                // inside an object, after a comma
	stateObjectValue                  // inside an object, after "key:"
	stateObjectComma                  // inside an object, after a member
	stateEnd                          // a complete root value was delivered
	stateFinished                     // terminal: error or end of input
)

// valuePos identifies the grammatical position of a value token.
type valuePos byte

const (
	atRoot valuePos = iota
	atArrayElem
	atObjectValue
)

// A Parser is a pull-based streaming JSON parser. Each call to Next advances
// the parser to the next event of the input; Event returns the current event
// and Err the error that ended parsing, if any. After an error Next returns
// false forever.
type Parser struct {
	sc        *Scanner
	strict    bool // reject trailing commas
	streaming bool // accept concatenated root values

	state    pstate
	brackets *stack.Stack[bracket]
	evt      Event
	err      error
}

// NewParser constructs a parser that consumes input from r. The encoding of
// r is detected and converted as by NewUnicodeReader.
func NewParser(r io.Reader) *Parser {
	return NewParserWithScanner(NewScanner(NewUnicodeReader(r)))
}

// NewParserWithScanner constructs a parser that reads tokens from s.
func NewParserWithScanner(s *Scanner) *Parser {
	return &Parser{sc: s, brackets: stack.New[bracket]()}
}

// Strict configures the parser to reject (true) or accept (false) a trailing
// comma before a closing "]" or "}". The default is to accept them.
func (p *Parser) Strict(ok bool) { p.strict = ok }

// Streaming configures the parser to accept a sequence of concatenated
// top-level values (true), or exactly one (false). In streaming mode, input
// ending cleanly between values is not an error; otherwise, any token after
// the root value is a trailingCharacters error.
func (p *Parser) Streaming(ok bool) { p.streaming = ok }

// AllowComments configures the underlying scanner to permit comments, which
// the parser then skips.
func (p *Parser) AllowComments(ok bool) { p.sc.AllowComments(ok) }

// Event returns the current event. It is valid until the next call of Next.
func (p *Parser) Event() Event { return p.evt }

// Err returns the error that terminated parsing, or nil if parsing has not
// ended or ended at a clean end of input.
func (p *Parser) Err() error { return p.err }

// Depth reports the current nesting depth of open objects and arrays.
func (p *Parser) Depth() int { return p.brackets.Len() }

// Next advances p to the next event of the input. It returns false when the
// input is exhausted or an error occurs; use Err to distinguish the cases.
func (p *Parser) Next() bool {
	if p.state == stateFinished {
		return false
	}
	for {
		if !p.sc.Next() {
			return p.atEOF()
		}
		tok, loc := p.sc.Token(), p.sc.Location()
		if tok == LineComment || tok == BlockComment {
			continue
		}

		switch p.state {
		case stateInitial:
			return p.beginValue(tok, loc, atRoot)

		case stateEnd:
			if !p.streaming {
				return p.fail(TrailingCharacters, loc.First)
			}
			return p.beginValue(tok, loc, atRoot)

		case stateArrayFirst:
			if tok == RSquare {
				return p.closeBracket(ArrayEnd, loc)
			}
			return p.beginValue(tok, loc, atArrayElem)

		case stateArrayNext:
			if tok == RSquare {
				if p.strict {
					return p.fail(TrailingComma, loc.First)
				}
				return p.closeBracket(ArrayEnd, loc)
			}
			return p.beginValue(tok, loc, atArrayElem)

		case stateArrayComma:
			switch tok {
			case Comma:
				p.state = stateArrayNext
				continue
			case RSquare:
				return p.closeBracket(ArrayEnd, loc)
			}
			return p.fail(InvalidSyntax, loc.First)

		case stateObjectKeyFirst:
			if tok == RBrace {
				return p.closeBracket(ObjectEnd, loc)
			}
			return p.objectKey(tok, loc)

		case stateObjectKeyNext:
			if tok == RBrace {
				if p.strict {
					return p.fail(TrailingComma, loc.First)
				}
				return p.closeBracket(ObjectEnd, loc)
			}
			return p.objectKey(tok, loc)

		case stateObjectValue:
			return p.beginValue(tok, loc, atObjectValue)

		case stateObjectComma:
			switch tok {
			case Comma:
				p.state = stateObjectKeyNext
				continue
			case RBrace:
				return p.closeBracket(ObjectEnd, loc)
			}
			return p.fail(InvalidSyntax, loc.First)

		default:
			return p.fail(InvalidSyntax, loc.First)
		}
	}
}

// beginValue handles a token at a position where a value is required.
func (p *Parser) beginValue(tok Token, loc Location, at valuePos) bool {
	switch tok {
	case LBrace:
		p.brackets.Push(inObject)
		p.state = stateObjectKeyFirst
		p.evt = Event{kind: ObjectStart, loc: loc}
		return true

	case LSquare:
		p.brackets.Push(inArray)
		p.state = stateArrayFirst
		p.evt = Event{kind: ArrayStart, loc: loc}
		return true

	case String:
		dec, err := Unquote(p.sc.Text())
		if err != nil {
			return p.fail(InvalidEscape, loc.First)
		}
		p.evt = Event{kind: StringValue, s: string(dec), loc: loc}
		p.state = p.afterValue()
		return true

	case Integer, Number:
		return p.numberEvent(tok, loc)

	case True, False:
		p.evt = Event{kind: BoolValue, b: tok == True, s: string(p.sc.Text()), loc: loc}
		p.state = p.afterValue()
		return true

	case Null:
		p.evt = Event{kind: NullValue, s: "null", loc: loc}
		p.state = p.afterValue()
		return true

	case Comma:
		if at == atRoot {
			return p.fail(InvalidSyntax, loc.First)
		}
		return p.fail(MissingValue, loc.First)

	case RBrace:
		if at == atObjectValue {
			return p.fail(MissingValue, loc.First)
		}
		return p.fail(InvalidSyntax, loc.First)

	default: // Colon, RSquare
		return p.fail(InvalidSyntax, loc.First)
	}
}

// afterValue returns the state following a completed value in the current
// bracket context.
func (p *Parser) afterValue() pstate {
	b, ok := p.top()
	switch {
	case !ok:
		return stateEnd
	case b == inArray:
		return stateArrayComma
	default:
		return stateObjectComma
	}
}

func (p *Parser) top() (bracket, bool) {
	b, ok := p.brackets.Pop()
	if ok {
		p.brackets.Push(b)
	}
	return b, ok
}

func (p *Parser) closeBracket(kind Kind, loc Location) bool {
	p.brackets.Pop()
	p.evt = Event{kind: kind, loc: loc}
	p.state = p.afterValue()
	return true
}

// objectKey handles a token at a position where an object key is required.
// The key string and the colon following it are consumed together, and the
// key is delivered as a StringValue event.
func (p *Parser) objectKey(tok Token, loc Location) bool {
	switch tok {
	case String:
		// OK
	case Comma, Colon:
		return p.fail(MissingKey, loc.First)
	case LBrace, LSquare, Integer, Number, True, False, Null:
		return p.fail(NonStringKey, loc.First)
	default:
		return p.fail(InvalidSyntax, loc.First)
	}
	dec, err := Unquote(p.sc.Text())
	if err != nil {
		return p.fail(InvalidEscape, loc.First)
	}

	// Require a colon after the key before delivering the key event.
	for {
		if !p.sc.Next() {
			if err := p.sc.Err(); err != nil {
				p.err = err
				p.state = stateFinished
				return false
			}
			return p.fail(UnexpectedEOF, p.sc.Pos())
		}
		ct := p.sc.Token()
		if ct == LineComment || ct == BlockComment {
			continue
		}
		if ct != Colon {
			return p.fail(ExpectedColon, p.sc.Location().First)
		}
		break
	}

	p.evt = Event{kind: StringValue, s: string(dec), loc: loc}
	p.state = stateObjectValue
	return true
}

// numberEvent converts a number token into an Int64Value or DoubleValue
// event. Integer literals that overflow int64 fall back to float64; literals
// whose magnitude overflows float64 keep the infinity that strconv reports.
func (p *Parser) numberEvent(tok Token, loc Location) bool {
	text := string(p.sc.Text())
	if tok == Integer {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			p.evt = Event{kind: Int64Value, n: n, s: text, loc: loc}
			p.state = p.afterValue()
			return true
		}
		if !isRangeError(err) {
			return p.fail(InvalidNumber, loc.First)
		}
		// fall through to float64
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeError(err) {
		return p.fail(InvalidNumber, loc.First)
	}
	p.evt = Event{kind: DoubleValue, f: f, s: text, loc: loc}
	p.state = p.afterValue()
	return true
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func (p *Parser) fail(code ErrorCode, at LineCol) bool {
	p.err = &SyntaxError{Code: code, Location: at}
	p.state = stateFinished
	return false
}

// atEOF handles the scanner running out of tokens.
func (p *Parser) atEOF() bool {
	if err := p.sc.Err(); err != nil {
		p.err = err
		p.state = stateFinished
		return false
	}
	switch p.state {
	case stateEnd:
		p.state = stateFinished
		return false
	case stateInitial:
		if p.streaming {
			p.state = stateFinished
			return false
		}
		return p.fail(UnexpectedEOF, p.sc.Pos())
	default:
		// Inside an unclosed object or array, or expecting a value.
		return p.fail(UnexpectedEOF, p.sc.Pos())
	}
}
