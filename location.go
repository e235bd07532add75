// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jot

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text. Lines are 0-based. Columns are the 1-based offset of the
// scalar in its line, so the first character of the input is at line 0,
// column 1, and the position just past the end of a line is one more than
// the number of scalars in the line.
type LineCol struct {
	Line   int // line number, 0-based
	Column int // scalar offset in the line, 1-based
}

func (lc LineCol) String() string {
	return fmt.Sprintf("line %d, column %d", lc.Line, lc.Column)
}

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", loc.First.Line, loc.First.Column, loc.Last.Line, loc.Last.Column)
}
