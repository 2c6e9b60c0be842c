package toml

import (
	"bufio"
	"fmt"
	"io"
)

// scanner feeds the lexer one line at a time. It buffers a single line as
// runes, tracks the cursor position within it, and keeps end-of-line
// distinct from end-of-file so the lexer can tell "this line is done" from
// "the whole document is done".
//
// I/O failures are remembered rather than returned from every peek: the
// input looks exhausted to the lexer, and the parser asks failure() once the
// document loop finishes.
type scanner struct {
	src      *bufio.Scanner
	line     []rune
	haveLine bool
	lineNum  int // 1-based; 0 before the first line is read
	offset   int // rune offset of the cursor within line
	eof      bool
	readErr  error
}

func newScanner(r io.Reader) *scanner {
	return &scanner{src: bufio.NewScanner(r)}
}

// ensureLine lazily pulls the next line after an advanceLine. A no-op while
// a line is buffered or once the input is exhausted.
func (s *scanner) ensureLine() {
	if s.haveLine || s.eof {
		return
	}
	if s.src.Scan() {
		s.line = []rune(s.src.Text())
		s.haveLine = true
		s.lineNum++
		s.offset = 0
		return
	}
	s.eof = true
	s.readErr = s.src.Err()
}

// peek returns the rune ahead positions past the cursor on the current
// line, or -1 past the end of the line or of the input. It never crosses a
// line boundary and never moves the cursor.
func (s *scanner) peek(ahead int) rune {
	s.ensureLine()
	if !s.haveLine || s.offset+ahead >= len(s.line) {
		return -1
	}
	return s.line[s.offset+ahead]
}

// skip advances the cursor n runes within the current line. Skipping past
// the end of the line is a caller bug: the lexer always peeks first.
func (s *scanner) skip(n int) {
	s.ensureLine()
	remaining := 0
	if s.haveLine {
		remaining = len(s.line) - s.offset
	}
	if n < 0 || n > remaining {
		panic(fmt.Sprintf("toml: skipping %d runes with %d left on the line", n, remaining))
	}
	s.offset += n
}

// rewind moves the cursor back to an earlier offset on the current line.
// The number lexer uses it to restart an integer scan as a float.
func (s *scanner) rewind(offset int) {
	if !s.haveLine || offset < 0 || offset > s.offset {
		panic("toml: rewinding outside the current line")
	}
	s.offset = offset
}

// advanceLine consumes the line boundary; the next peek pulls the following
// line.
func (s *scanner) advanceLine() {
	s.line = nil
	s.haveLine = false
}

// atEOF reports whether the input is exhausted. Meaningful after a peek has
// returned -1: a -1 with atEOF false means end of line only.
func (s *scanner) atEOF() bool {
	s.ensureLine()
	return !s.haveLine
}

// remaining returns the number of unconsumed runes on the current line.
func (s *scanner) remaining() int {
	s.ensureLine()
	if !s.haveLine {
		return 0
	}
	return len(s.line) - s.offset
}

// rest returns the unconsumed portion of the current line, without moving
// the cursor.
func (s *scanner) rest() string {
	s.ensureLine()
	if !s.haveLine {
		return ""
	}
	return string(s.line[s.offset:])
}

// location reports the cursor position. Calling it before the first line
// has been read is a caller bug; after end of input it keeps pointing just
// past the last consumed text.
func (s *scanner) location() Location {
	if s.lineNum < 1 {
		panic("toml: location requested before reading any input")
	}
	return Location{Line: s.lineNum, Offset: s.offset}
}

// failure returns the I/O error that ended the input, if any. A nil return
// after atEOF means the document really ended.
func (s *scanner) failure() error { return s.readErr }
