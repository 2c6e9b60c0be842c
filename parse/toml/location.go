package toml

import "fmt"

// Location identifies a character within a TOML document.
//
// Line numbers are 1-based, character offsets within a line are 0-based.
// Every parsed value and most errors carry the location the relevant text
// started at, so applications can point users at the exact spot.
//
// Two locations are equal exactly when both fields match; the zero Location
// is not a valid position (lines start at 1) and stands for "unknown".
type Location struct {
	// Line is the 1-based line number.
	Line int
	// Offset is the 0-based character offset within the line.
	Offset int
}

// String renders the location as "line:offset".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Offset)
}
