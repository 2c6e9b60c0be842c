package toml

import (
	"errors"
	"fmt"
)

// Error is the base type for failures this package reports. It pairs a
// message with the source location the failure refers to, when one is known.
//
// The more specific error types (SyntaxError, NotSupportedError,
// OverflowError, MissingKeyError, UnexpectedTypeError, UnexpectedDateError)
// should be matched with errors.As; ErrorLocation extracts a location from
// any of them without knowing which one it got.
type Error struct {
	Message string
	Loc     *Location
	cause   error
}

func (e *Error) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s at %s", e.Message, e.Loc)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) errorLocation() (Location, bool) {
	if e.Loc == nil {
		return Location{}, false
	}
	return *e.Loc, true
}

// SyntaxError reports malformed input. Unlike the other error kinds, the
// location is always present: syntax errors only ever come from source text.
type SyntaxError struct {
	Message string
	Loc     Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Loc)
}

func (e *SyntaxError) errorLocation() (Location, bool) { return e.Loc, true }

func syntaxErrorf(loc Location, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Loc: loc}
}

// NotSupportedError reports input that uses a recognized TOML construct this
// reader does not implement: inline arrays, inline tables, multiline strings
// and table headers. Keeping these distinct from SyntaxError lets callers
// tell "valid TOML we refuse" from "not TOML at all".
type NotSupportedError struct {
	// Feature names the construct in plural form, e.g. "inline arrays".
	Feature string
	Loc     Location
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s are not yet supported at %s", e.Feature, e.Loc)
}

func (e *NotSupportedError) errorLocation() (Location, bool) { return e.Loc, true }

// OverflowError reports a value that exceeds the bounds of its requested
// representation: an integer too wide for the accessor that was called, a
// non-finite number asked for as an exact decimal, or a key nested past the
// configured depth budget.
type OverflowError struct {
	Message string
	// Bits is the effective bit count for numeric overflows, zero otherwise.
	Bits int
	Loc  *Location
}

func (e *OverflowError) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s at %s", e.Message, e.Loc)
	}
	return e.Message
}

func (e *OverflowError) errorLocation() (Location, bool) {
	if e.Loc == nil {
		return Location{}, false
	}
	return *e.Loc, true
}

// MissingKeyError reports a Require lookup that found nothing. Key is the
// full requested key; the location is the queried table's own, when known.
type MissingKeyError struct {
	Key Key
	Loc *Location
}

func (e *MissingKeyError) Error() string {
	msg := fmt.Sprintf("missing required key: %s", e.Key)
	if e.Loc != nil {
		msg += " at " + e.Loc.String()
	}
	return msg
}

func (e *MissingKeyError) errorLocation() (Location, bool) {
	if e.Loc == nil {
		return Location{}, false
	}
	return *e.Loc, true
}

// UnexpectedTypeError reports a narrowing accessor called on a value of the
// wrong kind. The location is the offending value's, so the message can
// point at the line the user has to fix.
type UnexpectedTypeError struct {
	// Expected describes the kind the accessor required, e.g. "string".
	Expected string
	Actual   Kind
	Loc      *Location
}

func (e *UnexpectedTypeError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	if e.Loc != nil {
		msg += " at " + e.Loc.String()
	}
	return msg
}

func (e *UnexpectedTypeError) errorLocation() (Location, bool) {
	if e.Loc == nil {
		return Location{}, false
	}
	return *e.Loc, true
}

// UnexpectedDateError reports a date-time accessor that required a component
// (calendar date or wall-clock time) the stored value does not carry.
type UnexpectedDateError struct {
	// Value is the date-time the accessor was called on.
	Value *DateTime
	// Reason says what was missing, e.g. "missing time information".
	Reason string
	Loc    *Location
}

func (e *UnexpectedDateError) Error() string {
	msg := fmt.Sprintf("invalid value, %s: %s", e.Reason, e.Value)
	if e.Loc != nil {
		msg += " at " + e.Loc.String()
	}
	return msg
}

func (e *UnexpectedDateError) errorLocation() (Location, bool) {
	if e.Loc == nil {
		return Location{}, false
	}
	return *e.Loc, true
}

// ErrorLocation reports the source location attached to err, if err is (or
// wraps) one of this package's error types and a location is known.
func ErrorLocation(err error) (Location, bool) {
	var located interface{ errorLocation() (Location, bool) }
	if errors.As(err, &located) {
		return located.errorLocation()
	}
	return Location{}, false
}
