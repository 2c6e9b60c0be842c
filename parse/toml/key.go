package toml

import (
	"fmt"
	"strings"
)

// Key is an immutable dotted key: an ordered, never-empty sequence of string
// parts, optionally carrying the location it was parsed at. "a.b.c" has the
// parts a, b, c; a quoted segment like "a.\"b.c\"" keeps its inner dot and
// has only two.
//
// The zero Key is invalid; construct keys with KeyOf or ParseSimpleKey, or
// take them from the parser.
type Key struct {
	parts []string
	loc   *Location
}

// KeyOf builds a key from the given parts. The signature makes an empty key
// unrepresentable: empty keys are a programming error, not a parse error.
func KeyOf(first string, rest ...string) Key {
	parts := make([]string, 0, 1+len(rest))
	parts = append(parts, first)
	parts = append(parts, rest...)
	return newKey(parts, nil)
}

// newKey wraps parts without copying; callers hand over ownership. Panics
// on zero parts so a broken key never circulates.
func newKey(parts []string, loc *Location) Key {
	if len(parts) == 0 {
		panic("toml: a key must have at least one part")
	}
	return Key{parts: parts, loc: loc}
}

// ParseSimpleKey parses a pre-dotted key string like "server.ports.http".
// Every segment must be a non-empty bare identifier; quoting is not
// understood here, that is the full parser's job.
func ParseSimpleKey(s string) (Key, error) {
	parts := strings.Split(s, ".")
	for _, part := range parts {
		if !isBareKey(part) {
			return Key{}, &Error{
				Message: fmt.Sprintf("invalid simple key %q: segment %q is not a bare identifier", s, part),
			}
		}
	}
	return newKey(parts, nil), nil
}

// Len returns the number of parts.
func (k Key) Len() int { return len(k.parts) }

// Part returns the part at index i.
func (k Key) Part(i int) string { return k.parts[i] }

// First returns the first part. Keys are never empty, so this cannot fail.
func (k Key) First() string { return k.parts[0] }

// Last returns the final part.
func (k Key) Last() string { return k.parts[len(k.parts)-1] }

// Parts returns a copy of the parts.
func (k Key) Parts() []string {
	out := make([]string, len(k.parts))
	copy(out, k.parts)
	return out
}

// Slice returns the sub-key covering parts [from, to). The parts are shared,
// never copied; slicing down to zero parts panics like KeyOf would.
func (k Key) Slice(from, to int) Key {
	return newKey(k.parts[from:to], k.loc)
}

// Concat returns a key holding k's parts followed by other's. The location
// stays k's.
func (k Key) Concat(other Key) Key {
	parts := make([]string, 0, len(k.parts)+len(other.parts))
	parts = append(parts, k.parts...)
	parts = append(parts, other.parts...)
	return newKey(parts, k.loc)
}

// WithLocation returns a copy of the key pointing at loc.
func (k Key) WithLocation(loc Location) Key {
	return Key{parts: k.parts, loc: &loc}
}

// Location returns the key's source location, when known.
func (k Key) Location() (Location, bool) {
	if k.loc == nil {
		return Location{}, false
	}
	return *k.loc, true
}

// Equal reports whether both keys have the same parts. Locations are
// ignored: "a.b" from line 3 equals "a.b" built in code.
func (k Key) Equal(other Key) bool {
	if len(k.parts) != len(other.parts) {
		return false
	}
	for i, part := range k.parts {
		if other.parts[i] != part {
			return false
		}
	}
	return true
}

// String renders the canonical dotted form, re-quoting any part that is not
// a bare identifier.
func (k Key) String() string {
	var b strings.Builder
	for i, part := range k.parts {
		if i > 0 {
			b.WriteByte('.')
		}
		if isBareKey(part) {
			b.WriteString(part)
		} else {
			b.Write(appendQuoted(nil, part))
		}
	}
	return b.String()
}

// isBareKey reports whether s can appear unquoted in a key: one or more
// ASCII letters, digits, underscores or dashes.
func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isBareKeyChar(r) {
			return false
		}
	}
	return true
}

func isBareKeyChar(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '-'
}
