package parse

// Package parse wraps the strict TOML reader in parse/toml with the entry
// points the command line and most callers want: parse a reader, a string,
// or a file on disk.
//
// Scope:
// - One-call parsing from io.Reader, string or file path
// - Dotted-path lookups against the typed value tree
// - Must* helpers for callers that treat absence as a bug
//
// Non-goals (by design):
// - Comment preservation
// - Formatting round-trip
// - Streaming mutation
//
// Everything typed lives in the toml subpackage; this layer only removes
// boilerplate.

import (
	"io"
	"os"

	"github.com/minitoml/minitoml/parse/toml"
)

// =========================
// Public API
// =========================

// ParseToml parses TOML input from r and returns the root table.
func ParseToml(r io.Reader, opts ...toml.Option) (*toml.Table, error) {
	return toml.Parse(r, opts...)
}

// ParseTomlString parses a TOML document held in memory.
func ParseTomlString(s string, opts ...toml.Option) (*toml.Table, error) {
	return toml.ParseString(s, opts...)
}

// ParseTomlFile opens path, parses it and closes it again.
func ParseTomlFile(path string, opts ...toml.Option) (*toml.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return toml.Parse(f, opts...)
}

// =========================
// Safe Access Helpers
// =========================

// Get descends through nested tables along path and returns the value at
// the end. Each path element is one key segment; nothing is split on dots
// here, so segments containing dots need no quoting.
func Get(root *toml.Table, path ...string) (toml.Value, bool) {
	if len(path) == 0 {
		return root, true
	}
	var current toml.Value = root
	for _, segment := range path {
		t, err := current.AsTable()
		if err != nil {
			return nil, false
		}
		next, ok := t.Get(toml.KeyOf(segment))
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// MustString unwraps a string value, panicking on any other kind. For
// callers that have already validated the document shape.
func MustString(v toml.Value) string {
	s, err := v.AsString()
	if err != nil {
		panic(err)
	}
	return s
}

// MustInt64 unwraps an integer value that fits 64 bits, panicking
// otherwise.
func MustInt64(v toml.Value) int64 {
	i, err := v.AsInt64()
	if err != nil {
		panic(err)
	}
	return i
}
