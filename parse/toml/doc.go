// Package toml implements a strict reader for the line-oriented core of
// TOML, with exact numeric handling and errors that point at the offending
// line and column.
//
// Scope:
//   - key = value documents with dotted keys, comments and blank lines
//   - strings (basic and literal), booleans, integers, floats, date-times
//   - integers kept at their minimal width: int32, int64 or big.Int
//   - floats as float64, or exact decimals with WithExactDecimals
//   - an immutable typed value tree with checked narrowing accessors
//
// Not implemented, reported as NotSupportedError rather than misparsed:
//   - table headers ([table] and [[array-of-tables]])
//   - inline arrays and inline tables
//   - multiline strings
//
// A document either parses whole or fails with the first error; there is no
// recovery and no partial tree. Parsed values are immutable and safe to
// share; layering configuration on top of a parsed document goes through
// Table.Rebuild and TableBuilder.
package toml
