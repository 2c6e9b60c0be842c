package toml

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind enumerates the value kinds a TOML document can hold.
type Kind uint8

const (
	KindTable Kind = iota
	KindArray
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindDateTime
)

// String returns the kind name the way error messages spell it.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal number"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "date-time"
	}
	return "unknown"
}

// Value is an immutable, typed TOML value: one of table, array, string,
// integer, decimal number, boolean, or date-time.
//
// The narrowing accessors never convert silently. Calling an accessor for a
// kind the value does not have returns an *UnexpectedTypeError, and numeric
// accessors that would lose information return an *OverflowError instead of
// truncating. Whether an accessor succeeds depends only on the kind and the
// stored width, never on the call site.
//
// Values are safe to share between goroutines and to reuse across documents;
// nothing in this package mutates one after construction.
type Value interface {
	// Kind returns the value's kind.
	Kind() Kind
	// Location returns where in the source the value started, when the
	// parser produced it. Values built in code have no location.
	Location() (Location, bool)

	// AsString returns the string contents.
	AsString() (string, error)
	// AsBool returns the boolean contents.
	AsBool() (bool, error)
	// AsInt returns an integer that fits in 32 bits, or an *OverflowError
	// naming the bit width the value actually needs.
	AsInt() (int32, error)
	// AsInt64 returns an integer that fits in 64 bits.
	AsInt64() (int64, error)
	// AsBigInt returns the integer at arbitrary precision. It succeeds for
	// every integer value; the result is a private copy.
	AsBigInt() (*big.Int, error)
	// AsFloat64 returns a decimal number as a float64, or an integer that a
	// float64 represents exactly.
	AsFloat64() (float64, error)
	// AsBigDecimal returns the number as an exact arbitrary-precision
	// decimal, for both the integer and decimal kinds. The non-finite
	// floats nan and ±inf have no exact form and overflow instead.
	AsBigDecimal() (decimal.Decimal, error)
	// AsTable returns the value as a table.
	AsTable() (*Table, error)
	// AsArray returns the value as an array.
	AsArray() (*Array, error)
	// AsDateTime returns the value as a date-time.
	AsDateTime() (*DateTime, error)

	// Untyped converts to plain Go values (map[string]any, []any, string,
	// bool, int64, float64, json.Number, ...) for handing to encoders that
	// do not know this package's types.
	Untyped() any

	// String renders the value for human display. For every kind except
	// string and date-time the result is also the literal the parser would
	// accept back.
	String() string
	// JSON renders the canonical compact interchange form: strings quoted
	// and escaped, tables as objects with sorted keys, arrays as lists.
	// The non-finite numbers render as the bare literals nan, inf and -inf,
	// which JSON proper does not allow; MarshalJSON rejects those instead.
	JSON() string
	// MarshalJSON implements json.Marshaler with the same rendering as
	// JSON, failing on non-finite numbers.
	MarshalJSON() ([]byte, error)

	appendJSON(dst []byte, strict bool) ([]byte, error)
}

// lenientJSON renders v compactly, letting non-finite numbers through as
// bare literals.
func lenientJSON(v Value) string {
	dst, _ := v.appendJSON(make([]byte, 0, 64), false)
	return string(dst)
}

// baseValue carries the kind and optional source location shared by every
// variant, and supplies accessor defaults that fail with the right
// *UnexpectedTypeError. Variants override only the accessors they support.
type baseValue struct {
	kind Kind
	loc  *Location
}

func (b *baseValue) Kind() Kind { return b.kind }

func (b *baseValue) Location() (Location, bool) {
	if b.loc == nil {
		return Location{}, false
	}
	return *b.loc, true
}

func (b *baseValue) typeError(expected string) error {
	return &UnexpectedTypeError{Expected: expected, Actual: b.kind, Loc: b.loc}
}

func (b *baseValue) AsString() (string, error) { return "", b.typeError("string") }
func (b *baseValue) AsBool() (bool, error)     { return false, b.typeError("boolean") }
func (b *baseValue) AsInt() (int32, error)     { return 0, b.typeError("integer") }
func (b *baseValue) AsInt64() (int64, error)   { return 0, b.typeError("integer") }
func (b *baseValue) AsBigInt() (*big.Int, error) {
	return nil, b.typeError("integer")
}
func (b *baseValue) AsFloat64() (float64, error) { return 0, b.typeError("number") }
func (b *baseValue) AsBigDecimal() (decimal.Decimal, error) {
	return decimal.Decimal{}, b.typeError("number")
}
func (b *baseValue) AsTable() (*Table, error)       { return nil, b.typeError("table") }
func (b *baseValue) AsArray() (*Array, error)       { return nil, b.typeError("array") }
func (b *baseValue) AsDateTime() (*DateTime, error) { return nil, b.typeError("date-time") }

// String is a TOML string value.
type String struct {
	baseValue
	value string
}

// NewString builds a string value with no source location.
func NewString(s string) *String {
	return stringValue(s, nil)
}

func stringValue(s string, loc *Location) *String {
	return &String{baseValue: baseValue{kind: KindString, loc: loc}, value: s}
}

func (v *String) AsString() (string, error) { return v.value, nil }

// String returns the raw text, unquoted. Use JSON for a quoted form.
func (v *String) String() string { return v.value }

func (v *String) Untyped() any { return v.value }

func (v *String) JSON() string { return lenientJSON(v) }

func (v *String) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *String) appendJSON(dst []byte, strict bool) ([]byte, error) {
	return appendQuoted(dst, v.value), nil
}

// Boolean is a TOML boolean value.
type Boolean struct {
	baseValue
	value bool
}

// NewBool builds a boolean value with no source location.
func NewBool(v bool) *Boolean {
	return boolValue(v, nil)
}

func boolValue(v bool, loc *Location) *Boolean {
	return &Boolean{baseValue: baseValue{kind: KindBoolean, loc: loc}, value: v}
}

func (v *Boolean) AsBool() (bool, error) { return v.value, nil }

func (v *Boolean) String() string { return strconv.FormatBool(v.value) }

func (v *Boolean) Untyped() any { return v.value }

func (v *Boolean) JSON() string { return lenientJSON(v) }

func (v *Boolean) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *Boolean) appendJSON(dst []byte, strict bool) ([]byte, error) {
	return strconv.AppendBool(dst, v.value), nil
}

// intWidth records which of the three representations an Integer stores.
type intWidth uint8

const (
	width32 intWidth = iota
	width64
	widthBig
)

// Integer is a TOML integer, stored in the smallest of int32, int64 and
// big.Int that represents it exactly. The width itself then tells each
// narrowing accessor whether it can succeed: an Integer stored 64 bits wide
// genuinely needs more than 32.
type Integer struct {
	baseValue
	width intWidth
	i32   int32
	i64   int64
	big   *big.Int
}

// NewInt builds an integer value from an int32.
func NewInt(v int32) *Integer {
	return intValue32(v, nil)
}

// NewInt64 builds an integer value, narrowing to 32 bits when v fits.
func NewInt64(v int64) *Integer {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return intValue32(int32(v), nil)
	}
	return intValue64(v, nil)
}

// NewBigInt builds an integer value at the smallest width that holds v
// exactly. The big.Int is copied, never retained.
func NewBigInt(v *big.Int) *Integer {
	if v.IsInt64() {
		return NewInt64(v.Int64())
	}
	return intValueBig(new(big.Int).Set(v), nil)
}

func intValue32(v int32, loc *Location) *Integer {
	return &Integer{baseValue: baseValue{kind: KindInteger, loc: loc}, width: width32, i32: v}
}

func intValue64(v int64, loc *Location) *Integer {
	return &Integer{baseValue: baseValue{kind: KindInteger, loc: loc}, width: width64, i64: v}
}

func intValueBig(v *big.Int, loc *Location) *Integer {
	return &Integer{baseValue: baseValue{kind: KindInteger, loc: loc}, width: widthBig, big: v}
}

// overflowError builds the failure for a representation the value cannot
// fit: always the needed bit count, plus the value itself when it is short
// enough to print. Arbitrary-precision integers can run to thousands of
// digits, so those report the width alone.
func (v *Integer) overflowError(target string) error {
	var bits int
	var rendered string
	switch v.width {
	case width64:
		bits = effectiveBits(v.i64)
		rendered = ": " + strconv.FormatInt(v.i64, 10)
	case widthBig:
		bits = v.big.BitLen() + 1
	default:
		panic("toml: overflow reported for a 32 bit integer")
	}
	return &OverflowError{
		Message: fmt.Sprintf("cannot fit a %d bit integer into %s%s", bits, target, rendered),
		Bits:    bits,
		Loc:     v.loc,
	}
}

func (v *Integer) AsInt() (int32, error) {
	if v.width == width32 {
		return v.i32, nil
	}
	return 0, v.overflowError("int32")
}

func (v *Integer) AsInt64() (int64, error) {
	switch v.width {
	case width32:
		return int64(v.i32), nil
	case width64:
		return v.i64, nil
	}
	return 0, v.overflowError("int64")
}

func (v *Integer) AsBigInt() (*big.Int, error) {
	switch v.width {
	case width32:
		return big.NewInt(int64(v.i32)), nil
	case width64:
		return big.NewInt(v.i64), nil
	}
	return new(big.Int).Set(v.big), nil
}

func (v *Integer) AsFloat64() (float64, error) {
	switch v.width {
	case width32:
		// every 32 bit integer is exact in a float64
		return float64(v.i32), nil
	case width64:
		if fitsExactlyInFloat64(v.i64) {
			return float64(v.i64), nil
		}
	case widthBig:
		if f, acc := new(big.Float).SetInt(v.big).Float64(); acc == big.Exact {
			return f, nil
		}
	}
	return 0, v.overflowError("float64")
}

func (v *Integer) AsBigDecimal() (decimal.Decimal, error) {
	switch v.width {
	case width32:
		return decimal.NewFromInt32(v.i32), nil
	case width64:
		return decimal.NewFromInt(v.i64), nil
	}
	return decimal.NewFromBigInt(new(big.Int).Set(v.big), 0), nil
}

func (v *Integer) String() string {
	switch v.width {
	case width32:
		return strconv.FormatInt(int64(v.i32), 10)
	case width64:
		return strconv.FormatInt(v.i64, 10)
	}
	return v.big.String()
}

func (v *Integer) Untyped() any {
	switch v.width {
	case width32:
		return int64(v.i32)
	case width64:
		return v.i64
	}
	// json.Number keeps arbitrary-width integers numeric through encoders
	// that would otherwise round them through a float64.
	return json.Number(v.big.String())
}

func (v *Integer) JSON() string { return lenientJSON(v) }

func (v *Integer) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *Integer) appendJSON(dst []byte, strict bool) ([]byte, error) {
	return append(dst, v.String()...), nil
}

// Decimal is a TOML decimal number: a float64 by default, or an exact
// arbitrary-precision decimal when the document was parsed with
// WithExactDecimals. The non-finite values nan and ±inf always take the
// float64 form, since exact decimals cannot express them.
type Decimal struct {
	baseValue
	f     float64
	dec   decimal.Decimal
	exact bool
}

// NewFloat builds a decimal value from a float64.
func NewFloat(v float64) *Decimal {
	return floatValue(v, nil)
}

// NewDecimal builds an exact arbitrary-precision decimal value.
func NewDecimal(d decimal.Decimal) *Decimal {
	return decimalValue(d, nil)
}

func floatValue(v float64, loc *Location) *Decimal {
	return &Decimal{baseValue: baseValue{kind: KindDecimal, loc: loc}, f: v}
}

func decimalValue(d decimal.Decimal, loc *Location) *Decimal {
	return &Decimal{baseValue: baseValue{kind: KindDecimal, loc: loc}, dec: d, exact: true}
}

func (v *Decimal) AsFloat64() (float64, error) {
	if v.exact {
		return v.dec.InexactFloat64(), nil
	}
	return v.f, nil
}

func (v *Decimal) AsBigDecimal() (decimal.Decimal, error) {
	if v.exact {
		return v.dec, nil
	}
	if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
		return decimal.Decimal{}, &OverflowError{
			Message: fmt.Sprintf("cannot represent %s as an exact decimal", formatFloat(v.f)),
			Loc:     v.loc,
		}
	}
	return decimal.NewFromFloat(v.f), nil
}

func (v *Decimal) String() string {
	if v.exact {
		return v.dec.String()
	}
	return formatFloat(v.f)
}

func (v *Decimal) Untyped() any {
	if v.exact {
		return json.Number(v.dec.String())
	}
	if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
		// most encoders reject non-finite floats outright; the literal text
		// at least survives the trip
		return formatFloat(v.f)
	}
	return v.f
}

func (v *Decimal) JSON() string { return lenientJSON(v) }

func (v *Decimal) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *Decimal) appendJSON(dst []byte, strict bool) ([]byte, error) {
	if !v.exact && strict && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return nil, fmt.Errorf("toml: cannot encode %s as JSON", formatFloat(v.f))
	}
	return append(dst, v.String()...), nil
}

// formatFloat renders a float64 the way the lexer accepts it back: the bare
// words nan, inf and -inf for the non-finite values, shortest round-trip
// decimal otherwise, with a forced ".0" so the result re-parses as a
// decimal number rather than an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
