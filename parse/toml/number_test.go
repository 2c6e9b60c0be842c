package toml

import (
	"errors"
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func parseNumberFrom(src string, opts ...Option) (Value, error) {
	return lexFor(src, opts...).parseNumber()
}

func TestIntegerMinimalWidth(t *testing.T) {
	convey.Convey("integers land in the smallest representation that fits", t, func() {
		convey.Convey("32 bits up to the int32 bounds", func() {
			for _, src := range []string{"0", "-0", "42", "2147483647", "-2147483648"} {
				v, err := parseNumberFrom(src)
				convey.So(err, convey.ShouldBeNil)
				convey.So(v.(*Integer).width, convey.ShouldEqual, width32)
			}

			v, _ := parseNumberFrom("2147483647")
			i, err := v.AsInt()
			convey.So(err, convey.ShouldBeNil)
			convey.So(i, convey.ShouldEqual, int32(math.MaxInt32))
		})

		convey.Convey("64 bits one past the int32 boundary", func() {
			v, err := parseNumberFrom("2147483648")
			convey.So(err, convey.ShouldBeNil)
			convey.So(v.(*Integer).width, convey.ShouldEqual, width64)

			i64, err := v.AsInt64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(i64, convey.ShouldEqual, int64(2147483648))

			_, err = v.AsInt()
			var oe *OverflowError
			convey.So(errors.As(err, &oe), convey.ShouldBeTrue)
			convey.So(oe.Bits, convey.ShouldEqual, 33)
			convey.So(err.Error(), convey.ShouldContainSubstring, "cannot fit a 33 bit integer into int32: 2147483648")
		})

		convey.Convey("arbitrary precision past the int64 boundary", func() {
			v, err := parseNumberFrom("9223372036854775808")
			convey.So(err, convey.ShouldBeNil)
			convey.So(v.(*Integer).width, convey.ShouldEqual, widthBig)

			b, err := v.AsBigInt()
			convey.So(err, convey.ShouldBeNil)
			convey.So(b.String(), convey.ShouldEqual, "9223372036854775808")

			_, err = v.AsInt64()
			var oe *OverflowError
			convey.So(errors.As(err, &oe), convey.ShouldBeTrue)
			convey.So(oe.Bits, convey.ShouldEqual, 65)
			convey.So(err.Error(), convey.ShouldContainSubstring, "cannot fit a 65 bit integer into int64")
		})

		convey.Convey("the int64 bounds themselves still fit 64 bits", func() {
			v, err := parseNumberFrom("-9223372036854775808")
			convey.So(err, convey.ShouldBeNil)
			convey.So(v.(*Integer).width, convey.ShouldEqual, width64)

			i64, err := v.AsInt64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(i64, convey.ShouldEqual, int64(math.MinInt64))
		})
	})
}

func TestBigIntegersDisabled(t *testing.T) {
	convey.Convey("with big integers off, a wide literal fails the parse", t, func() {
		_, err := parseNumberFrom("9223372036854775808", WithBigIntegers(false))

		var oe *OverflowError
		convey.So(errors.As(err, &oe), convey.ShouldBeTrue)
		convey.So(oe.Bits, convey.ShouldEqual, 65)
		convey.So(err.Error(), convey.ShouldContainSubstring, "cannot fit a 65 bit integer into int64")
	})
}

func TestUnderscoreSeparators(t *testing.T) {
	convey.Convey("underscores between digits are dropped", t, func() {
		cases := map[string]int64{
			"1_000":       1000,
			"1_000_000":   1000000,
			"1__000":      1000, // lenient: doubled separators read fine
			"0xDEAD_BEEF": 0xDEADBEEF,
		}
		for src, want := range cases {
			v, err := parseNumberFrom(src)
			convey.So(err, convey.ShouldBeNil)
			n, err := v.AsInt64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, want)
		}
	})
}

func TestRadixIntegers(t *testing.T) {
	convey.Convey("hex, octal and binary literals", t, func() {
		cases := map[string]int64{
			"0x10":   16,
			"0xff":   255,
			"0o755":  493,
			"0b1010": 10,
		}
		for src, want := range cases {
			v, err := parseNumberFrom(src)
			convey.So(err, convey.ShouldBeNil)
			n, err := v.AsInt64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, want)
		}
	})

	convey.Convey("a radix prefix needs digits after it", t, func() {
		_, err := parseNumberFrom("0x")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "expected digits after the 0x prefix")

		_, err = parseNumberFrom("0b2")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "expected digits after the 0b prefix")
	})

	convey.Convey("radix literals cannot carry a sign", t, func() {
		_, err := parseNumberFrom("+0x10")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "signs are not allowed for hex, octal and binary integers")
	})

	convey.Convey("radix literals cannot have a decimal point", t, func() {
		_, err := parseNumberFrom("0x1.5")

		var se *SyntaxError
		convey.So(errors.As(err, &se), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, "cannot have a decimal point")
		convey.So(se.Loc, convey.ShouldResemble, Location{Line: 1, Offset: 3})
	})
}

func TestFloatLiterals(t *testing.T) {
	convey.Convey("floats parse with fractions, exponents and signs", t, func() {
		cases := map[string]float64{
			"0.5":      0.5,
			"3.14159":  3.14159,
			"-0.25":    -0.25,
			"+1_0.2_5": 10.25,
			"1e5":      1e5,
			"1E5":      1e5,
			"2.5e-3":   0.0025,
			"1e+3":     1000,
		}
		for src, want := range cases {
			v, err := parseNumberFrom(src)
			convey.So(err, convey.ShouldBeNil)
			f, err := v.AsFloat64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(f, convey.ShouldEqual, want)
		}
	})

	convey.Convey("the non-finite keywords", t, func() {
		v, _ := parseNumberFrom("inf")
		f, _ := v.AsFloat64()
		convey.So(math.IsInf(f, 1), convey.ShouldBeTrue)

		v, _ = parseNumberFrom("-inf")
		f, _ = v.AsFloat64()
		convey.So(math.IsInf(f, -1), convey.ShouldBeTrue)

		// nan has no sign; both spellings mean the same thing
		for _, src := range []string{"nan", "-nan", "+nan"} {
			v, err := parseNumberFrom(src)
			convey.So(err, convey.ShouldBeNil)
			f, _ := v.AsFloat64()
			convey.So(math.IsNaN(f), convey.ShouldBeTrue)
		}
	})

	convey.Convey("a literal too large for a float64 saturates to inf", t, func() {
		v, err := parseNumberFrom("1e999")
		convey.So(err, convey.ShouldBeNil)
		f, _ := v.AsFloat64()
		convey.So(math.IsInf(f, 1), convey.ShouldBeTrue)
	})

	convey.Convey("a dangling fraction or exponent is an error", t, func() {
		_, err := parseNumberFrom("1.")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "expected digits after the decimal point")

		_, err = parseNumberFrom("1e")
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "expected digits in the exponent")
	})
}

func TestExactDecimals(t *testing.T) {
	convey.Convey("exact decimals keep every digit the literal had", t, func() {
		v, err := parseNumberFrom("1.00000000000000000001", WithExactDecimals(true))
		convey.So(err, convey.ShouldBeNil)

		d, err := v.AsBigDecimal()
		convey.So(err, convey.ShouldBeNil)
		convey.So(d.String(), convey.ShouldEqual, "1.00000000000000000001")

		// the float64 view is still available, rounded
		f, err := v.AsFloat64()
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, 1.0)
	})

	convey.Convey("without the option the same literal rounds to a float64", t, func() {
		v, err := parseNumberFrom("1.00000000000000000001")
		convey.So(err, convey.ShouldBeNil)

		f, err := v.AsFloat64()
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, 1.0)
	})

	convey.Convey("nan and inf stay floats even in exact mode", t, func() {
		v, err := parseNumberFrom("nan", WithExactDecimals(true))
		convey.So(err, convey.ShouldBeNil)
		f, _ := v.AsFloat64()
		convey.So(math.IsNaN(f), convey.ShouldBeTrue)

		_, err = v.AsBigDecimal()
		var oe *OverflowError
		convey.So(errors.As(err, &oe), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, "cannot represent nan as an exact decimal")
	})
}

func TestEffectiveBits(t *testing.T) {
	convey.Convey("effectiveBits counts the two's-complement width", t, func() {
		cases := map[int64]int{
			0:             1,
			1:             2,
			-1:            1,
			127:           8,
			128:           9,
			-128:          8,
			math.MaxInt32: 32,
			math.MinInt32: 32,
			2147483648:    33,
			math.MaxInt64: 64,
			math.MinInt64: 64,
		}
		for in, want := range cases {
			convey.So(effectiveBits(in), convey.ShouldEqual, want)
		}
	})
}

func TestFitsExactlyInFloat64(t *testing.T) {
	convey.Convey("exact float64 conversion is decided by value, not width", t, func() {
		convey.So(fitsExactlyInFloat64(1), convey.ShouldBeTrue)
		convey.So(fitsExactlyInFloat64(1<<52), convey.ShouldBeTrue)
		convey.So(fitsExactlyInFloat64(1<<53), convey.ShouldBeTrue)
		convey.So(fitsExactlyInFloat64(1<<53+1), convey.ShouldBeFalse)
		convey.So(fitsExactlyInFloat64(1<<53+2), convey.ShouldBeTrue)
		convey.So(fitsExactlyInFloat64(math.MaxInt64), convey.ShouldBeFalse)
		convey.So(fitsExactlyInFloat64(math.MinInt64), convey.ShouldBeTrue)
	})

	convey.Convey("the integer accessor mirrors the same rule", t, func() {
		v, err := parseNumberFrom("9007199254740993") // 2^53 + 1
		convey.So(err, convey.ShouldBeNil)

		_, err = v.AsFloat64()
		var oe *OverflowError
		convey.So(errors.As(err, &oe), convey.ShouldBeTrue)
		convey.So(oe.Bits, convey.ShouldEqual, 55)

		v, err = parseNumberFrom("9007199254740994") // 2^53 + 2
		convey.So(err, convey.ShouldBeNil)
		f, err := v.AsFloat64()
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, 9007199254740994.0)
	})
}
