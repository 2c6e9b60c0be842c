package toml

import (
	"errors"
	"math"
	"math/big"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/smartystreets/goconvey/convey"
)

func TestKindNames(t *testing.T) {
	convey.Convey("kinds spell themselves the way error messages do", t, func() {
		convey.So(KindTable.String(), convey.ShouldEqual, "table")
		convey.So(KindArray.String(), convey.ShouldEqual, "array")
		convey.So(KindString.String(), convey.ShouldEqual, "string")
		convey.So(KindInteger.String(), convey.ShouldEqual, "integer")
		convey.So(KindDecimal.String(), convey.ShouldEqual, "decimal number")
		convey.So(KindBoolean.String(), convey.ShouldEqual, "boolean")
		convey.So(KindDateTime.String(), convey.ShouldEqual, "date-time")
	})
}

func TestAccessorMatrix(t *testing.T) {
	convey.Convey("accessors succeed for the value's kind and refuse the rest", t, func() {
		convey.Convey("string", func() {
			v := NewString("hi")
			convey.So(v.Kind(), convey.ShouldEqual, KindString)

			s, err := v.AsString()
			convey.So(err, convey.ShouldBeNil)
			convey.So(s, convey.ShouldEqual, "hi")

			_, err = v.AsInt64()
			var te *UnexpectedTypeError
			convey.So(errors.As(err, &te), convey.ShouldBeTrue)
			convey.So(te.Expected, convey.ShouldEqual, "integer")
			convey.So(te.Actual, convey.ShouldEqual, KindString)
			convey.So(err.Error(), convey.ShouldEqual, "expected integer, got string")
		})

		convey.Convey("boolean", func() {
			v := NewBool(true)
			b, err := v.AsBool()
			convey.So(err, convey.ShouldBeNil)
			convey.So(b, convey.ShouldBeTrue)

			_, err = v.AsString()
			convey.So(err.Error(), convey.ShouldEqual, "expected string, got boolean")
		})

		convey.Convey("integer accepts every numeric accessor", func() {
			v := NewInt(7)

			i, err := v.AsInt()
			convey.So(err, convey.ShouldBeNil)
			convey.So(i, convey.ShouldEqual, int32(7))

			i64, err := v.AsInt64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(i64, convey.ShouldEqual, int64(7))

			b, err := v.AsBigInt()
			convey.So(err, convey.ShouldBeNil)
			convey.So(b.Int64(), convey.ShouldEqual, 7)

			f, err := v.AsFloat64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(f, convey.ShouldEqual, 7.0)

			d, err := v.AsBigDecimal()
			convey.So(err, convey.ShouldBeNil)
			convey.So(d.String(), convey.ShouldEqual, "7")

			_, err = v.AsTable()
			convey.So(err.Error(), convey.ShouldEqual, "expected table, got integer")
		})

		convey.Convey("decimal number", func() {
			v := NewFloat(2.5)

			f, err := v.AsFloat64()
			convey.So(err, convey.ShouldBeNil)
			convey.So(f, convey.ShouldEqual, 2.5)

			d, err := v.AsBigDecimal()
			convey.So(err, convey.ShouldBeNil)
			convey.So(d.String(), convey.ShouldEqual, "2.5")

			_, err = v.AsInt64()
			convey.So(err.Error(), convey.ShouldEqual, "expected integer, got decimal number")
		})

		convey.Convey("array", func() {
			v := NewArray(NewInt(1), NewString("x"))

			arr, err := v.AsArray()
			convey.So(err, convey.ShouldBeNil)
			convey.So(arr.Len(), convey.ShouldEqual, 2)
			convey.So(arr.Index(0).Kind(), convey.ShouldEqual, KindInteger)

			_, err = v.AsDateTime()
			convey.So(err.Error(), convey.ShouldEqual, "expected date-time, got array")
		})
	})
}

func TestIntegerConstructors(t *testing.T) {
	convey.Convey("constructors narrow to the smallest width", t, func() {
		convey.So(NewInt64(5).width, convey.ShouldEqual, width32)
		convey.So(NewInt64(1<<40).width, convey.ShouldEqual, width64)
		convey.So(NewBigInt(big.NewInt(5)).width, convey.ShouldEqual, width32)

		huge := new(big.Int).Lsh(big.NewInt(1), 64)
		convey.So(NewBigInt(huge).width, convey.ShouldEqual, widthBig)
		convey.So(NewBigInt(huge).String(), convey.ShouldEqual, "18446744073709551616")
	})

	convey.Convey("a wide integer hands out private copies", t, func() {
		huge := new(big.Int).Lsh(big.NewInt(1), 64)
		v := NewBigInt(huge)

		first, err := v.AsBigInt()
		convey.So(err, convey.ShouldBeNil)
		first.Add(first, big.NewInt(1))

		second, err := v.AsBigInt()
		convey.So(err, convey.ShouldBeNil)
		convey.So(second.String(), convey.ShouldEqual, "18446744073709551616")
	})

	convey.Convey("the construction-time big.Int cannot leak in either", t, func() {
		seed := big.NewInt(1)
		seed.Lsh(seed, 64)
		v := NewBigInt(seed)
		seed.SetInt64(0)

		b, err := v.AsBigInt()
		convey.So(err, convey.ShouldBeNil)
		convey.So(b.String(), convey.ShouldEqual, "18446744073709551616")
	})
}

func TestValueStrings(t *testing.T) {
	convey.Convey("String renders the literal the parser accepts back", t, func() {
		convey.So(NewBool(false).String(), convey.ShouldEqual, "false")
		convey.So(NewInt(-5).String(), convey.ShouldEqual, "-5")
		convey.So(NewInt64(math.MaxInt64).String(), convey.ShouldEqual, "9223372036854775807")
		convey.So(NewFloat(2.5).String(), convey.ShouldEqual, "2.5")
		convey.So(NewFloat(5).String(), convey.ShouldEqual, "5.0")
		convey.So(NewFloat(1e21).String(), convey.ShouldEqual, "1e+21")
		convey.So(NewFloat(math.NaN()).String(), convey.ShouldEqual, "nan")
		convey.So(NewFloat(math.Inf(1)).String(), convey.ShouldEqual, "inf")
		convey.So(NewFloat(math.Inf(-1)).String(), convey.ShouldEqual, "-inf")
		// exact decimals keep the trailing zeros the literal had
		convey.So(NewDecimal(decimal.RequireFromString("0.100")).String(), convey.ShouldEqual, "0.100")
	})

	convey.Convey("a string value prints raw, its JSON form is quoted", t, func() {
		v := NewString("two\nlines")
		convey.So(v.String(), convey.ShouldEqual, "two\nlines")
		convey.So(v.JSON(), convey.ShouldEqual, `"two\nlines"`)
	})
}

func TestJSONRendering(t *testing.T) {
	convey.Convey("strings escape for JSON", t, func() {
		convey.So(NewString("a\tb\n\"c\"").JSON(), convey.ShouldEqual, `"a\tb\n\"c\""`)
		convey.So(NewString(`back\slash`).JSON(), convey.ShouldEqual, `"back\\slash"`)
		convey.So(NewString("héllo").JSON(), convey.ShouldEqual, `"h\u00e9llo"`)
		convey.So(NewString("").JSON(), convey.ShouldEqual, `""`)
		// astral code points split into a surrogate pair
		convey.So(NewString("\U0001F600").JSON(), convey.ShouldEqual, `"\ud83d\ude00"`)
	})

	convey.Convey("composite values nest with sorted table keys", t, func() {
		b := NewTableBuilder()
		convey.So(b.PutPath("b", NewInt(1)), convey.ShouldBeNil)
		convey.So(b.PutPath("a", NewInt(2)), convey.ShouldBeNil)
		convey.So(b.PutPath("c.d", NewArray(NewInt(3), NewBool(true))), convey.ShouldBeNil)
		tbl := b.Build()

		convey.So(tbl.JSON(), convey.ShouldEqual, `{"a":2,"b":1,"c":{"d":[3,true]}}`)
		convey.So(tbl.String(), convey.ShouldEqual, tbl.JSON())
	})

	convey.Convey("the lenient form lets non-finite numbers through", t, func() {
		convey.So(NewFloat(math.Inf(1)).JSON(), convey.ShouldEqual, "inf")
		convey.So(NewArray(NewFloat(math.NaN())).JSON(), convey.ShouldEqual, "[nan]")
	})

	convey.Convey("MarshalJSON refuses non-finite numbers", t, func() {
		_, err := NewFloat(math.Inf(1)).MarshalJSON()
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldEqual, "toml: cannot encode inf as JSON")

		// the failure propagates out of containers
		b := NewTableBuilder()
		convey.So(b.PutPath("f", NewFloat(math.NaN())), convey.ShouldBeNil)
		_, err = b.Build().MarshalJSON()
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("MarshalJSON output is valid for the json package", t, func() {
		b := NewTableBuilder()
		convey.So(b.PutPath("name", NewString("αβ")), convey.ShouldBeNil)
		convey.So(b.PutPath("n", NewInt(3)), convey.ShouldBeNil)

		out, err := json.Marshal(b.Build())
		convey.So(err, convey.ShouldBeNil)

		var round map[string]any
		convey.So(json.Unmarshal(out, &round), convey.ShouldBeNil)
		convey.So(round["name"], convey.ShouldEqual, "αβ")
		convey.So(round["n"], convey.ShouldEqual, 3.0)
	})
}

func TestUntyped(t *testing.T) {
	convey.Convey("Untyped lowers values to plain Go types", t, func() {
		convey.So(NewString("x").Untyped(), convey.ShouldEqual, "x")
		convey.So(NewBool(true).Untyped(), convey.ShouldEqual, true)
		convey.So(NewInt(5).Untyped(), convey.ShouldEqual, int64(5))
		convey.So(NewFloat(2.5).Untyped(), convey.ShouldEqual, 2.5)

		huge := new(big.Int).Lsh(big.NewInt(1), 64)
		convey.So(NewBigInt(huge).Untyped(), convey.ShouldEqual, json.Number("18446744073709551616"))
		convey.So(NewDecimal(decimal.RequireFromString("0.1")).Untyped(),
			convey.ShouldEqual, json.Number("0.1"))

		// non-finite floats fall back to their literal spelling
		convey.So(NewFloat(math.Inf(-1)).Untyped(), convey.ShouldEqual, "-inf")
	})

	convey.Convey("containers lower recursively", t, func() {
		b := NewTableBuilder()
		convey.So(b.PutPath("a", NewInt(1)), convey.ShouldBeNil)
		convey.So(b.PutPath("nested.ok", NewBool(true)), convey.ShouldBeNil)
		tbl := b.Build()

		convey.So(tbl.Untyped(), convey.ShouldResemble, map[string]any{
			"a": int64(1),
			"nested": map[string]any{
				"ok": true,
			},
		})

		arr := NewArray(NewInt(1), NewString("two"))
		convey.So(arr.Untyped(), convey.ShouldResemble, []any{int64(1), "two"})
	})
}
