package toml

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestKeyConstruction(t *testing.T) {
	convey.Convey("KeyOf keeps the parts it was given", t, func() {
		k := KeyOf("server", "ports", "http")
		convey.So(k.Len(), convey.ShouldEqual, 3)
		convey.So(k.First(), convey.ShouldEqual, "server")
		convey.So(k.Part(1), convey.ShouldEqual, "ports")
		convey.So(k.Last(), convey.ShouldEqual, "http")
		convey.So(k.Parts(), convey.ShouldResemble, []string{"server", "ports", "http"})

		// a dot inside a part stays one part
		convey.So(KeyOf("a.b").Len(), convey.ShouldEqual, 1)
	})

	convey.Convey("a key cannot be empty", t, func() {
		convey.So(func() { newKey(nil, nil) }, convey.ShouldPanic)
	})
}

func TestParseSimpleKey(t *testing.T) {
	convey.Convey("dots split, bare segments pass", t, func() {
		k, err := ParseSimpleKey("server.ports.http")
		convey.So(err, convey.ShouldBeNil)
		convey.So(k.Parts(), convey.ShouldResemble, []string{"server", "ports", "http"})

		k, err = ParseSimpleKey("MiXed_09-ok")
		convey.So(err, convey.ShouldBeNil)
		convey.So(k.Len(), convey.ShouldEqual, 1)
	})

	convey.Convey("empty or non-bare segments are refused", t, func() {
		for _, src := range []string{"", "a..b", ".a", "a.", "with space", `has"quote`} {
			_, err := ParseSimpleKey(src)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "is not a bare identifier")
		}
	})
}

func TestKeySliceAndConcat(t *testing.T) {
	convey.Convey("Slice takes a sub-key, Concat joins two", t, func() {
		k := KeyOf("a", "b", "c")

		tail := k.Slice(1, 3)
		convey.So(tail.Parts(), convey.ShouldResemble, []string{"b", "c"})
		convey.So(func() { k.Slice(0, 0) }, convey.ShouldPanic)

		joined := KeyOf("root").Concat(k)
		convey.So(joined.String(), convey.ShouldEqual, "root.a.b.c")
	})
}

func TestKeyEqual(t *testing.T) {
	convey.Convey("equality is over parts, not locations", t, func() {
		a := KeyOf("a", "b")
		convey.So(a.Equal(KeyOf("a", "b")), convey.ShouldBeTrue)
		convey.So(a.Equal(a.WithLocation(Location{Line: 3, Offset: 1})), convey.ShouldBeTrue)
		convey.So(a.Equal(KeyOf("a")), convey.ShouldBeFalse)
		convey.So(a.Equal(KeyOf("a", "c")), convey.ShouldBeFalse)
	})
}

func TestKeyLocation(t *testing.T) {
	convey.Convey("locations attach by copy", t, func() {
		k := KeyOf("a")
		_, ok := k.Location()
		convey.So(ok, convey.ShouldBeFalse)

		at := k.WithLocation(Location{Line: 2, Offset: 4})
		loc, ok := at.Location()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(loc, convey.ShouldResemble, Location{Line: 2, Offset: 4})

		// the original key is untouched
		_, ok = k.Location()
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestKeyString(t *testing.T) {
	convey.Convey("String re-quotes parts that are not bare", t, func() {
		convey.So(KeyOf("a", "b").String(), convey.ShouldEqual, "a.b")
		convey.So(KeyOf("a", "b.c").String(), convey.ShouldEqual, `a."b.c"`)
		convey.So(KeyOf("with space").String(), convey.ShouldEqual, `"with space"`)
		convey.So(KeyOf("").String(), convey.ShouldEqual, `""`)
	})
}
