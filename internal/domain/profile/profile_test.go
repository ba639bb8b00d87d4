package profile_test

import (
	"errors"
	"testing"

	"github.com/okian/smurfwatch/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("Given a profile body", t, func() {
		Convey("When it holds data.segments", func() {
			doc, err := profile.Decode([]byte(`{"data":{"segments":[
				{"type":"Playlist","metadata":{"name":"Competitive","seasonId":7},"stats":{"rank":{"value":14}}},
				{"metadata":"broken"}
			]}}`))

			Convey("Then segments are exposed in order", func() {
				So(err, ShouldBeNil)
				segs := doc.Segments()
				So(segs, ShouldHaveLength, 2)
				So(segs[0].Type(), ShouldEqual, "playlist")
				So(segs[0].Metadata().Get("seasonId").String(), ShouldEqual, "7")
				tier, ok := segs[0].StatValue("rank").Int()
				So(ok, ShouldBeTrue)
				So(tier, ShouldEqual, 14)
				So(segs[1].Metadata().IsNull(), ShouldBeTrue)
			})
		})

		Convey("When the segments path is missing or malformed", func() {
			for _, body := range []string{`{}`, `{"data":null}`, `{"data":{"segments":{}}}`, `[]`, `"text"`} {
				doc, err := profile.Decode([]byte(body))
				So(err, ShouldBeNil)
				So(doc.Segments(), ShouldBeEmpty)
			}
		})

		Convey("When the body is not JSON", func() {
			_, err := profile.Decode([]byte(`<html>oops</html>`))
			So(err, ShouldNotBeNil)
		})

		Convey("When the body carries trailing data", func() {
			_, err := profile.Decode([]byte(`{"data":{}} {"again":1}`))
			So(errors.Is(err, profile.ErrTrailingData), ShouldBeTrue)
		})
	})
}

func TestNode(t *testing.T) {
	Convey("Given decoded nodes", t, func() {
		doc, err := profile.Decode([]byte(`{
			"zero": 0, "empty": "", "name": "Act 2", "num": "15", "float": 14.9,
			"bad": "14.5", "flag": true, "nothing": null, "obj": {}, "list": [1]
		}`))
		So(err, ShouldBeNil)
		root := doc.Root()

		Convey("Truthiness follows the dynamic rules", func() {
			So(root.Get("zero").Truthy(), ShouldBeFalse)
			So(root.Get("empty").Truthy(), ShouldBeFalse)
			So(root.Get("nothing").Truthy(), ShouldBeFalse)
			So(root.Get("obj").Truthy(), ShouldBeFalse)
			So(root.Get("missing").Truthy(), ShouldBeFalse)
			So(root.Get("name").Truthy(), ShouldBeTrue)
			So(root.Get("list").Truthy(), ShouldBeTrue)
		})

		Convey("Or picks the first truthy key and otherwise the last value", func() {
			So(root.Or("zero", "empty", "name").String(), ShouldEqual, "Act 2")
			last := root.Or("name_missing", "zero")
			So(last.IsNull(), ShouldBeFalse)
			So(last.String(), ShouldEqual, "0")
			So(root.Or("zero", "missing").IsNull(), ShouldBeTrue)
		})

		Convey("Int coerces numbers, integer strings and booleans", func() {
			v, ok := root.Get("num").Int()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 15)

			v, ok = root.Get("float").Int()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 14)

			v, ok = root.Get("flag").Int()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1)

			_, ok = root.Get("bad").Int()
			So(ok, ShouldBeFalse)
			_, ok = root.Get("obj").Int()
			So(ok, ShouldBeFalse)
			_, ok = root.Get("nothing").Int()
			So(ok, ShouldBeFalse)
		})

		Convey("Lookups through non-objects are null", func() {
			So(root.Get("name").Get("deeper").IsNull(), ShouldBeTrue)
			So(root.Get("list").Get("x").IsNull(), ShouldBeTrue)
			So(root.Get("name").List(), ShouldBeNil)
		})
	})
}

func TestStatValue(t *testing.T) {
	Convey("Given a segment with several stat fields", t, func() {
		seg := profile.NewSegment(map[string]any{
			"stats": map[string]any{
				"rank":  map[string]any{"value": nil},
				"tier":  map[string]any{"value": "Gold"},
				"other": map[string]any{"value": 3.0},
			},
		})

		Convey("A present key with a null value is skipped", func() {
			v := seg.StatValue("rank", "tier")
			So(v.String(), ShouldEqual, "Gold")
		})

		Convey("The first usable key wins even when it does not coerce", func() {
			_, ok := seg.StatValue("tier", "other").Int()
			So(ok, ShouldBeFalse)
		})

		Convey("No matching key yields null", func() {
			So(seg.StatValue("peakRank").IsNull(), ShouldBeTrue)
		})
	})
}
