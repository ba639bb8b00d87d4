package riotid_test

import (
	"testing"

	"github.com/okian/smurfwatch/internal/domain/riotid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given raw identifiers", t, func() {
		Convey("A plain Nick#Tag is split", func() {
			id, ok := riotid.Parse("Nick#Tag")
			So(ok, ShouldBeTrue)
			So(id, ShouldResemble, riotid.ID{Nick: "Nick", Tag: "Tag"})
			So(id.String(), ShouldEqual, "Nick#Tag")
		})

		Convey("Whitespace around both parts is trimmed", func() {
			id, ok := riotid.Parse(" Nick # Tag ")
			So(ok, ShouldBeTrue)
			So(id, ShouldResemble, riotid.ID{Nick: "Nick", Tag: "Tag"})
		})

		Convey("Only the first separator splits", func() {
			id, ok := riotid.Parse("Nick#Ta#g")
			So(ok, ShouldBeTrue)
			So(id.Nick, ShouldEqual, "Nick")
			So(id.Tag, ShouldEqual, "Ta#g")
		})

		Convey("Inner spaces of the nick are kept", func() {
			id, ok := riotid.Parse("Big Nick#BR1")
			So(ok, ShouldBeTrue)
			So(id.Nick, ShouldEqual, "Big Nick")
		})

		Convey("Invalid inputs are rejected", func() {
			for _, raw := range []string{"NoHash", "", "   ", "#Tag", "Nick#", " # ", "#"} {
				id, ok := riotid.Parse(raw)
				So(ok, ShouldBeFalse)
				So(id, ShouldResemble, riotid.ID{})
			}
		})
	})
}
