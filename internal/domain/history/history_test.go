package history_test

import (
	"testing"

	"github.com/okian/smurfwatch/internal/domain/history"
	"github.com/okian/smurfwatch/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func mustDecode(body string) profile.Document {
	doc, err := profile.Decode([]byte(body))
	So(err, ShouldBeNil)
	return doc
}

func keys(acts []history.Act) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Key
	}
	return out
}

func TestInferActs(t *testing.T) {
	Convey("Given segments with season metadata", t, func() {
		Convey("When end times are out of order", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"seasonId":"c","seasonName":"Act C","endTime":300}},
				{"metadata":{"seasonId":"a","seasonName":"Act A","endTime":100}},
				{"metadata":{"seasonId":"b","seasonName":"Act B","endTime":200}}
			]}}`)

			Convey("Then acts are sorted by end time", func() {
				acts := history.InferActs(doc)
				So(keys(acts), ShouldResemble, []string{"a", "b", "c"})
				So(*acts[0].EndTime, ShouldEqual, int64(100))
				So(history.Names(acts), ShouldResemble, []string{"Act A", "Act B", "Act C"})
			})
		})

		Convey("When no segment carries an end time", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"seasonId":"z"}},
				{"metadata":{"seasonId":"x"}},
				{"metadata":{"seasonId":"y"}}
			]}}`)

			Convey("Then first-seen order is kept", func() {
				So(keys(history.InferActs(doc)), ShouldResemble, []string{"z", "x", "y"})
			})
		})

		Convey("When only some acts carry an end time", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"seasonId":"late","endTime":500}},
				{"metadata":{"seasonId":"unknown"}},
				{"metadata":{"seasonId":"early","endTime":100}}
			]}}`)

			Convey("Then missing end times sort as zero", func() {
				So(keys(history.InferActs(doc)), ShouldResemble, []string{"unknown", "early", "late"})
			})
		})

		Convey("When the same segment list appears twice", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"seasonId":"1"}},
				{"metadata":{"seasonId":"2"}},
				{"metadata":{"seasonId":"1"}},
				{"metadata":{"seasonId":"2"}}
			]}}`)

			Convey("Then no duplicate key survives", func() {
				So(history.InferActs(doc), ShouldHaveLength, 2)
			})
		})

		Convey("When a repeated key brings end times", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"seasonId":"s1"}},
				{"metadata":{"seasonId":"s1","endTime":111}},
				{"metadata":{"seasonId":"s1","endTime":999}}
			]}}`)

			Convey("Then the first non-null end time is kept", func() {
				acts := history.InferActs(doc)
				So(acts, ShouldHaveLength, 1)
				So(*acts[0].EndTime, ShouldEqual, int64(111))
			})
		})

		Convey("When metadata uses fallback fields", func() {
			doc := mustDecode(`{"data":{"segments":[
				{"metadata":{"actId":"e9a1","actName":"Episode 9 Act 1","endTimeMillis":"1700000000000"}},
				{"metadata":{"name":"Competitive"}},
				{"metadata":{"season":8,"endDateMillis":"soon"}},
				{"metadata":{"modeName":"Unrated"}},
				{"stats":{}}
			]}}`)

			Convey("Then keys, names and end times are inferred best-effort", func() {
				acts := history.InferActs(doc)
				So(acts, ShouldHaveLength, 3)

				byKey := map[string]history.Act{}
				for _, a := range acts {
					byKey[a.Key] = a
				}
				So(byKey["e9a1"].Name, ShouldEqual, "Episode 9 Act 1")
				So(*byKey["e9a1"].EndTime, ShouldEqual, int64(1700000000000))
				So(byKey["Competitive"].Name, ShouldEqual, "Competitive")
				So(byKey["8"].Name, ShouldEqual, "8")
				So(byKey["8"].EndTime, ShouldBeNil)
			})
		})
	})
}

func TestInferLastActs(t *testing.T) {
	Convey("Given five ordered acts", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"metadata":{"seasonId":"1","endTime":1}},
			{"metadata":{"seasonId":"2","endTime":2}},
			{"metadata":{"seasonId":"3","endTime":3}},
			{"metadata":{"seasonId":"4","endTime":4}},
			{"metadata":{"seasonId":"5","endTime":5}}
		]}}`)

		So(keys(history.InferLastActs(doc, 3)), ShouldResemble, []string{"3", "4", "5"})
		So(keys(history.InferLastActs(doc, 10)), ShouldResemble, []string{"1", "2", "3", "4", "5"})
		So(history.InferLastActs(doc, 0), ShouldHaveLength, 5)
		So(history.InferLastActs(profile.Document{}, 3), ShouldBeEmpty)
	})
}

func TestTierExtraction(t *testing.T) {
	Convey("Given segment stats", t, func() {
		Convey("Current tier falls back through its field names", func() {
			seg := profile.NewSegment(map[string]any{"stats": map[string]any{
				"competitiveTier": map[string]any{"value": 13.0},
			}})
			So(*history.CurrentTier(seg), ShouldEqual, 13)
			So(history.PeakTier(seg), ShouldBeNil)
		})

		Convey("Peak tier reads the peak fields only", func() {
			seg := profile.NewSegment(map[string]any{"stats": map[string]any{
				"rank":        map[string]any{"value": 8.0},
				"peakTier":    map[string]any{"value": "21"},
				"peakRank":    map[string]any{"value": nil},
				"unrelated":   map[string]any{"value": 99.0},
				"rankTierBad": map[string]any{"value": 1.0},
			}})
			So(*history.PeakTier(seg), ShouldEqual, 21)
			So(*history.CurrentTier(seg), ShouldEqual, 8)
		})

		Convey("A non-integer value is absent", func() {
			seg := profile.NewSegment(map[string]any{"stats": map[string]any{
				"rank": map[string]any{"value": "Gold 2"},
				"tier": map[string]any{"value": 12.0},
			}})
			So(history.CurrentTier(seg), ShouldBeNil)
		})
	})

	Convey("Given segment modes", t, func() {
		competitive := func(seg map[string]any) bool { return history.IsCompetitive(profile.NewSegment(seg)) }

		So(competitive(map[string]any{"metadata": map[string]any{"name": "Competitive"}}), ShouldBeTrue)
		So(competitive(map[string]any{"metadata": map[string]any{"modeName": "Premier Competitive"}}), ShouldBeTrue)
		So(competitive(map[string]any{"metadata": map[string]any{"queueName": "RANKED"}}), ShouldBeTrue)
		So(competitive(map[string]any{"type": "playlist", "metadata": map[string]any{"name": "competitive"}}), ShouldBeTrue)
		So(competitive(map[string]any{"metadata": map[string]any{"name": "Ranked Flex"}}), ShouldBeFalse)
		So(competitive(map[string]any{"type": "playlist", "metadata": map[string]any{"name": "Unrated"}}), ShouldBeFalse)
		So(competitive(map[string]any{"metadata": map[string]any{"name": "", "modeName": "competitive"}}), ShouldBeTrue)
		So(competitive(map[string]any{}), ShouldBeFalse)
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given a profile with four segments over three acts", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"type":"season","metadata":{"seasonId":"a1","seasonName":"E8A1","endTime":100},
			 "stats":{"rank":{"value":10},"peakRank":{"value":19}}},
			{"type":"season","metadata":{"seasonId":"a2","seasonName":"E8A2","endTime":200},
			 "stats":{"rank":{"value":16}}},
			{"type":"playlist","metadata":{"name":"Competitive","seasonId":"a3","seasonName":"E8A3","endTime":300},
			 "stats":{"rank":{"value":14}}},
			{"type":"season","metadata":{"seasonId":"a3","seasonName":"E8A3"},
			 "stats":{"rank":{"value":12},"peakRank":{"value":15}}}
		]}}`)

		Convey("When analyzing the last three acts", func() {
			s := history.Analyze(doc, 3)
			byName := map[string]*int{}
			for _, e := range s.PerAct {
				byName[e.Name] = e.Tier
			}

			Convey("Then the current tier comes from the competitive segment", func() {
				So(*s.Current, ShouldEqual, 14)
			})

			Convey("And per-act maxima prefer peak over current", func() {
				So(history.Names(s.Acts), ShouldResemble, []string{"E8A1", "E8A2", "E8A3"})
				So(*byName["E8A1"], ShouldEqual, 19)
				So(*byName["E8A2"], ShouldEqual, 16)
				So(*byName["E8A3"], ShouldEqual, 15)
				So(*s.Peak, ShouldEqual, 19)
			})
		})

		Convey("When only the last two acts are kept", func() {
			s := history.Analyze(doc, 2)

			Convey("Then older segments no longer feed the peak but the guess stays", func() {
				So(history.Names(s.Acts), ShouldResemble, []string{"E8A2", "E8A3"})
				So(*s.Peak, ShouldEqual, 16)
				So(*s.Current, ShouldEqual, 14)
			})
		})
	})

	Convey("Given a competitive segment outside the kept acts", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"metadata":{"name":"Competitive","seasonId":"old","endTime":1},"stats":{"rank":{"value":7}}},
			{"metadata":{"seasonId":"new","endTime":2},"stats":{"peakRank":{"value":22}}}
		]}}`)

		s := history.Analyze(doc, 1)
		So(history.Names(s.Acts), ShouldResemble, []string{"new"})
		So(*s.Peak, ShouldEqual, 22)
		So(*s.Current, ShouldEqual, 7)
	})

	Convey("Given several competitive segments", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"metadata":{"name":"Competitive"},"stats":{}},
			{"metadata":{"name":"Competitive"},"stats":{"rank":{"value":0},"peakRank":{"value":20}}},
			{"metadata":{"name":"Competitive"},"stats":{"rank":{"value":5}}}
		]}}`)

		Convey("Then the first one with a tier wins, an unranked current falls back to peak", func() {
			s := history.Aggregate(doc, nil)
			So(*s.Current, ShouldEqual, 20)
			So(s.PerAct, ShouldBeEmpty)
			So(s.Peak, ShouldBeNil)
		})
	})

	Convey("Given acts without any tier", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"metadata":{"seasonId":"x","seasonName":"Act X"}},
			{"metadata":{"seasonId":"y","seasonName":"Act Y"},"stats":{"rank":{"value":"n/a"}}}
		]}}`)

		s := history.Analyze(doc, 3)
		So(s.PerAct, ShouldHaveLength, 2)
		So(s.PerAct[0].Tier, ShouldBeNil)
		So(s.PerAct[1].Tier, ShouldBeNil)
		So(s.Peak, ShouldBeNil)
		So(s.Current, ShouldBeNil)
	})

	Convey("Given two acts sharing a display name", t, func() {
		doc := mustDecode(`{"data":{"segments":[
			{"metadata":{"seasonId":"k1","seasonName":"Act 1"},"stats":{"rank":{"value":9}}},
			{"metadata":{"seasonId":"k2","seasonName":"Act 1"},"stats":{"rank":{"value":11}}}
		]}}`)

		s := history.Analyze(doc, 3)
		So(s.Acts, ShouldHaveLength, 2)
		So(s.PerAct, ShouldHaveLength, 1)
		So(*s.PerAct[0].Tier, ShouldEqual, 11)
	})
}
