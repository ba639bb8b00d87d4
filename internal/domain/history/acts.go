// Package history reconstructs a player's per-act rank history from a
// profile document.
package history

import (
	"slices"

	"github.com/okian/smurfwatch/internal/domain/profile"
)

// DefaultWant is the number of trailing acts examined by default.
const DefaultWant = 3

// Field names tried, in order, on segment metadata. Changing the order changes
// which value wins when several are present.
var (
	actKeyFields  = []string{"seasonId", "season", "actId", "act"}
	actNameFields = []string{"seasonName", "seasonDisplayName", "actName", "name"}
	actEndFields  = []string{"endTime", "endTimeMillis", "endDateMillis"}
)

// Act is a season slice inferred from segment metadata.
type Act struct {
	Key  string
	Name string
	// EndTime is epoch milliseconds, nil when no segment carried a usable value.
	EndTime *int64
}

// inferAct derives the act a segment belongs to. ok is false when metadata
// offers neither a key nor a name.
func inferAct(meta profile.Node) (Act, bool) {
	key := meta.Or(actKeyFields...)
	name := meta.Or(actNameFields...)

	var end *int64
	if n := meta.Or(actEndFields...); !n.IsNull() {
		if v, ok := n.Int(); ok {
			ms := int64(v)
			end = &ms
		}
	}

	if !key.Truthy() && name.Truthy() {
		key = name
	}
	if !key.Truthy() {
		return Act{}, false
	}

	act := Act{Key: key.String(), Name: key.String(), EndTime: end}
	if name.Truthy() {
		act.Name = name.String()
	}
	return act, true
}

// InferActs returns every distinct act of doc. Acts are unique by key; a
// repeated key can only fill in a missing end time, never replace one. When any
// act has an end time the result is sorted by it (missing counts as zero),
// otherwise first-seen order is kept.
func InferActs(doc profile.Document) []Act {
	var acts []Act
	index := make(map[string]int)

	for _, seg := range doc.Segments() {
		act, ok := inferAct(seg.Metadata())
		if !ok {
			continue
		}
		i, seen := index[act.Key]
		if !seen {
			index[act.Key] = len(acts)
			acts = append(acts, act)
			continue
		}
		if acts[i].EndTime == nil && act.EndTime != nil {
			acts[i].EndTime = act.EndTime
		}
	}

	if slices.ContainsFunc(acts, func(a Act) bool { return a.EndTime != nil }) {
		slices.SortStableFunc(acts, func(a, b Act) int {
			ea, eb := endOrZero(a), endOrZero(b)
			switch {
			case ea < eb:
				return -1
			case ea > eb:
				return 1
			default:
				return 0
			}
		})
	}
	return acts
}

// InferLastActs returns the last want acts of InferActs, oldest first. A
// non-positive want returns every act.
func InferLastActs(doc profile.Document, want int) []Act {
	acts := InferActs(doc)
	if want <= 0 || len(acts) <= want {
		return acts
	}
	return acts[len(acts)-want:]
}

func endOrZero(a Act) int64 {
	if a.EndTime == nil {
		return 0
	}
	return *a.EndTime
}

// Names returns the display names of acts in order.
func Names(acts []Act) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Name
	}
	return out
}
