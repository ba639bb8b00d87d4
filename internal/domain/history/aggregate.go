package history

import (
	"github.com/okian/smurfwatch/internal/domain/profile"
)

// ActTier is the best tier seen in one act; Tier is nil when no segment of the
// act carried one.
type ActTier struct {
	Name string
	Tier *int
}

// Summary is the rank history derived from one profile.
type Summary struct {
	Acts []Act
	// PerAct follows Acts order, one entry per distinct act name.
	PerAct []ActTier
	// Peak is the maximum of PerAct, nil when every entry is nil.
	Peak *int
	// Current is the tier of the first competitive segment that has one.
	Current *int
}

// Analyze infers the last want acts of doc and aggregates over them.
func Analyze(doc profile.Document, want int) Summary {
	return Aggregate(doc, InferLastActs(doc, want))
}

// Aggregate computes per-act maxima, their overall peak and a current tier
// guess. Per segment the peak tier is preferred over the current one. Segments
// outside acts still count towards the current tier guess.
func Aggregate(doc profile.Document, acts []Act) Summary {
	s := Summary{Acts: acts}

	nameByKey := make(map[string]string, len(acts))
	slot := make(map[string]int, len(acts))
	for _, a := range acts {
		nameByKey[a.Key] = a.Name
		if _, ok := slot[a.Name]; !ok {
			slot[a.Name] = len(s.PerAct)
			s.PerAct = append(s.PerAct, ActTier{Name: a.Name})
		}
	}

	for _, seg := range doc.Segments() {
		if s.Current == nil && IsCompetitive(seg) {
			s.Current = currentGuess(seg)
		}

		act, ok := inferAct(seg.Metadata())
		if !ok {
			continue
		}
		name, ok := nameByKey[act.Key]
		if !ok {
			continue
		}

		tier := PeakTier(seg)
		if tier == nil {
			tier = CurrentTier(seg)
		}
		if tier == nil {
			continue
		}

		entry := &s.PerAct[slot[name]]
		if entry.Tier == nil || *tier > *entry.Tier {
			v := *tier
			entry.Tier = &v
		}
	}

	for _, e := range s.PerAct {
		if e.Tier == nil {
			continue
		}
		if s.Peak == nil || *e.Tier > *s.Peak {
			v := *e.Tier
			s.Peak = &v
		}
	}
	return s
}

// currentGuess takes the segment's current tier, falling back to its peak when
// the current tier is missing or zero (unranked).
func currentGuess(seg profile.Segment) *int {
	t := CurrentTier(seg)
	if t == nil || *t == 0 {
		return PeakTier(seg)
	}
	return t
}
