package history

import (
	"strings"

	"github.com/okian/smurfwatch/internal/domain/profile"
)

var (
	currentTierFields = []string{"rank", "tier", "competitiveTier", "rankTier"}
	peakTierFields    = []string{"peakRank", "peakTier", "peakCompetitiveTier"}
	modeNameFields    = []string{"name", "modeName", "queueName"}
)

// CurrentTier reads the segment's current tier, nil when absent or not an integer.
func CurrentTier(seg profile.Segment) *int {
	return tierOf(seg, currentTierFields)
}

// PeakTier reads the segment's peak tier, nil when absent or not an integer.
func PeakTier(seg profile.Segment) *int {
	return tierOf(seg, peakTierFields)
}

func tierOf(seg profile.Segment, fields []string) *int {
	v := seg.StatValue(fields...)
	if v.IsNull() {
		return nil
	}
	t, ok := v.Int()
	if !ok {
		return nil
	}
	return &t
}

// IsCompetitive reports whether the segment describes ranked play: its mode name
// contains "competitive" or equals "ranked".
func IsCompetitive(seg profile.Segment) bool {
	name, _ := seg.Metadata().Or(modeNameFields...).Text()
	name = strings.ToLower(name)
	if strings.Contains(name, "competitive") || name == "ranked" {
		return true
	}
	return seg.Type() == "playlist" && strings.Contains(name, "competitive")
}
