// Package rank maps numeric competitive tiers to display labels.
package rank

// Unknown is the label of an absent tier.
const Unknown = "Unknown"

// threshold pairs a minimum tier with its label.
type threshold struct {
	min   int
	label string
}

// Ascending by min. Pre-sorted for the linear scan in Label.
var thresholds = []threshold{
	{0, "Unranked"},
	{3, "Iron"},
	{6, "Bronze"},
	{9, "Silver"},
	{12, "Gold"},
	{15, "Platinum"},
	{18, "Diamond"},
	{21, "Ascendant"},
	{24, "Immortal"},
	{27, "Radiant"},
}

// Label returns the label of the highest threshold not above tier.
// A nil tier is Unknown. Negative tiers are not validated and fall back to the
// lowest label; tiers above the top threshold stay at the top label.
func Label(tier *int) string {
	if tier == nil {
		return Unknown
	}
	label := thresholds[0].label
	for _, t := range thresholds {
		if *tier >= t.min {
			label = t.label
		}
	}
	return label
}

// Labels returns every known label from lowest to highest.
func Labels() []string {
	out := make([]string, len(thresholds))
	for i, t := range thresholds {
		out[i] = t.label
	}
	return out
}
