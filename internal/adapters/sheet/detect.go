package sheet

import (
	"strings"
)

// minHashRatio is the share of non-empty cells that must contain '#' for a
// column to be picked by content.
const minHashRatio = 0.4

var (
	headerSubjects = []string{"valorant", "riot"}
	headerObjects  = []string{"nick", "account", "conta"}
)

// DetectColumn returns the index of the Riot ID column. preferred, when set,
// must match a header exactly (surrounding whitespace ignored). Otherwise the
// first header that names a valorant/riot nick or account wins, and as a last
// resort the column whose non-empty cells most often contain '#'.
func DetectColumn(t Table, preferred string) (int, error) {
	if preferred != "" {
		if i := indexOf(t.Header, preferred); i >= 0 {
			return i, nil
		}
	}

	for i, h := range t.Header {
		l := strings.ToLower(h)
		if containsAny(l, headerSubjects) && containsAny(l, headerObjects) {
			return i, nil
		}
	}

	best, bestScore := -1, 0.0
	for i := range t.Header {
		if score := hashRatio(t, i); score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore >= minHashRatio {
		return best, nil
	}
	return -1, ErrNoColumn
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	name = strings.TrimSpace(name)
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hashRatio(t Table, col int) float64 {
	var filled, hashed int
	for i := range t.Rows {
		v := t.Cell(i, col)
		if v == "" {
			continue
		}
		filled++
		if strings.Contains(v, "#") {
			hashed++
		}
	}
	if filled == 0 {
		return 0
	}
	return float64(hashed) / float64(filled)
}
