package history

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// matchThreshold is the minimum similarity for a non-substring hit.
const matchThreshold = 0.3

// Rank filters and orders entries by how closely their body matches query.
// Substring hits rank above pure edit-distance matches; an empty query
// returns the input order unchanged.
func Rank(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Entry(nil), entries...)
	}

	type scored struct {
		entry Entry
		score float64
	}
	matched := make([]scored, 0, len(entries))
	for _, e := range entries {
		body := strings.ToLower(e.Body)
		score := similarity(body, q)
		if strings.Contains(body, q) {
			score += 1
		}
		if score < matchThreshold {
			continue
		}
		matched = append(matched, scored{entry: e, score: score})
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })

	out := make([]Entry, len(matched))
	for i, s := range matched {
		out[i] = s.entry
	}
	return out
}

func similarity(a, b string) float64 {
	n := max(len(a), len(b))
	if n == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}
