package query

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ---- Distance Constants
const (
	distanceExact    = 0
	distancePrefix   = 1
	distanceContains = 10
	distanceFuzzy    = 50
)

// Match is a ranked menu item.
type Match struct {
	Index    int // position in the original item list
	Label    string
	Distance int
}

// Rank filters items against query and orders them by distance, closest
// first. Items with the same distance keep their original order. An empty
// query matches every item at distance zero. A limit <= 0 means no limit.
func Rank(query string, items []string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))

	matches := make([]Match, 0, len(items))
	for i, item := range items {
		distance, ok := distance(q, item)
		if !ok {
			continue
		}

		matches = append(matches, Match{
			Index:    i,
			Label:    item,
			Distance: distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}

// Best returns the closest item to query, or false if nothing matches.
func Best(query string, items []string) (Match, bool) {
	matches := Rank(query, items, 1)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

func distance(q, item string) (int, bool) {
	if q == "" {
		return distanceExact, true
	}

	fuzzyDistance := fuzzy.RankMatchFold(q, item)
	if fuzzyDistance < 0 {
		return 0, false
	}

	lower := strings.ToLower(item)
	switch {
	case q == lower:
		return distanceExact, true
	case strings.HasPrefix(lower, q):
		return distancePrefix + fuzzyDistance, true
	case strings.Contains(lower, q):
		return distanceContains + fuzzyDistance, true
	default:
		return distanceFuzzy + fuzzyDistance, true
	}
}
