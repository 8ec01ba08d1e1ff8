// CLAUDE:SUMMARY Feature transition matrix: counts per (from, to) feature-set pair.
package volat

import (
	"sort"
	"strings"

	"github.com/hazyhaar/vigie/vigie/internal/serp"
)

// Transition is one bucket of the feature transition matrix. From and To are
// the sorted, comma-joined feature label lists of each side; both are empty
// strings for the "no features on either side" bucket.
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// Transitions classifies every delta into exactly one transition bucket and
// returns the buckets sorted by count descending, then from, then to (both
// ascending). The counts always sum to the number of deltas.
func Transitions(deltas []Delta) []Transition {
	type key struct{ from, to string }
	counts := map[key]int{}

	for _, d := range deltas {
		k := key{
			from: strings.Join(d.FromFeatures, ","),
			to:   strings.Join(d.ToFeatures, ","),
		}
		counts[k]++
	}

	out := make([]Transition, 0, len(counts))
	for k, n := range counts {
		out = append(out, Transition{From: k.from, To: k.to, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// TransitionKey renders a bucket as a single string using the reserved
// delimiter. Label normalization guarantees the delimiter never occurs
// inside a label, so the key parses back unambiguously.
func (t Transition) TransitionKey() string {
	return t.From + serp.TransitionDelimiter + t.To
}
