// CLAUDE:SUMMARY Pairwise delta engine: per-URL rank shifts, feature churn, AI panel flips between adjacent observations.
// Package volat implements the volatility math: pairwise deltas between
// adjacent observations, the composite scorer, and the diagnostic and
// decision derivations built on them.
//
// Everything here is a pure function of its inputs. Nothing touches storage,
// the clock, or any other ambient state, so every derivation replays to a
// bit-identical result for the same stored observations.
package volat

import "github.com/hazyhaar/vigie/vigie/internal/serp"

// AI panel tri-states. parse_error is its own state: a present→parse_error
// transition counts as a flip.
const (
	AIPanelPresent    = "present"
	AIPanelAbsent     = "absent"
	AIPanelParseError = "parse_error"
)

// Sample is one observation after extraction, the unit the delta engine
// consumes. CapturedAt is unix milliseconds.
type Sample struct {
	ID         string
	CapturedAt int64
	Results    []serp.Result
	Features   []string
	AIPanel    string
}

// RankPair holds a URL's rank on each side of a delta. A nil rank means the
// URL was absent from that side.
type RankPair struct {
	From *int
	To   *int
}

// BothPresent reports whether the URL held a rank on both sides.
func (p RankPair) BothPresent() bool { return p.From != nil && p.To != nil }

// AbsShift returns |from-to| when both sides are present, else 0.
func (p RankPair) AbsShift() int {
	if !p.BothPresent() {
		return 0
	}
	d := *p.From - *p.To
	if d < 0 {
		return -d
	}
	return d
}

// Delta is the computed difference between two time-adjacent observations
// sharing the same tracked-query key. It is the atomic unit every diagnostic
// and score is built from.
type Delta struct {
	FromID string
	ToID   string
	FromAt int64
	ToAt   int64

	// URLs holds every URL with a non-null rank on at least one side.
	URLs map[string]RankPair

	FromFeatures []string
	ToFeatures   []string
	FeatureChurn int

	AIFlip bool
}

// NewDelta computes the delta for an ordered pair (a, b) with
// a.CapturedAt <= b.CapturedAt. Deterministic, side-effect free.
func NewDelta(a, b Sample) Delta {
	urls := make(map[string]RankPair, len(a.Results)+len(b.Results))
	for _, r := range a.Results {
		rank := r.Rank
		p := urls[r.URL]
		p.From = &rank
		urls[r.URL] = p
	}
	for _, r := range b.Results {
		rank := r.Rank
		p := urls[r.URL]
		p.To = &rank
		urls[r.URL] = p
	}

	return Delta{
		FromID:       a.ID,
		ToID:         b.ID,
		FromAt:       a.CapturedAt,
		ToAt:         b.CapturedAt,
		URLs:         urls,
		FromFeatures: a.Features,
		ToFeatures:   b.Features,
		FeatureChurn: symmetricDiff(a.Features, b.Features),
		AIFlip:       a.AIPanel != b.AIPanel,
	}
}

// Deltas derives the N-1 consecutive deltas of an ordered sample sequence.
func Deltas(samples []Sample) []Delta {
	if len(samples) < 2 {
		return nil
	}
	out := make([]Delta, 0, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		out = append(out, NewDelta(samples[i-1], samples[i]))
	}
	return out
}

// symmetricDiff counts labels present in exactly one of two sorted sets.
func symmetricDiff(a, b []string) int {
	i, j, n := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			i++
			n++
		default:
			j++
			n++
		}
	}
	return n + (len(a) - i) + (len(b) - j)
}
