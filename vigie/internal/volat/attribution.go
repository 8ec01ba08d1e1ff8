// CLAUDE:SUMMARY Per-URL contribution attribution over a delta sequence.
package volat

import "sort"

// URLContribution aggregates one URL's movement across a delta sequence.
// Appearances counts deltas where the URL held a rank on at least one side,
// so entries and exits count; shifts only accumulate over deltas where the
// URL was present on both sides.
type URLContribution struct {
	URL              string  `json:"url"`
	Appearances      int     `json:"appearances"`
	TotalAbsShift    int     `json:"total_abs_shift"`
	PairsBothPresent int     `json:"pairs_both_present"`
	AverageShift     float64 `json:"average_shift"`
	FirstSeen        int64   `json:"first_seen"`
	LastSeen         int64   `json:"last_seen"`
}

// Attribution computes per-URL contributions, sorted by total absolute shift
// descending then URL ascending (URLs are unique per result set, so the sort
// is total). limit truncates after sorting; limit <= 0 returns everything.
func Attribution(deltas []Delta, limit int) []URLContribution {
	agg := map[string]*URLContribution{}

	for _, d := range deltas {
		for url, rp := range d.URLs {
			c := agg[url]
			if c == nil {
				c = &URLContribution{URL: url}
				agg[url] = c
			}
			c.Appearances++
			if rp.BothPresent() {
				c.TotalAbsShift += rp.AbsShift()
				c.PairsBothPresent++
			}
			if rp.From != nil {
				c.seen(d.FromAt)
			}
			if rp.To != nil {
				c.seen(d.ToAt)
			}
		}
	}

	out := make([]URLContribution, 0, len(agg))
	for _, c := range agg {
		if c.PairsBothPresent > 0 {
			c.AverageShift = Round2(float64(c.TotalAbsShift) / float64(c.PairsBothPresent))
		}
		out = append(out, *c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAbsShift != out[j].TotalAbsShift {
			return out[i].TotalAbsShift > out[j].TotalAbsShift
		}
		return out[i].URL < out[j].URL
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *URLContribution) seen(at int64) {
	if c.FirstSeen == 0 || at < c.FirstSeen {
		c.FirstSeen = at
	}
	if at > c.LastSeen {
		c.LastSeen = at
	}
}
