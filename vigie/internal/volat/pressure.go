// CLAUDE:SUMMARY Competitive pressure: cross-query top-3 URL occupancy within a bounded window.
package volat

import "sort"

// URLPressure describes one URL's grip on top-3 slots across a tenant's
// tracked queries inside the (mandatory) window.
type URLPressure struct {
	URL             string  `json:"url"`
	QueriesImpacted int     `json:"queries_impacted"`
	Appearances     int     `json:"appearances"`
	PairsStayed     int     `json:"pairs_stayed"`
	AvgShift        float64 `json:"avg_shift"` // 0 when the URL never stayed top-3 across a pair
}

const topSlots = 3

// Pressure scans every observation of every query, counts top-3 slot
// occupancy per URL, and averages rank movement across consecutive pairs
// where the URL stayed top-3 on both sides. Sorted by queries impacted
// descending, appearances descending, URL ascending. limit truncates after
// sorting; limit <= 0 returns everything.
//
// This is the one derivation whose cost is queries × snapshots × results,
// which is why the caller must window the samples before calling.
func Pressure(byQuery map[string][]Sample, limit int) []URLPressure {
	type agg struct {
		queries     map[string]bool
		appearances int
		pairsStayed int
		totalShift  int
	}
	urls := map[string]*agg{}

	// Sorted query ids keep accumulation order deterministic.
	queryIDs := make([]string, 0, len(byQuery))
	for id := range byQuery {
		queryIDs = append(queryIDs, id)
	}
	sort.Strings(queryIDs)

	for _, qid := range queryIDs {
		samples := byQuery[qid]
		tops := make([]map[string]int, len(samples))
		for i, s := range samples {
			tops[i] = topRanks(s)
			for url := range tops[i] {
				a := urls[url]
				if a == nil {
					a = &agg{queries: map[string]bool{}}
					urls[url] = a
				}
				a.queries[qid] = true
				a.appearances++
			}
		}
		for i := 1; i < len(tops); i++ {
			for url, prev := range tops[i-1] {
				cur, ok := tops[i][url]
				if !ok {
					continue
				}
				shift := prev - cur
				if shift < 0 {
					shift = -shift
				}
				a := urls[url]
				a.pairsStayed++
				a.totalShift += shift
			}
		}
	}

	out := make([]URLPressure, 0, len(urls))
	for url, a := range urls {
		p := URLPressure{
			URL:             url,
			QueriesImpacted: len(a.queries),
			Appearances:     a.appearances,
			PairsStayed:     a.pairsStayed,
		}
		if a.pairsStayed > 0 {
			p.AvgShift = Round2(float64(a.totalShift) / float64(a.pairsStayed))
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].QueriesImpacted != out[j].QueriesImpacted {
			return out[i].QueriesImpacted > out[j].QueriesImpacted
		}
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		return out[i].URL < out[j].URL
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// topRanks returns the URLs holding the first three rank slots of a sample.
// Results are already ordered by rank with duplicates resolved, so the first
// three entries are the top-3.
func topRanks(s Sample) map[string]int {
	top := map[string]int{}
	for i, r := range s.Results {
		if i >= topSlots {
			break
		}
		top[r.URL] = r.Rank
	}
	return top
}
