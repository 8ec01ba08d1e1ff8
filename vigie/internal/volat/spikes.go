// CLAUDE:SUMMARY Spike detection: outlier pairs ranked by their single-pair composite score.
package volat

import "sort"

// Spike is one candidate outlier pair. Its score is the composite scorer run
// on exactly that one delta — there is no separate spike formula, so a spike
// score always equals the profile score of the same two observations.
type Spike struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	FromAt int64   `json:"from_at"`
	ToAt   int64   `json:"to_at"`
	Score  float64 `json:"score"`
	Pair   Profile `json:"pair"`
}

// Spikes ranks deltas by pair score descending, then later timestamp
// descending, then later observation id descending (stable and always
// available). Returns min(limit, len(deltas)) candidates; the result is
// empty iff there are zero deltas. limit <= 0 returns every candidate.
func Spikes(deltas []Delta, limit int) []Spike {
	out := make([]Spike, 0, len(deltas))
	for _, d := range deltas {
		pair := ComputeProfile([]Delta{d})
		out = append(out, Spike{
			FromID: d.FromID,
			ToID:   d.ToID,
			FromAt: d.FromAt,
			ToAt:   d.ToAt,
			Score:  pair.Score,
			Pair:   pair,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].ToAt != out[j].ToAt {
			return out[i].ToAt > out[j].ToAt
		}
		return out[i].ToID > out[j].ToID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
