// CLAUDE:SUMMARY Project risk index: tenant-wide mean score, top-3 queries, concentration ratio.
package volat

import "sort"

// QueryScore pairs a tracked query with its window profile.
type QueryScore struct {
	QueryID   string  `json:"query_id"`
	QueryText string  `json:"query_text"`
	Profile   Profile `json:"profile"`
}

// RiskIndex is the tenant-wide risk concentration view.
type RiskIndex struct {
	QueryCount  int      `json:"query_count"`  // active queries considered
	ScoredCount int      `json:"scored_count"` // queries with at least one delta
	// MeanScore averages only queries with at least one delta; null when no
	// query has any.
	MeanScore *float64 `json:"mean_score"`
	// Top holds the top 3 queries by score (ties: query text asc, id asc).
	Top []QueryScore `json:"top"`
	// ConcentrationRatio is sum(top-3 scores) / sum(all scores); null — never
	// 0 or 1 — when the denominator is zero, since zero-by-zero carries no
	// concentration signal.
	ConcentrationRatio *float64 `json:"concentration_ratio"`
}

// Risk folds per-query scores into the project risk index.
func Risk(scores []QueryScore) RiskIndex {
	idx := RiskIndex{QueryCount: len(scores)}

	sum, scoredSum := 0.0, 0.0
	for _, qs := range scores {
		sum += qs.Profile.Score
		if qs.Profile.SampleSize > 0 {
			idx.ScoredCount++
			scoredSum += qs.Profile.Score
		}
	}

	if idx.ScoredCount > 0 {
		mean := Round2(scoredSum / float64(idx.ScoredCount))
		idx.MeanScore = &mean
	}

	ranked := make([]QueryScore, len(scores))
	copy(ranked, scores)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Profile.Score != ranked[j].Profile.Score {
			return ranked[i].Profile.Score > ranked[j].Profile.Score
		}
		if ranked[i].QueryText != ranked[j].QueryText {
			return ranked[i].QueryText < ranked[j].QueryText
		}
		return ranked[i].QueryID < ranked[j].QueryID
	})
	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	idx.Top = top

	if sum > 0 {
		topSum := 0.0
		for _, qs := range top {
			topSum += qs.Profile.Score
		}
		ratio := Round2(topSum / sum)
		idx.ConcentrationRatio = &ratio
	}
	return idx
}
