// CLAUDE:SUMMARY Composite volatility scorer (bounded 0-100, 2-decimal rounding) and regime classification.
package volat

import "math"

// Scoring constants. Chosen deliberately, not tuned: an average shift of 10
// positions, four feature changes per pair, or a flip on every pair each
// saturate their component. The contract that matters downstream is bounded
// [0,100], monotonic in each input, and rounded to 2 decimals before any
// comparison or storage.
const (
	rankShiftCap    = 10.0
	featureRateCap  = 4.0
	weightRankShift = 0.50
	weightFeatures  = 0.30
	weightAIPanel   = 0.20
)

// Profile is the aggregate volatility of a delta sequence. The same formula
// covers a window of one delta or a thousand.
type Profile struct {
	SampleSize   int     `json:"sample_size"`
	AvgRankShift float64 `json:"avg_rank_shift"`
	MaxRankShift int     `json:"max_rank_shift"`
	FeatureChurn int     `json:"feature_churn"`
	AIChurn      int     `json:"ai_churn"`
	Score        float64 `json:"score"`
}

// ComputeProfile reduces a delta sequence to a Profile. With zero deltas
// every field is 0 — never a fabricated number or a division artifact.
func ComputeProfile(deltas []Delta) Profile {
	p := Profile{SampleSize: len(deltas)}
	if p.SampleSize == 0 {
		return p
	}

	totalAbs, pairs := 0, 0
	for _, d := range deltas {
		for _, rp := range d.URLs {
			if rp.BothPresent() {
				shift := rp.AbsShift()
				totalAbs += shift
				pairs++
				if shift > p.MaxRankShift {
					p.MaxRankShift = shift
				}
			}
		}
		p.FeatureChurn += d.FeatureChurn
		if d.AIFlip {
			p.AIChurn++
		}
	}

	if pairs > 0 {
		p.AvgRankShift = Round2(float64(totalAbs) / float64(pairs))
	}

	n := float64(p.SampleSize)
	rankPart := math.Min(p.AvgRankShift/rankShiftCap, 1)
	featurePart := math.Min(float64(p.FeatureChurn)/n/featureRateCap, 1)
	aiPart := float64(p.AIChurn) / n

	p.Score = Round2(100 * (weightRankShift*rankPart + weightFeatures*featurePart + weightAIPanel*aiPart))
	return p
}

// Round2 rounds half away from zero to 2 decimal places. Applied to every
// score before comparison or serialization, so regime boundary checks never
// see floating-point ambiguity.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Regime labels. Coarse operator-facing classification of a score.
const (
	RegimeCalm     = "calm"
	RegimeShifting = "shifting"
	RegimeUnstable = "unstable"
	RegimeChaotic  = "chaotic"
)

// Regime classifies a pre-rounded composite score with inclusive upper
// bounds: 20.00 is still calm, 75.00 is still unstable.
func Regime(score float64) string {
	switch {
	case score <= 20.00:
		return RegimeCalm
	case score <= 50.00:
		return RegimeShifting
	case score <= 75.00:
		return RegimeUnstable
	default:
		return RegimeChaotic
	}
}
