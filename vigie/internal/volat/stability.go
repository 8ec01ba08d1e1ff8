// CLAUDE:SUMMARY AI panel stability: flip streaks, current run polarity, flip ratio.
package volat

// Stability models the AI answer panel's flip behaviour over a delta
// sequence. Every run length is a count of delta pairs, never wall-clock
// duration.
type Stability struct {
	SampleSize       int      `json:"sample_size"`
	TotalFlips       int      `json:"total_flips"`
	FlipRatio        *float64 `json:"flip_ratio"` // null when sample size is 0
	LongestStableRun int      `json:"longest_stable_run"`
	LongestFlipRun   int      `json:"longest_flip_run"`
	CurrentRunLength int      `json:"current_run_length"`
	CurrentRunFlips  *bool    `json:"current_run_flipping"` // null when sample size is 0
}

// AIStability folds the flip flags of a delta sequence into streak metrics.
// The current run is measured from the most recent delta backward.
func AIStability(deltas []Delta) Stability {
	s := Stability{SampleSize: len(deltas)}
	if s.SampleSize == 0 {
		return s
	}

	stableRun, flipRun := 0, 0
	for _, d := range deltas {
		if d.AIFlip {
			s.TotalFlips++
			flipRun++
			stableRun = 0
			if flipRun > s.LongestFlipRun {
				s.LongestFlipRun = flipRun
			}
		} else {
			stableRun++
			flipRun = 0
			if stableRun > s.LongestStableRun {
				s.LongestStableRun = stableRun
			}
		}
	}

	polarity := deltas[len(deltas)-1].AIFlip
	run := 0
	for i := len(deltas) - 1; i >= 0 && deltas[i].AIFlip == polarity; i-- {
		run++
	}
	s.CurrentRunLength = run
	s.CurrentRunFlips = &polarity

	ratio := Round2(float64(s.TotalFlips) / float64(s.SampleSize))
	s.FlipRatio = &ratio
	return s
}
