package volat

import "testing"

// flipSeq builds samples whose consecutive AI states realize the given flip
// pattern: true means the pair flips, false means it repeats.
func flipSeq(flips ...bool) []Sample {
	states := []string{AIPanelAbsent}
	for _, f := range flips {
		last := states[len(states)-1]
		if f {
			if last == AIPanelAbsent {
				states = append(states, AIPanelPresent)
			} else {
				states = append(states, AIPanelAbsent)
			}
		} else {
			states = append(states, last)
		}
	}
	samples := make([]Sample, len(states))
	for i, st := range states {
		samples[i] = sample(string(rune('a'+i)), int64(1000*(i+1)), st, nil)
	}
	return samples
}

func TestAIStability_Empty(t *testing.T) {
	// WHAT: Zero deltas: counts zero, ratio and polarity null.
	s := AIStability(nil)
	if s.SampleSize != 0 || s.TotalFlips != 0 {
		t.Fatalf("empty stability: %+v", s)
	}
	if s.FlipRatio != nil {
		t.Errorf("FlipRatio = %v, want nil", *s.FlipRatio)
	}
	if s.CurrentRunFlips != nil {
		t.Errorf("CurrentRunFlips = %v, want nil", *s.CurrentRunFlips)
	}
}

func TestAIStability_Runs(t *testing.T) {
	// WHAT: Verify streaks on the pattern stable,stable,flip,flip,flip,stable.
	s := AIStability(Deltas(flipSeq(false, false, true, true, true, false)))

	if s.SampleSize != 6 {
		t.Fatalf("SampleSize = %d, want 6", s.SampleSize)
	}
	if s.TotalFlips != 3 {
		t.Errorf("TotalFlips = %d, want 3", s.TotalFlips)
	}
	if s.LongestStableRun != 2 {
		t.Errorf("LongestStableRun = %d, want 2", s.LongestStableRun)
	}
	if s.LongestFlipRun != 3 {
		t.Errorf("LongestFlipRun = %d, want 3", s.LongestFlipRun)
	}
	if s.CurrentRunLength != 1 {
		t.Errorf("CurrentRunLength = %d, want 1", s.CurrentRunLength)
	}
	if s.CurrentRunFlips == nil || *s.CurrentRunFlips {
		t.Errorf("CurrentRunFlips = %v, want false", s.CurrentRunFlips)
	}
	if s.FlipRatio == nil || *s.FlipRatio != 0.5 {
		t.Errorf("FlipRatio = %v, want 0.5", s.FlipRatio)
	}
}

func TestAIStability_AllFlipping(t *testing.T) {
	// WHAT: Every pair flips: the current run spans the whole sequence with
	// flipping polarity and ratio 1.
	s := AIStability(Deltas(flipSeq(true, true, true)))
	if s.TotalFlips != 3 || s.LongestFlipRun != 3 || s.LongestStableRun != 0 {
		t.Fatalf("all-flip stability: %+v", s)
	}
	if s.CurrentRunLength != 3 || s.CurrentRunFlips == nil || !*s.CurrentRunFlips {
		t.Fatalf("current run: len=%d flips=%v", s.CurrentRunLength, s.CurrentRunFlips)
	}
	if s.FlipRatio == nil || *s.FlipRatio != 1.0 {
		t.Fatalf("FlipRatio = %v, want 1.0", s.FlipRatio)
	}
}

func TestAIStability_SingleDelta(t *testing.T) {
	// WHAT: One stable pair: ratio 0, current run is the one stable pair.
	s := AIStability(Deltas(flipSeq(false)))
	if s.SampleSize != 1 || s.TotalFlips != 0 {
		t.Fatalf("single stable delta: %+v", s)
	}
	if s.FlipRatio == nil || *s.FlipRatio != 0 {
		t.Errorf("FlipRatio = %v, want 0", s.FlipRatio)
	}
	if s.CurrentRunLength != 1 || s.CurrentRunFlips == nil || *s.CurrentRunFlips {
		t.Errorf("current run: len=%d flips=%v", s.CurrentRunLength, s.CurrentRunFlips)
	}
}
