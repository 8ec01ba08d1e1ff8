// CLAUDE:SUMMARY Score momentum across two adjacent 30-day windows anchored to one request clock.
package volat

// Momentum directions.
const (
	DirectionAccelerating = "accelerating"
	DirectionDecelerating = "decelerating"
	DirectionStable       = "stable"
)

// Momentum compares the composite score of two adjacent windows. Delta and
// Direction are null when either window has zero samples — a half-empty
// comparison carries no signal.
type Momentum struct {
	Current   Profile  `json:"current"`
	Prior     Profile  `json:"prior"`
	Delta     *float64 `json:"delta"`
	Direction *string  `json:"direction"`
}

// ComputeMomentum scores each window's delta sequence and derives the
// movement between them. The caller is responsible for partitioning
// observations into the two windows from a single "now" reading.
func ComputeMomentum(current, prior []Delta) Momentum {
	m := Momentum{
		Current: ComputeProfile(current),
		Prior:   ComputeProfile(prior),
	}
	if m.Current.SampleSize == 0 || m.Prior.SampleSize == 0 {
		return m
	}

	d := Round2(m.Current.Score - m.Prior.Score)
	m.Delta = &d

	var dir string
	switch {
	case d > 0:
		dir = DirectionAccelerating
	case d < 0:
		dir = DirectionDecelerating
	default:
		dir = DirectionStable
	}
	m.Direction = &dir
	return m
}
