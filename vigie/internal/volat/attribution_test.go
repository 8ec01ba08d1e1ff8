package volat

import "testing"

func TestAttribution_EnterExit(t *testing.T) {
	// WHAT: A URL that enters in one delta and exits in the next has
	// appearances 2 but zero accumulated shift.
	// WHY: Entries and exits are visibility events, not rank movement.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, nil, 1, "https://stable.test"),
		sample("b", 2000, AIPanelAbsent, nil, 1, "https://stable.test", 2, "https://blip.test"),
		sample("c", 3000, AIPanelAbsent, nil, 1, "https://stable.test"),
	}
	contribs := Attribution(Deltas(samples), 0)

	var blip *URLContribution
	for i := range contribs {
		if contribs[i].URL == "https://blip.test" {
			blip = &contribs[i]
		}
	}
	if blip == nil {
		t.Fatal("blip.test missing from attribution")
	}
	if blip.Appearances != 2 {
		t.Errorf("Appearances = %d, want 2", blip.Appearances)
	}
	if blip.TotalAbsShift != 0 {
		t.Errorf("TotalAbsShift = %d, want 0", blip.TotalAbsShift)
	}
	if blip.PairsBothPresent != 0 {
		t.Errorf("PairsBothPresent = %d, want 0", blip.PairsBothPresent)
	}
	if blip.AverageShift != 0 {
		t.Errorf("AverageShift = %v, want 0", blip.AverageShift)
	}
	if blip.FirstSeen != 2000 || blip.LastSeen != 2000 {
		t.Errorf("seen window = [%d, %d], want [2000, 2000]", blip.FirstSeen, blip.LastSeen)
	}
}

func TestAttribution_ShiftAccumulation(t *testing.T) {
	// WHAT: Shifts accumulate only over deltas where the URL held a rank on
	// both sides, and AverageShift divides by that pair count.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, nil, 1, "https://x.test"),
		sample("b", 2000, AIPanelAbsent, nil, 4, "https://x.test"),
		sample("c", 3000, AIPanelAbsent, nil, 3, "https://x.test"),
	}
	contribs := Attribution(Deltas(samples), 0)
	if len(contribs) != 1 {
		t.Fatalf("got %d contributions, want 1", len(contribs))
	}
	x := contribs[0]
	if x.TotalAbsShift != 4 {
		t.Errorf("TotalAbsShift = %d, want 4 (3+1)", x.TotalAbsShift)
	}
	if x.PairsBothPresent != 2 {
		t.Errorf("PairsBothPresent = %d, want 2", x.PairsBothPresent)
	}
	if x.AverageShift != 2.0 {
		t.Errorf("AverageShift = %v, want 2.0", x.AverageShift)
	}
	if x.FirstSeen != 1000 || x.LastSeen != 3000 {
		t.Errorf("seen window = [%d, %d], want [1000, 3000]", x.FirstSeen, x.LastSeen)
	}
}

func TestAttribution_SortAndLimit(t *testing.T) {
	// WHAT: Sorted by total shift descending, URL ascending on ties; limit
	// truncates after the full sort.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, nil,
			1, "https://big.test", 2, "https://tie-a.test", 3, "https://tie-b.test"),
		sample("b", 2000, AIPanelAbsent, nil,
			9, "https://big.test", 2, "https://tie-a.test", 3, "https://tie-b.test"),
	}
	contribs := Attribution(Deltas(samples), 0)
	if len(contribs) != 3 {
		t.Fatalf("got %d contributions, want 3", len(contribs))
	}
	if contribs[0].URL != "https://big.test" {
		t.Errorf("first = %q, want big.test", contribs[0].URL)
	}
	// Equal shift (0): URL ascending.
	if contribs[1].URL != "https://tie-a.test" || contribs[2].URL != "https://tie-b.test" {
		t.Errorf("tie order = %q, %q", contribs[1].URL, contribs[2].URL)
	}

	limited := Attribution(Deltas(samples), 1)
	if len(limited) != 1 || limited[0].URL != "https://big.test" {
		t.Fatalf("limit 1: got %v", limited)
	}
}

func TestAttribution_Empty(t *testing.T) {
	// WHAT: Zero deltas produce an empty slice, not nil panic territory.
	if got := Attribution(nil, 10); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
