package volat

import (
	"testing"
)

func TestTransitions_CountsSumToDeltas(t *testing.T) {
	// WHAT: Every delta lands in exactly one bucket, so bucket counts always
	// sum to the delta count.
	// WHY: The matrix is a partition, never a truncated top-N.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, []string{"ads"}),
		sample("b", 2000, AIPanelAbsent, []string{"ads"}),
		sample("c", 3000, AIPanelAbsent, []string{"faq"}),
		sample("d", 4000, AIPanelAbsent, nil),
		sample("e", 5000, AIPanelAbsent, nil),
	}
	deltas := Deltas(samples)
	trans := Transitions(deltas)

	sum := 0
	for _, tr := range trans {
		sum += tr.Count
	}
	if sum != len(deltas) {
		t.Fatalf("counts sum to %d, want %d", sum, len(deltas))
	}
}

func TestTransitions_IdenticalSetsShareBucket(t *testing.T) {
	// WHAT: Deltas with identical from/to feature sets collapse into one
	// bucket, including the empty->empty bucket.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, []string{"ads", "faq"}),
		sample("b", 2000, AIPanelAbsent, []string{"ads", "faq"}),
		sample("c", 3000, AIPanelAbsent, []string{"ads", "faq"}),
		sample("d", 4000, AIPanelAbsent, nil),
		sample("e", 5000, AIPanelAbsent, nil),
	}
	trans := Transitions(Deltas(samples))

	byKey := map[string]int{}
	for _, tr := range trans {
		byKey[tr.TransitionKey()] = tr.Count
	}
	if byKey["ads,faq||ads,faq"] != 2 {
		t.Errorf("stable bucket count = %d, want 2", byKey["ads,faq||ads,faq"])
	}
	if byKey["||"] != 1 {
		t.Errorf("empty->empty bucket count = %d, want 1", byKey["||"])
	}
	if byKey["ads,faq||"] != 1 {
		t.Errorf("exit bucket count = %d, want 1", byKey["ads,faq||"])
	}
}

func TestTransitions_Order(t *testing.T) {
	// WHAT: Count descending, then from ascending, then to ascending.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, []string{"ads"}),
		sample("b", 2000, AIPanelAbsent, []string{"ads"}),
		sample("c", 3000, AIPanelAbsent, []string{"ads"}),
		sample("d", 4000, AIPanelAbsent, []string{"faq"}),
	}
	trans := Transitions(Deltas(samples))
	if len(trans) != 2 {
		t.Fatalf("got %d buckets, want 2", len(trans))
	}
	if trans[0].Count != 2 || trans[0].From != "ads" || trans[0].To != "ads" {
		t.Errorf("first bucket = %+v, want ads->ads count 2", trans[0])
	}
	if trans[1].From != "ads" || trans[1].To != "faq" {
		t.Errorf("second bucket = %+v, want ads->faq", trans[1])
	}
}

func TestTransitions_Empty(t *testing.T) {
	if got := Transitions(nil); len(got) != 0 {
		t.Fatalf("no deltas: got %v, want empty", got)
	}
}
