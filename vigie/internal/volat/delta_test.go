package volat

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/vigie/vigie/internal/serp"
)

// sample builds a Sample from alternating rank/url pairs.
func sample(id string, at int64, aiPanel string, features []string, ranked ...any) Sample {
	s := Sample{ID: id, CapturedAt: at, AIPanel: aiPanel, Features: features}
	for i := 0; i+1 < len(ranked); i += 2 {
		s.Results = append(s.Results, serp.Result{Rank: ranked[i].(int), URL: ranked[i+1].(string)})
	}
	return s
}

func TestDeltas_Count(t *testing.T) {
	// WHAT: N samples produce exactly N-1 deltas; fewer than 2 produce none.
	// WHY: Every aggregate's sample_size is defined as the delta count.
	if got := Deltas(nil); got != nil {
		t.Fatalf("Deltas(nil) = %v, want nil", got)
	}
	one := []Sample{sample("a", 1000, AIPanelAbsent, nil)}
	if got := Deltas(one); got != nil {
		t.Fatalf("Deltas(1 sample) = %v, want nil", got)
	}

	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, nil),
		sample("b", 2000, AIPanelAbsent, nil),
		sample("c", 3000, AIPanelAbsent, nil),
		sample("d", 4000, AIPanelAbsent, nil),
	}
	deltas := Deltas(samples)
	if len(deltas) != 3 {
		t.Fatalf("got %d deltas, want 3", len(deltas))
	}
	// Pairs must be consecutive.
	if deltas[0].FromID != "a" || deltas[0].ToID != "b" {
		t.Errorf("delta[0] = %s->%s, want a->b", deltas[0].FromID, deltas[0].ToID)
	}
	if deltas[2].FromID != "c" || deltas[2].ToID != "d" {
		t.Errorf("delta[2] = %s->%s, want c->d", deltas[2].FromID, deltas[2].ToID)
	}
}

func TestNewDelta_RankPairs(t *testing.T) {
	// WHAT: URL present on both sides yields a both-present pair with the
	// right shift; enter/exit URLs have exactly one nil side.
	a := sample("a", 1000, AIPanelAbsent, nil, 1, "https://x.test", 2, "https://gone.test")
	b := sample("b", 2000, AIPanelAbsent, nil, 4, "https://x.test", 3, "https://new.test")
	d := NewDelta(a, b)

	if len(d.URLs) != 3 {
		t.Fatalf("got %d urls, want 3", len(d.URLs))
	}

	x := d.URLs["https://x.test"]
	if !x.BothPresent() {
		t.Fatal("x.test should be present on both sides")
	}
	if x.AbsShift() != 3 {
		t.Errorf("x.test shift = %d, want 3", x.AbsShift())
	}

	gone := d.URLs["https://gone.test"]
	if gone.From == nil || gone.To != nil {
		t.Errorf("gone.test pair = (%v, %v), want (rank, nil)", gone.From, gone.To)
	}
	if gone.AbsShift() != 0 {
		t.Errorf("exit shift = %d, want 0", gone.AbsShift())
	}

	neu := d.URLs["https://new.test"]
	if neu.From != nil || neu.To == nil {
		t.Errorf("new.test pair = (%v, %v), want (nil, rank)", neu.From, neu.To)
	}
}

func TestNewDelta_FeatureChurn(t *testing.T) {
	// WHAT: Feature churn is the symmetric difference of the two label sets.
	a := sample("a", 1000, AIPanelAbsent, []string{"ads", "faq", "videos"})
	b := sample("b", 2000, AIPanelAbsent, []string{"faq", "top_stories"})
	d := NewDelta(a, b)
	// ads and videos left, top_stories arrived: churn 3.
	if d.FeatureChurn != 3 {
		t.Fatalf("FeatureChurn = %d, want 3", d.FeatureChurn)
	}

	same := NewDelta(a, a)
	if same.FeatureChurn != 0 {
		t.Fatalf("identical sets: FeatureChurn = %d, want 0", same.FeatureChurn)
	}
}

func TestNewDelta_AIFlip(t *testing.T) {
	// WHAT: Any tri-state change counts as a flip, including to parse_error.
	// WHY: parse_error is a real state, not a skipped sample.
	cases := []struct {
		from, to string
		flip     bool
	}{
		{AIPanelAbsent, AIPanelAbsent, false},
		{AIPanelPresent, AIPanelPresent, false},
		{AIPanelAbsent, AIPanelPresent, true},
		{AIPanelPresent, AIPanelParseError, true},
		{AIPanelParseError, AIPanelAbsent, true},
	}
	for _, tt := range cases {
		a := sample("a", 1000, tt.from, nil)
		b := sample("b", 2000, tt.to, nil)
		if got := NewDelta(a, b).AIFlip; got != tt.flip {
			t.Errorf("%s->%s: AIFlip = %v, want %v", tt.from, tt.to, got, tt.flip)
		}
	}
}

func TestSymmetricDiff(t *testing.T) {
	cases := []struct {
		a, b []string
		want int
	}{
		{nil, nil, 0},
		{[]string{"x"}, nil, 1},
		{nil, []string{"x", "y"}, 2},
		{[]string{"a", "b"}, []string{"a", "b"}, 0},
		{[]string{"a", "b", "c"}, []string{"b", "d"}, 3},
	}
	for _, tt := range cases {
		if got := symmetricDiff(tt.a, tt.b); got != tt.want {
			t.Errorf("symmetricDiff(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDeltas_Deterministic(t *testing.T) {
	// WHAT: The same sample sequence replays to a deep-equal delta sequence.
	// WHY: Read-model determinism is the contract of the whole package.
	samples := []Sample{
		sample("a", 1000, AIPanelAbsent, []string{"ads"}, 1, "https://x.test", 2, "https://y.test"),
		sample("b", 2000, AIPanelPresent, []string{"faq"}, 3, "https://x.test"),
		sample("c", 3000, AIPanelPresent, nil, 1, "https://y.test", 2, "https://x.test"),
	}
	first := Deltas(samples)
	second := Deltas(samples)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over the same samples diverged")
	}
}
