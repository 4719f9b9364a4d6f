package health

import "testing"

func TestRingMeanPercentEmpty(t *testing.T) {
	r := newRing(10)
	if got := r.meanPercent(); got != 100 {
		t.Fatalf("expected 100 for an empty ring, got %d", got)
	}
}

func TestRingMeanPercentAllTrue(t *testing.T) {
	r := newRing(4)
	for i := 0; i < 4; i++ {
		r.push(true)
	}
	if got := r.meanPercent(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestRingMeanPercentRounding(t *testing.T) {
	r := newRing(3)
	r.push(true)
	r.push(true)
	r.push(false)
	// 2/3 = 66.67 -> rounds to 67
	if got := r.meanPercent(); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestRingEvictsOldestOnWrap(t *testing.T) {
	r := newRing(2)
	r.push(true)
	r.push(true)
	r.push(false) // evicts the oldest true
	if got := r.meanPercent(); got != 50 {
		t.Fatalf("expected 50 after wraparound, got %d", got)
	}
}
