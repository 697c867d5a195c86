package stjpv

import "testing"

func TestCleanMonotonicNH(t *testing.T) {
	curve := DynamicTropopauseCurve{Points: []CurvePoint{
		{Lat: 10, Theta: 330},
		{Lat: 20, Theta: 340},
		{Lat: 15, Theta: 345}, // violates ascending order, should be dropped
		{Lat: 30, Theta: 350},
	}}
	cleaned := CleanMonotonic(curve, NH)
	lats := cleaned.Lats()
	for i := 1; i < len(lats); i++ {
		if lats[i] <= lats[i-1] {
			t.Fatalf("expected strictly ascending latitudes, got %v", lats)
		}
	}
	if len(lats) != 3 {
		t.Fatalf("expected the out-of-order point dropped, got %d points: %v", len(lats), lats)
	}
}

func TestCleanMonotonicSH(t *testing.T) {
	curve := DynamicTropopauseCurve{Points: []CurvePoint{
		{Lat: -10, Theta: 330},
		{Lat: -20, Theta: 340},
		{Lat: -15, Theta: 345},
		{Lat: -30, Theta: 350},
	}}
	cleaned := CleanMonotonic(curve, SH)
	lats := cleaned.Lats()
	for i := 1; i < len(lats); i++ {
		if lats[i] >= lats[i-1] {
			t.Fatalf("expected strictly descending latitudes, got %v", lats)
		}
	}
}

func TestDedupeLowestTheta(t *testing.T) {
	pts := []CurvePoint{
		{Lat: 10, Theta: 340},
		{Lat: 20, Theta: 350},
		{Lat: 10, Theta: 330}, // duplicate latitude, lower theta should win
	}
	out := dedupeLowestTheta(pts)
	if len(out) != 2 {
		t.Fatalf("expected duplicates collapsed to 2 points, got %d", len(out))
	}
	if out[0].Lat != 10 || out[0].Theta != 330 {
		t.Fatalf("expected lowest theta retained for lat=10, got %+v", out[0])
	}
}

func TestCleanMonotonicRestartsFromSameIndex(t *testing.T) {
	// Two consecutive violations in a row: the sweep must restart at the
	// same index rather than skip past both.
	curve := DynamicTropopauseCurve{Points: []CurvePoint{
		{Lat: 10, Theta: 330},
		{Lat: 25, Theta: 340},
		{Lat: 20, Theta: 341},
		{Lat: 18, Theta: 342},
		{Lat: 30, Theta: 350},
	}}
	cleaned := CleanMonotonic(curve, NH)
	lats := cleaned.Lats()
	for i := 1; i < len(lats); i++ {
		if lats[i] <= lats[i-1] {
			t.Fatalf("expected strictly ascending latitudes after cleaning, got %v", lats)
		}
	}
}
