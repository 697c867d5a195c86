package stjpv

import (
	"math"
	"testing"
)

func TestInterpolateOnPVLinearCrossing(t *testing.T) {
	theta := []float64{320, 330, 340, 350}
	ipv := []float64{1.0, 1.8, 2.4, 3.0} // crosses 2.0 between 330 and 340
	f := []float64{10, 12, 14, 16}       // e.g. wind, linear in theta too

	thetaCross, fCross := InterpolateOnPV(theta, ipv, f, 2.0, math.NaN())
	wantTheta := 330 + (2.0-1.8)/(2.4-1.8)*10
	if !closeEnough(thetaCross, wantTheta, 1e-9) {
		t.Fatalf("thetaCross = %v, want %v", thetaCross, wantTheta)
	}
	wantF := 12 + (thetaCross-330)/10*2
	if !closeEnough(fCross, wantF, 1e-9) {
		t.Fatalf("fCross = %v, want %v", fCross, wantF)
	}
}

func TestInterpolateOnPVNoCrossing(t *testing.T) {
	theta := []float64{320, 330, 340}
	ipv := []float64{0.5, 0.8, 1.0}
	f := []float64{1, 2, 3}
	thetaCross, fCross := InterpolateOnPV(theta, ipv, f, 2.0, math.NaN())
	if !math.IsNaN(thetaCross) || !math.IsNaN(fCross) {
		t.Fatalf("expected NaN for a PV* never bracketed, got theta=%v f=%v", thetaCross, fCross)
	}
}

func TestInterpolateOnPVSkipsNaNGaps(t *testing.T) {
	theta := []float64{320, 330, 340, 350}
	ipv := []float64{1.0, math.NaN(), 2.4, 3.0}
	f := []float64{10, math.NaN(), 14, 16}
	thetaCross, _ := InterpolateOnPV(theta, ipv, f, 2.0, math.NaN())
	if math.IsNaN(thetaCross) {
		t.Fatal("expected the bracket between 320 and 340 to be found across the NaN gap")
	}
	if thetaCross < 320 || thetaCross > 340 {
		t.Fatalf("expected crossing within [320,340], got %v", thetaCross)
	}
}

func TestInterpolateOnPVContinuityTieBreak(t *testing.T) {
	// Non-monotone column with three brackets for PV*=2.0: near theta=327,
	// 335 and 345. With a previous crossing hint near 345, the last
	// bracket should be chosen.
	theta := []float64{320, 330, 340, 350, 360}
	ipv := []float64{1.0, 2.5, 1.5, 2.5, 3.0}
	f := []float64{1, 2, 3, 4, 5}

	_, _ = InterpolateOnPV(theta, ipv, f, 2.0, math.NaN())
	thetaNear, _ := InterpolateOnPV(theta, ipv, f, 2.0, 348)
	if thetaNear < 340 {
		t.Fatalf("expected the bracket nearest the 348 hint to win, got theta=%v", thetaNear)
	}
}

func TestBuildTropopauseCurveSkipsMissingRows(t *testing.T) {
	theta := []float64{320, 330, 340}
	ipvByLat := [][]float64{
		{1.0, 1.8, 2.4},
		{0.1, 0.2, 0.3}, // never reaches PV*=2.0
		{1.2, 2.0, 2.8},
	}
	uByLat := [][]float64{
		{10, 11, 12},
		{10, 11, 12},
		{10, 11, 12},
	}
	lat := []float64{20, 25, 30}

	curve, intens := BuildTropopauseCurve(theta, ipvByLat, uByLat, lat, 2.0)
	if len(curve.Points) != 2 {
		t.Fatalf("expected the unbracketed row dropped, got %d points", len(curve.Points))
	}
	if len(intens) != len(curve.Points) {
		t.Fatalf("intensity slice must align with curve points: %d vs %d", len(intens), len(curve.Points))
	}
}
