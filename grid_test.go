package stjpv

import (
	"testing"
	"time"
)

func sampleGrid() Grid {
	lat := make([]float64, 0, 37)
	for l := -90.0; l <= 90.0; l += 5 {
		lat = append(lat, l)
	}
	theta := []float64{300, 310, 320, 330, 340, 350, 360, 370, 380, 390, 400, 410}
	return Grid{
		Lat:   lat,
		Lon:   []float64{0, 90, 180, 270},
		Theta: theta,
		Time:  []time.Time{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestGridValidate(t *testing.T) {
	g := sampleGrid()
	if err := g.Validate(); err != nil {
		t.Fatalf("expected valid grid, got %s", err)
	}
}

func TestGridValidateRejectsNonMonotonicTheta(t *testing.T) {
	g := sampleGrid()
	g.Theta[3] = g.Theta[2]
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for non-monotonic theta axis")
	}
}

func TestGridValidateRejectsSingleHemisphere(t *testing.T) {
	g := sampleGrid()
	lat := make([]float64, 0, len(g.Lat))
	for _, l := range g.Lat {
		if l >= 0 {
			lat = append(lat, l)
		}
	}
	g.Lat = lat
	if err := g.Validate(); err == nil {
		t.Fatal("expected error for single-hemisphere latitude axis")
	}
}

func TestGridThetaDomain(t *testing.T) {
	g := sampleGrid()
	idx := g.ThetaDomain(310, 380)
	if len(idx) != 8 {
		t.Fatalf("expected 8 theta levels in [310,380], got %d", len(idx))
	}
	if g.Theta[idx[0]] != 310 || g.Theta[idx[len(idx)-1]] != 380 {
		t.Fatalf("theta domain bounds wrong: %v", idx)
	}
}

func TestHemisphereSign(t *testing.T) {
	if NH.PVSign(2.0) != 2.0 {
		t.Fatal("NH should take a positive PV* target")
	}
	if SH.PVSign(2.0) != -2.0 {
		t.Fatal("SH should take a negative PV* target")
	}
}

func TestHemisphereSelectLat(t *testing.T) {
	lat := []float64{-60, -10, 0, 10, 60}
	nh := NH.SelectLat(lat)
	sh := SH.SelectLat(lat)
	if len(nh) != 2 || len(sh) != 2 {
		t.Fatalf("expected 2 NH and 2 SH points excluding the equator, got nh=%d sh=%d", len(nh), len(sh))
	}
}
