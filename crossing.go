package stjpv

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// FindTropopauseCrossing implements the Crossing Finder of §4.4: the
// thermal tropopause theta_trop(lat) and the dynamic tropopause curve
// theta_dyn(lat) are each resampled onto a common 1-degree latitude
// lattice spanning their overlap, via linear interpolation
// (gonum/interp.PiecewiseLinear, grounded the same way the original
// resamples both curves before differencing them). The latitude of the
// most poleward sign change of (theta_dyn - theta_trop) is returned,
// per the resolved Open Question in favour of the poleward-most
// crossing; when the two curves never cross, the equatorward-most
// latitude of the lattice is returned instead, matching
// STJ_IPV_metric.py's TropoCrossing fallback.
//
// h selects which pole "poleward" means for tie-breaking: increasing
// |lat| for NH, likewise for SH.
func FindTropopauseCrossing(trop ThermalTropopauseCurve, dyn DynamicTropopauseCurve, h Hemisphere) (crossLat float64, ok bool) {
	tropLat, tropTheta := trop.Lat, trop.Theta
	dynLat, dynTheta := dyn.Lats(), dyn.Thetas()
	if len(tropLat) < 2 || len(dynLat) < 2 {
		return math.NaN(), false
	}
	lo := math.Max(minOf(tropLat), minOf(dynLat))
	hi := math.Min(maxOf(tropLat), maxOf(dynLat))
	if lo >= hi {
		return math.NaN(), false
	}

	tropInterp := &interp.PiecewiseLinear{}
	if err := tropInterp.Fit(sortedCopy(tropLat, tropTheta)); err != nil {
		return math.NaN(), false
	}
	dynInterp := &interp.PiecewiseLinear{}
	if err := dynInterp.Fit(sortedCopy(dynLat, dynTheta)); err != nil {
		return math.NaN(), false
	}

	const step = 1.0
	n := int((hi-lo)/step) + 1
	lattice := make([]float64, n)
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		lat := lo + float64(i)*step
		lattice[i] = lat
		diff[i] = dynInterp.Predict(lat) - tropInterp.Predict(lat)
	}

	var crossings []float64
	for i := 1; i < n; i++ {
		a, b := diff[i-1], diff[i]
		if a == 0 {
			crossings = append(crossings, lattice[i-1])
			continue
		}
		if (a < 0 && b >= 0) || (a > 0 && b <= 0) {
			frac := -a / (b - a)
			crossings = append(crossings, lattice[i-1]+frac*step)
		}
	}
	if len(crossings) == 0 {
		if h == NH {
			return lattice[0], true
		}
		return lattice[n-1], true
	}

	best := crossings[0]
	for _, c := range crossings {
		if h == NH {
			if c > best {
				best = c
			}
		} else {
			if c < best {
				best = c
			}
		}
	}
	return best, true
}

// ThermalTropopauseCurve is theta_trop(lat) for a single (time, lon)
// cell, extracted from a ThermalTropopause field's Row.
type ThermalTropopauseCurve struct {
	Lat   []float64
	Theta []float64
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

// sortedCopy returns x, y sorted by ascending x, as required by
// interp.PiecewiseLinear.Fit.
func sortedCopy(x, y []float64) ([]float64, []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, k := range idx {
		xs[i] = x[k]
		ys[i] = y[k]
	}
	return xs, ys
}
