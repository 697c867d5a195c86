package stjpv

import "math"

// jetLatticeStep is the latitude spacing used to scan the fitted curve
// for local extrema, fine enough to resolve a single jet core without
// the cost of a root-finder per candidate.
const jetLatticeStep = 0.1

// FindJetCore implements the Extremum Selector of §4.5: a direct Go port
// of STJ_IPV_metric.py's IsolatePeaks, which does not look for ridges or
// troughs of theta(lat) itself. It evaluates dtheta/dlat on a dense
// lattice and finds the INTERIOR EXTREMA OF THAT DERIVATIVE ARRAY — every
// interior lattice point where dtheta/dlat stops rising and starts
// falling, or stops falling and starts rising (argrelmin/argrelmax over
// the derivative values, as IsolatePeaks computes for both hemispheres)
// — since the jet core is where the dynamic tropopause's slope reaches a
// local extreme, not where theta(lat) itself peaks. Every such point is a
// candidate; hemisphere correctness comes from restricting candidates to
// the side of crossLat that is poleward of the thermal tropopause and
// from the tie-break below, not from discarding one extremum kind up
// front. Ties are resolved first by the larger |intensAt(lat)| at the
// candidate latitude, then by the most equatorward latitude. The ranking
// value is the zonal wind at the dynamic tropopause alone: no
// lower-level (surface) wind is subtracted, so it is not a
// tropopause-minus-surface shear. basis/coeffs is the fit produced for lat;
// intensAt(lat) interpolates jet intensity (u) at an arbitrary latitude
// from the per-row intensity samples built alongside the tropopause
// curve.
func FindJetCore(basis Basis, coeffs Coeffs, minLat, maxLat, crossLat float64, h Hemisphere, intensAt func(lat float64) float64) JetResult {
	if coeffs == nil {
		return MissingJetResult(crossLat)
	}

	// minLat/maxLat are configured as positive magnitudes (spec.md §4.5
	// step 2: "min_lat <= |phi| <= max_lat"); SH candidates live at
	// negative latitudes, so the band has to be mirrored onto the
	// negative axis before the poleward-of-crossLat restriction is
	// applied, or every SH cell would spuriously end up with lo >= hi.
	lo, hi := minLat, maxLat
	if h == NH {
		lo = math.Max(lo, crossLat)
	} else {
		lo, hi = -maxLat, -minLat
		hi = math.Min(hi, crossLat)
	}
	if lo >= hi {
		return MissingJetResult(crossLat)
	}

	n := int((hi-lo)/jetLatticeStep) + 1
	if n < 3 {
		return MissingJetResult(crossLat)
	}

	lats := make([]float64, n)
	thetas := make([]float64, n)
	derivs := make([]float64, n)
	for i := 0; i < n; i++ {
		lat := lo + float64(i)*jetLatticeStep
		theta, deriv := basis.EvalDeriv(coeffs, lat)
		lats[i], thetas[i], derivs[i] = lat, theta, deriv
	}

	type candidate struct {
		lat   float64
		theta float64
	}
	var candidates []candidate
	for i := 1; i < n-1; i++ {
		isLocalMin := derivs[i-1] > derivs[i] && derivs[i] < derivs[i+1]
		isLocalMax := derivs[i-1] < derivs[i] && derivs[i] > derivs[i+1]
		if isLocalMin || isLocalMax {
			candidates = append(candidates, candidate{lat: lats[i], theta: thetas[i]})
		}
	}
	if len(candidates) == 0 {
		return MissingJetResult(crossLat)
	}

	best := candidates[0]
	bestShear := math.Abs(intensAt(best.lat))
	for _, c := range candidates[1:] {
		shear := math.Abs(intensAt(c.lat))
		switch {
		case shear > bestShear:
			best, bestShear = c, shear
		case shear == bestShear && math.Abs(c.lat) < math.Abs(best.lat):
			best = c
		}
	}

	return JetResult{
		Lat:      best.lat,
		Intens:   intensAt(best.lat),
		ThetaLev: best.theta,
		CrossLat: crossLat,
	}
}
