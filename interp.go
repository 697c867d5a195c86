package stjpv

import "math"

// InterpolateOnPV implements the Vertical Interpolator contract of §4.1:
// given a target PV* and an IPV(theta) column restricted to theta_domain,
// locate the theta at which IPV crosses PV* and return the companion
// scalar field F evaluated at that same (theta, lat) point via linear
// interpolation in theta. BuildTropopauseCurve calls it once per row with
// f=u: the returned thetaCross is the dynamic tropopause curve point and
// fCross is the jet intensity there.
//
// prevThetaCross is the crossing theta found at the previous latitude row
// (NaN if this is the first row); when more than one bracket exists
// (non-monotone IPV near the tropopause), the bracket whose crossing is
// nearest prevThetaCross is kept, preserving curve continuity per §4.1's
// edge case. If no bracket exists in the column, both return values are
// NaN (§4.1 failure mode: the column contributes no point).
func InterpolateOnPV(theta, ipv, f []float64, pvTarget, prevThetaCross float64) (thetaCross, fCross float64) {
	type bracket struct{ i int }
	var candidates []bracket
	lastFinite := -1
	for i := 0; i < len(theta); i++ {
		if math.IsNaN(ipv[i]) || math.IsNaN(f[i]) {
			continue
		}
		if lastFinite >= 0 {
			a, b := ipv[lastFinite]-pvTarget, ipv[i]-pvTarget
			if (a <= 0 && b >= 0) || (a >= 0 && b <= 0) {
				if a != b { // avoid division by zero on a flat run
					candidates = append(candidates, bracket{lastFinite})
				}
			}
		}
		lastFinite = i
	}
	if len(candidates) == 0 {
		return math.NaN(), math.NaN()
	}
	best := candidates[0]
	if len(candidates) > 1 && !math.IsNaN(prevThetaCross) {
		bestDist := math.Inf(1)
		for _, cand := range candidates {
			t := crossTheta(theta, ipv, pvTarget, cand.i)
			d := math.Abs(t - prevThetaCross)
			if d < bestDist {
				bestDist = d
				best = cand
			}
		}
	}
	i := best.i
	j := nextFinite(ipv, f, i)
	t := crossThetaPair(theta[i], theta[j], ipv[i], ipv[j], pvTarget)
	frac := 0.0
	if ipv[j] != ipv[i] {
		frac = (pvTarget - ipv[i]) / (ipv[j] - ipv[i])
	}
	fc := f[i] + frac*(f[j]-f[i])
	return t, fc
}

func nextFinite(ipv, f []float64, from int) int {
	for j := from + 1; j < len(ipv); j++ {
		if !math.IsNaN(ipv[j]) && !math.IsNaN(f[j]) {
			return j
		}
	}
	return from
}

func crossTheta(theta, ipv []float64, pvTarget float64, i int) float64 {
	j := i + 1
	for j < len(ipv) && math.IsNaN(ipv[j]) {
		j++
	}
	if j >= len(ipv) {
		return theta[i]
	}
	return crossThetaPair(theta[i], theta[j], ipv[i], ipv[j], pvTarget)
}

func crossThetaPair(thetaA, thetaB, ipvA, ipvB, pvTarget float64) float64 {
	if ipvB == ipvA {
		return thetaA
	}
	frac := (pvTarget - ipvA) / (ipvB - ipvA)
	return thetaA + frac*(thetaB-thetaA)
}

// BuildTropopauseCurve assembles the DynamicTropopauseCurve for one
// (time, lon, hemisphere) cell: for every latitude row in latIdx (already
// restricted to the hemisphere), call InterpolateOnPV with f=u; its
// crossing theta is the curve point, and the previous row's crossing theta
// is threaded through for the continuity rule. It also returns the jet-intensity
// candidate (u at the same crossing) per latitude, aligned index-for-index
// with the curve, since the Selector (§4.5) needs both together.
func BuildTropopauseCurve(theta []float64, ipvByLat, uByLat [][]float64, latByRow []float64, pvTarget float64) (curve DynamicTropopauseCurve, intensByLat []float64) {
	intensByLat = make([]float64, 0, len(latByRow))
	prev := math.NaN()
	for row, lat := range latByRow {
		thetaCross, uCross := InterpolateOnPV(theta, ipvByLat[row], uByLat[row], pvTarget, prev)
		if math.IsNaN(thetaCross) {
			continue
		}
		curve.Points = append(curve.Points, CurvePoint{Lat: lat, Theta: thetaCross})
		intensByLat = append(intensByLat, uCross)
		prev = thetaCross
	}
	return curve, intensByLat
}
