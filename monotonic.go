package stjpv

// CleanMonotonic enforces a strictly monotonic latitude sequence on a
// dynamic tropopause curve emitted in extraction order, per §4.3: sweep
// forward, and whenever the orientation test fails for the hemisphere,
// drop the offending point and restart the sweep from the same index
// rather than advancing past it. This is a direct Go port of the
// restart-the-sweep algorithm used to clean the 2 PVU line in
// STJ_IPV_metric.py's `unique_elements`, generalised from the
// "keep the first occurrence" duplicate rule to "keep the lowest theta"
// (§3 invariant) since sorting by latitude first (as the Python original
// does via np.unique) is unnecessary once duplicates resolve by theta.
func CleanMonotonic(curve DynamicTropopauseCurve, h Hemisphere) DynamicTropopauseCurve {
	pts := dedupeLowestTheta(curve.Points)
	i := 0
	for i <= len(pts)-2 {
		dphi := pts[i+1].Lat - pts[i].Lat
		violates := false
		if h.Ascending() {
			violates = dphi <= 0
		} else {
			violates = dphi >= 0
		}
		if violates {
			pts = append(pts[:i+1], pts[i+2:]...)
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
	return DynamicTropopauseCurve{Points: pts}
}

// dedupeLowestTheta collapses points sharing the same latitude down to
// the one with the lowest theta, keeping the first-seen latitude order
// (§3: "Duplicate φ values with differing θ resolve to the lowest θ
// retained").
func dedupeLowestTheta(points []CurvePoint) []CurvePoint {
	order := make([]float64, 0, len(points))
	best := make(map[float64]CurvePoint, len(points))
	for _, p := range points {
		cur, ok := best[p.Lat]
		if !ok {
			order = append(order, p.Lat)
			best[p.Lat] = p
		} else if p.Theta < cur.Theta {
			best[p.Lat] = p
		}
	}
	out := make([]CurvePoint, len(order))
	for i, lat := range order {
		out[i] = best[lat]
	}
	return out
}
