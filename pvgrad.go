package stjpv

import "gonum.org/v1/gonum/interp"

// PVGradMetric is the dynamic-tropopause slope method (§4): extract the
// PV* isosurface, clean it to a monotonic curve, fit it in the
// configured polynomial basis, locate the thermal-tropopause crossing,
// and search the fitted curve for the jet core. This is the primary
// metric; MaxWindMetric is the supplementary alternative.
type PVGradMetric struct{}

func (PVGradMetric) Name() string { return "pv_grad" }

func (PVGradMetric) Find(in CellInput) JetResult {
	cfg := in.Config
	pvTarget := in.Hemi.PVSign(cfg.PVValue)

	curve, intens := BuildTropopauseCurve(in.Theta, in.IPVByLat, in.UByLat, in.Lat, pvTarget)
	curve = CleanMonotonic(curve, in.Hemi)
	if len(curve.Points) < cfg.FitDeg+1 {
		return MissingJetResult(nanVal)
	}

	trop := ThermalTropopauseCurve{Lat: in.Lat, Theta: in.TropTheta}
	crossLat, ok := FindTropopauseCrossing(trop, curve, in.Hemi)
	if !ok {
		return MissingJetResult(nanVal)
	}

	basis, err := BasisByName(cfg.Poly)
	if err != nil {
		return MissingJetResult(crossLat)
	}
	coeffs := basis.Fit(curve.Lats(), curve.Thetas(), cfg.FitDeg)

	intensAt := intensityInterpolator(curve.Lats(), intens)
	return FindJetCore(basis, coeffs, cfg.MinLat, cfg.MaxLat, crossLat, in.Hemi, intensAt)
}

// intensityInterpolator returns a function giving the jet-intensity
// sample at an arbitrary latitude, linearly interpolated between the
// per-row samples produced alongside the tropopause curve (§4.5 needs
// intensity at whatever latitude the curve search lands on, not just at
// the original grid rows).
func intensityInterpolator(lat, intens []float64) func(float64) float64 {
	if len(lat) < 2 {
		return func(float64) float64 { return nanVal }
	}
	pl := &interp.PiecewiseLinear{}
	x, y := sortedCopy(lat, intens)
	if err := pl.Fit(x, y); err != nil {
		return func(float64) float64 { return nanVal }
	}
	lo, hi := x[0], x[len(x)-1]
	return func(l float64) float64 {
		if l < lo {
			l = lo
		}
		if l > hi {
			l = hi
		}
		return pl.Predict(l)
	}
}
