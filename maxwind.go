package stjpv

import "math"

// MaxWindMetric is the supplementary maximum-wind-speed method grounded
// in STJMaxWind: rather than fitting and differentiating the dynamic
// tropopause curve, it takes the raw zonal wind sampled at the PV*
// crossing theta for each latitude row and reports the latitude of
// greatest |u| within the configured band, poleward of the thermal
// tropopause crossing. It shares CellInput/JetResult with PVGradMetric
// so the Driver can run either without special-casing the result shape.
type MaxWindMetric struct{}

func (MaxWindMetric) Name() string { return "max_wind" }

func (MaxWindMetric) Find(in CellInput) JetResult {
	cfg := in.Config
	pvTarget := in.Hemi.PVSign(cfg.PVValue)

	curve, intens := BuildTropopauseCurve(in.Theta, in.IPVByLat, in.UByLat, in.Lat, pvTarget)
	curve = CleanMonotonic(curve, in.Hemi)
	if len(curve.Points) == 0 {
		return MissingJetResult(nanVal)
	}

	trop := ThermalTropopauseCurve{Lat: in.Lat, Theta: in.TropTheta}
	crossLat, ok := FindTropopauseCrossing(trop, curve, in.Hemi)
	if !ok {
		return MissingJetResult(nanVal)
	}

	// See the identical fix in FindJetCore: cfg.MinLat/MaxLat are positive
	// magnitudes, so the SH band must be mirrored onto the negative axis
	// before intersecting with the poleward-of-crossLat restriction.
	lo, hi := cfg.MinLat, cfg.MaxLat
	if in.Hemi == NH {
		lo = math.Max(lo, crossLat)
	} else {
		lo, hi = -cfg.MaxLat, -cfg.MinLat
		hi = math.Min(hi, crossLat)
	}

	bestIdx := -1
	bestAbs := -1.0
	for i, p := range curve.Points {
		if p.Lat < lo || p.Lat > hi {
			continue
		}
		if i >= len(intens) {
			continue
		}
		abs := math.Abs(intens[i])
		if math.IsNaN(abs) {
			continue
		}
		if abs > bestAbs {
			bestAbs = abs
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return MissingJetResult(crossLat)
	}

	return JetResult{
		Lat:      curve.Points[bestIdx].Lat,
		Intens:   intens[bestIdx],
		ThetaLev: curve.Points[bestIdx].Theta,
		CrossLat: crossLat,
	}
}
