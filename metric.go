package stjpv

import "fmt"

// CellInput bundles everything a JetMetric needs to evaluate a single
// (time, lon, hemisphere) cell, already sliced down to that cell's
// latitude rows so the metric itself never touches grid indices.
type CellInput struct {
	Theta     []float64   // isentropic levels within the configured theta_s/theta_e band
	IPVByLat  [][]float64 // IPV(theta) per latitude row, aligned with Lat
	UByLat    [][]float64 // u(theta) per latitude row, aligned with Lat
	Lat       []float64   // latitude of each row, in extraction order
	TropTheta []float64   // thermal tropopause theta, aligned with Lat
	Hemi      Hemisphere
	Config    *Config
}

// JetMetric is one way of turning a cell's PV/wind columns into a jet
// core position, per §9's Design Notes dispatch: the PV-gradient method
// (PVGradMetric) and the supplementary maximum-wind method
// (MaxWindMetric) both satisfy it, and the Driver selects between them
// by the `metric` configuration key.
type JetMetric interface {
	Name() string
	Find(in CellInput) JetResult
}

// MetricByName resolves the `metric` configuration key (§6/§7) to a
// JetMetric. An unrecognised name is a configuration error, never
// guessed.
func MetricByName(name string) (JetMetric, error) {
	switch name {
	case "", "pv_grad", "stj_pv":
		return PVGradMetric{}, nil
	case "max_wind", "stj_max_wind":
		return MaxWindMetric{}, nil
	default:
		return nil, fmt.Errorf("stjpv: unknown metric %q", name)
	}
}
