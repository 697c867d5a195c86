package stjpv

import (
	"fmt"
	"math"
)

// nanVal is the canonical "no value" float, used wherever a column or
// curve search comes up empty.
var nanVal = math.NaN()

// IPVField is Ertel's isentropic potential vorticity on a (time, theta,
// lat, lon) grid, in PVU. Below-surface points may be non-finite; no
// check of how densely finite values fill the field is performed.
type IPVField struct {
	Grid Grid
	// Data is indexed [t][theta][lat][lon].
	Data [][][][]float64
}

// NewIPVField validates dimensions against g and returns the field, or an
// error if the array shape does not match the grid axes (§7 grid
// invariant violation — fatal to the run, never silent).
func NewIPVField(g Grid, data [][][][]float64) (*IPVField, error) {
	if err := checkFieldShape(g, data); err != nil {
		return nil, fmt.Errorf("stjpv: ipv field: %w", err)
	}
	return &IPVField{Grid: g, Data: data}, nil
}

// Column returns IPV(theta) for a fixed (t, lat, lon).
func (f *IPVField) Column(t, latIdx, lonIdx int) []float64 {
	col := make([]float64, len(f.Grid.Theta))
	for k := range col {
		col[k] = f.Data[t][k][latIdx][lonIdx]
	}
	return col
}

// WindField is zonal wind u(t, theta, lat, lon) in m/s. The optional
// meridional companion v is out of core scope (§3) and is not modelled
// here.
type WindField struct {
	Grid Grid
	Data [][][][]float64
}

// NewWindField validates dimensions against g.
func NewWindField(g Grid, data [][][][]float64) (*WindField, error) {
	if err := checkFieldShape(g, data); err != nil {
		return nil, fmt.Errorf("stjpv: wind field: %w", err)
	}
	return &WindField{Grid: g, Data: data}, nil
}

// Column returns u(theta) for a fixed (t, lat, lon).
func (f *WindField) Column(t, latIdx, lonIdx int) []float64 {
	col := make([]float64, len(f.Grid.Theta))
	for k := range col {
		col[k] = f.Data[t][k][latIdx][lonIdx]
	}
	return col
}

// SurfaceProxy returns u at the lowest theta level with a finite value in
// the column, a "surface" end for a shear difference. Neither metric
// calls it: FindJetCore ranks candidates by the tropopause wind alone.
// Returns NaN if no level is finite.
func (f *WindField) SurfaceProxy(t, latIdx, lonIdx int) float64 {
	for k := 0; k < len(f.Grid.Theta); k++ {
		v := f.Data[t][k][latIdx][lonIdx]
		if !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}

func checkFieldShape(g Grid, data [][][][]float64) error {
	if len(data) != len(g.Time) {
		return fmt.Errorf("time dimension mismatch: grid has %d, data has %d", len(g.Time), len(data))
	}
	for t, byTheta := range data {
		if len(byTheta) != len(g.Theta) {
			return fmt.Errorf("theta dimension mismatch at t=%d: grid has %d, data has %d", t, len(g.Theta), len(byTheta))
		}
		for k, byLat := range byTheta {
			if len(byLat) != len(g.Lat) {
				return fmt.Errorf("lat dimension mismatch at t=%d,theta=%d: grid has %d, data has %d", t, k, len(g.Lat), len(byLat))
			}
			if len(g.Lon) > 0 {
				for _, lonRow := range byLat {
					if len(lonRow) != len(g.Lon) {
						return fmt.Errorf("lon dimension mismatch at t=%d,theta=%d: grid has %d, data has %d", t, k, len(g.Lon), len(lonRow))
					}
				}
			}
		}
	}
	return nil
}

// ThermalTropopause is theta_trop(t, lat), the WMO lapse-rate tropopause
// expressed in potential temperature (K), produced by an external
// collaborator (a temperature/pressure profile processor) and consumed
// here only through this already-reduced field.
type ThermalTropopause struct {
	Grid Grid
	// Data is indexed [t][lat].
	Data [][]float64
}

// NewThermalTropopause validates dimensions against g.
func NewThermalTropopause(g Grid, data [][]float64) (*ThermalTropopause, error) {
	if len(data) != len(g.Time) {
		return nil, fmt.Errorf("stjpv: thermal tropopause: time dimension mismatch: grid has %d, data has %d", len(g.Time), len(data))
	}
	for t, row := range data {
		if len(row) != len(g.Lat) {
			return nil, fmt.Errorf("stjpv: thermal tropopause: lat dimension mismatch at t=%d: grid has %d, data has %d", t, len(g.Lat), len(row))
		}
	}
	return &ThermalTropopause{Grid: g, Data: data}, nil
}

// Row returns theta_trop(lat) for a fixed time index.
func (tt *ThermalTropopause) Row(t int) []float64 {
	return tt.Data[t]
}

// CurvePoint is a single (latitude, theta) sample of the dynamic
// tropopause curve.
type CurvePoint struct {
	Lat   float64
	Theta float64
}

// DynamicTropopauseCurve is the parametric curve {(lat_i, theta_i)} traced
// by the PV* isosurface across the restricted theta domain for one
// (time, lon, hemisphere) cell.
type DynamicTropopauseCurve struct {
	Points []CurvePoint
}

// Lats returns the latitude component of every point, in curve order.
func (c DynamicTropopauseCurve) Lats() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Lat
	}
	return out
}

// Thetas returns the theta component of every point, in curve order.
func (c DynamicTropopauseCurve) Thetas() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Theta
	}
	return out
}

// JetResult is the outcome of a single (time[, lon], hemisphere) jet
// search: latitude, intensity, theta level of the jet core, and the
// tropopause crossing latitude used as its equatorward bound. A missing
// detection is carried as an explicit flag rather than a sentinel
// position value (§9's redesign of "position set to zero then masked").
type JetResult struct {
	Lat      float64
	Intens   float64
	ThetaLev float64
	CrossLat float64
	missing  bool
}

// MissingJetResult returns the sentinel "no jet found" result.
func MissingJetResult(crossLat float64) JetResult {
	return JetResult{Lat: math.NaN(), Intens: math.NaN(), ThetaLev: math.NaN(), CrossLat: crossLat, missing: true}
}

// Missing reports whether this result represents "no jet found" for the
// cell it was computed for.
func (r JetResult) Missing() bool {
	return r.missing
}
