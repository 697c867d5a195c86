package stjpv

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Grid holds the coordinate axes shared by every field in a dataset: an
// ordered list of latitudes, longitudes, isentropic levels and time
// stamps. Each axis must be 1-D and strictly monotonic.
type Grid struct {
	Lat   []float64 // degrees north, -90..90
	Lon   []float64 // degrees east, 0..360 or -180..180
	Theta []float64 // K, strictly increasing
	Time  []time.Time
}

// Validate checks the grid invariants named in §3: each axis is 1-D (a
// plain slice satisfies that) and strictly monotonic, and enough points
// exist to do anything useful with them.
func (g Grid) Validate() error {
	if len(g.Lat) < 2 {
		return fmt.Errorf("stjpv: grid: need at least 2 latitudes, got %d", len(g.Lat))
	}
	if len(g.Theta) < 2 {
		return fmt.Errorf("stjpv: grid: need at least 2 theta levels, got %d", len(g.Theta))
	}
	if len(g.Time) == 0 {
		return fmt.Errorf("stjpv: grid: time axis is empty")
	}
	if err := strictlyMonotonic("lat", g.Lat); err != nil {
		return err
	}
	if err := strictlyMonotonic("theta", g.Theta); err != nil {
		return err
	}
	if g.Theta[0] > g.Theta[len(g.Theta)-1] {
		return fmt.Errorf("stjpv: grid: theta must be strictly ascending")
	}
	if len(g.Lon) > 0 {
		if err := strictlyMonotonic("lon", g.Lon); err != nil {
			return err
		}
	}
	hasNH, hasSH := false, false
	for _, lat := range g.Lat {
		if lat > 0 {
			hasNH = true
		}
		if lat < 0 {
			hasSH = true
		}
	}
	if !hasNH || !hasSH {
		return fmt.Errorf("stjpv: grid: latitude axis must cover both hemispheres")
	}
	return nil
}

func strictlyMonotonic(name string, axis []float64) error {
	if len(axis) < 2 {
		return nil
	}
	ascending := axis[1] > axis[0]
	for i := 1; i < len(axis); i++ {
		if ascending && axis[i] <= axis[i-1] {
			return fmt.Errorf("stjpv: grid: %s axis is not strictly ascending at index %d", name, i)
		}
		if !ascending && axis[i] >= axis[i-1] {
			return fmt.Errorf("stjpv: grid: %s axis is not strictly descending at index %d", name, i)
		}
	}
	return nil
}

// ThetaDomain returns the indices of g.Theta that fall within [s, e]
// inclusive, used to restrict computation to the configured theta_s/theta_e
// band (default 310-400 K) before any interpolation is attempted.
func (g Grid) ThetaDomain(s, e float64) []int {
	idx := make([]int, 0, len(g.Theta))
	for i, th := range g.Theta {
		if th >= s && th <= e {
			idx = append(idx, i)
		}
	}
	return idx
}

// Hemisphere is a tagged enum carrying everything that differs between
// the northern and southern hemisphere computation: the sign to apply to
// PV*, the direction a monotonic latitude sweep must run, and which
// latitudes belong to the hemisphere. The extremum search in FindJetCore
// takes both local minima and local maxima of dtheta/dlat in either
// hemisphere, so no argrelmin/argrelmax choice is carried here. This replaces the
// inheritance-based NH/SH dispatch named in §9's Design Notes.
type Hemisphere uint8

const (
	// NH is the Northern Hemisphere.
	NH Hemisphere = iota + 1
	// SH is the Southern Hemisphere.
	SH
)

func (h Hemisphere) String() string {
	switch h {
	case NH:
		return "NH"
	case SH:
		return "SH"
	default:
		panic("stjpv: unknown hemisphere")
	}
}

// PVSign returns the signed PV* target for this hemisphere, given the
// configured (positive) PV magnitude.
func (h Hemisphere) PVSign(pvMagnitude float64) float64 {
	switch h {
	case NH:
		return pvMagnitude
	case SH:
		return -pvMagnitude
	default:
		panic("stjpv: unknown hemisphere")
	}
}

// Ascending reports whether the monotonicity cleaner must enforce an
// ascending (NH) or descending (SH) latitude sequence.
func (h Hemisphere) Ascending() bool {
	return h == NH
}

// SelectLat returns the indices of lat belonging to this hemisphere,
// ordered from the equator towards the pole (ascending latitude for NH,
// descending for SH) whatever the order of the grid's latitude axis, so
// rows reach the monotonicity cleaner in the direction it enforces.
func (h Hemisphere) SelectLat(lat []float64) []int {
	idx := make([]int, 0, len(lat))
	for i, l := range lat {
		if h == NH && l > 0 {
			idx = append(idx, i)
		} else if h == SH && l < 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return math.Abs(lat[idx[a]]) < math.Abs(lat[idx[b]]) })
	return idx
}
