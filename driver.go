package stjpv

import (
	"math"
	"sort"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/stat"
)

// Driver runs a JetMetric across every time step, longitude and
// hemisphere of a dataset, the same bounded-goroutine-over-a-work-queue
// shape NewMission uses to stream propagation output: a fixed pool of
// workers pulls (timeIndex, lonIndex) cells off a channel, each result
// lands at its own disjoint index, and wg.Wait() blocks until every
// worker has drained the queue.
type Driver struct {
	Config *Config
	Metric JetMetric
	Logger kitlog.Logger
	// Workers bounds how many cells are processed concurrently. NewDriver
	// sets 4; Run treats any value below 1 as 1.
	Workers int
}

// NewDriver builds a Driver for cfg, resolving its metric name.
func NewDriver(cfg *Config) (*Driver, error) {
	metric, err := MetricByName(cfg.Metric)
	if err != nil {
		return nil, err
	}
	return &Driver{Config: cfg, Metric: metric, Logger: NewLogger("driver"), Workers: 4}, nil
}

// Result holds one run's jet cores, zonally aggregated per time step
// and hemisphere, plus the raw per-longitude cells the aggregation was
// computed from.
type Result struct {
	Grid Grid
	// Raw[hemi][timeIdx] is the per-longitude JetResult slice.
	Raw map[Hemisphere][][]JetResult
	// Zonal[hemi] is one JetResult per time step, aggregated across
	// longitude per the configured zonal_opt.
	Zonal map[Hemisphere][]JetResult
}

// Append concatenates another run's per-time-step data onto r, in time
// order, for multi-year accumulation across separate dataset opens.
func (r *Result) Append(other *Result) {
	for hemi, raw := range other.Raw {
		r.Raw[hemi] = append(r.Raw[hemi], raw...)
	}
	for hemi, zonal := range other.Zonal {
		r.Zonal[hemi] = append(r.Zonal[hemi], zonal...)
	}
	r.Grid.Time = append(r.Grid.Time, other.Grid.Time...)
}

type cellJob struct {
	t, lonIdx int
	hemi      Hemisphere
}

type cellOutcome struct {
	job    cellJob
	result JetResult
}

// Run executes the metric across every (time, lon, hemisphere) cell in
// ipv/wind/trop, restricted to cfg.ThetaS/ThetaE, and zonally aggregates
// each time step's longitudes per cfg.ZonalOpt.
func (d *Driver) Run(g Grid, ipv *IPVField, wind *WindField, trop *ThermalTropopause) *Result {
	cfg := d.Config
	thetaIdx := g.ThetaDomain(cfg.ThetaS, cfg.ThetaE)
	theta := make([]float64, len(thetaIdx))
	for i, k := range thetaIdx {
		theta[i] = g.Theta[k]
	}

	hemis := []Hemisphere{NH, SH}
	latIdxByHemi := map[Hemisphere][]int{}
	latByHemi := map[Hemisphere][]float64{}
	for _, h := range hemis {
		idx := h.SelectLat(g.Lat)
		latIdxByHemi[h] = idx
		lats := make([]float64, len(idx))
		for i, li := range idx {
			lats[i] = g.Lat[li]
		}
		latByHemi[h] = lats
	}

	lonN := 1
	if len(g.Lon) > 0 {
		lonN = len(g.Lon)
	}

	raw := map[Hemisphere][][]JetResult{}
	for _, h := range hemis {
		raw[h] = make([][]JetResult, len(g.Time))
		for t := range raw[h] {
			raw[h][t] = make([]JetResult, lonN)
		}
	}

	jobs := make(chan cellJob, len(g.Time)*lonN*len(hemis))
	outcomes := make(chan cellOutcome, len(g.Time)*lonN*len(hemis))
	for t := 0; t < len(g.Time); t++ {
		for lon := 0; lon < lonN; lon++ {
			for _, h := range hemis {
				jobs <- cellJob{t: t, lonIdx: lon, hemi: h}
			}
		}
	}
	close(jobs)

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcomes <- cellOutcome{job: job, result: d.evalCell(job, cfg, theta, thetaIdx, latIdxByHemi[job.hemi], latByHemi[job.hemi], ipv, wind, trop)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for oc := range outcomes {
		raw[oc.job.hemi][oc.job.t][oc.job.lonIdx] = oc.result
	}

	// zonal_opt=none leaves per-longitude positions unreduced (P5):
	// Raw already carries them, and Zonal is left empty rather than
	// silently falling through to a mean the configuration never asked
	// for.
	zonal := map[Hemisphere][]JetResult{}
	if cfg.ZonalOpt != "none" {
		for _, h := range hemis {
			zonal[h] = make([]JetResult, len(g.Time))
			for t := range zonal[h] {
				zonal[h][t] = zonalAggregate(raw[h][t], cfg.ZonalOpt)
			}
		}
	}

	d.Logger.Log("level", "info", "subsys", "driver", "status", "complete", "times", len(g.Time), "lons", lonN)
	return &Result{Grid: g, Raw: raw, Zonal: zonal}
}

func (d *Driver) evalCell(job cellJob, cfg *Config, theta []float64, thetaIdx, latIdx []int, lat []float64, ipv *IPVField, wind *WindField, trop *ThermalTropopause) JetResult {
	ipvByLat := make([][]float64, len(latIdx))
	uByLat := make([][]float64, len(latIdx))
	for i, li := range latIdx {
		col := ipv.Column(job.t, li, job.lonIdx)
		wcol := wind.Column(job.t, li, job.lonIdx)
		ipvByLat[i] = selectIdx(col, thetaIdx)
		uByLat[i] = selectIdx(wcol, thetaIdx)
	}
	tropRow := trop.Row(job.t)
	tropTheta := make([]float64, len(latIdx))
	for i, li := range latIdx {
		tropTheta[i] = tropRow[li]
	}

	in := CellInput{
		Theta:     theta,
		IPVByLat:  ipvByLat,
		UByLat:    uByLat,
		Lat:       lat,
		TropTheta: tropTheta,
		Hemi:      job.hemi,
		Config:    cfg,
	}
	return d.Metric.Find(in)
}

// FlattenRaw concatenates a hemisphere's per-time-step, per-longitude
// results (time-major, then longitude) into one sequence, for writing
// out the zonal_opt=none case where no cross-longitude reduction is
// performed.
func FlattenRaw(raw [][]JetResult) []JetResult {
	var out []JetResult
	for _, row := range raw {
		out = append(out, row...)
	}
	return out
}

func selectIdx(v []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = v[k]
	}
	return out
}

// zonalAggregate collapses one time step's per-longitude results down
// to a single JetResult, per the `zonal_opt` configuration: "mean"
// averages finite latitudes/intensities/theta levels with gonum/stat,
// "median" takes the middle value of the sorted finite latitudes. Run
// never calls this for "none" — there is no single-value reduction for
// that mode, so it is guarded out before reaching here.
func zonalAggregate(cells []JetResult, mode string) JetResult {
	lats := finiteOf(cells, func(r JetResult) float64 { return r.Lat })
	if len(lats) == 0 {
		return MissingJetResult(math.NaN())
	}
	intens := finiteOf(cells, func(r JetResult) float64 { return r.Intens })
	thetas := finiteOf(cells, func(r JetResult) float64 { return r.ThetaLev })
	crossLats := finiteOf(cells, func(r JetResult) float64 { return r.CrossLat })

	switch mode {
	case "median":
		return JetResult{
			Lat:      medianOf(lats),
			Intens:   medianOf(intens),
			ThetaLev: medianOf(thetas),
			CrossLat: medianOf(crossLats),
		}
	default: // "mean"
		return JetResult{
			Lat:      stat.Mean(lats, nil),
			Intens:   stat.Mean(intens, nil),
			ThetaLev: stat.Mean(thetas, nil),
			CrossLat: stat.Mean(crossLats, nil),
		}
	}
}

func finiteOf(cells []JetResult, sel func(JetResult) float64) []float64 {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.Missing() {
			continue
		}
		v := sel(c)
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func medianOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
