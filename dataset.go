package stjpv

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bitbucket.org/ctessum/cdf"
	"bitbucket.org/ctessum/sparse"
)

// buildCommit is the commit this binary was built from, injected at link
// time (-ldflags "-X github.com/yyang9301/stj-pv.buildCommit=..."),
// standing in for the Python original's `git rev-parse HEAD` call — a Go
// binary has no working tree to ask at runtime. Left at its zero value
// ("") when not injected, mirroring the original's GIT_ID = 'NONE'
// fallback.
var buildCommit string

// Dataset is the input collaborator: whatever can produce a Grid plus
// the IPV, wind and thermal-tropopause fields on it. NetCDFDataset is
// the concrete adapter; a test fake can satisfy this without touching
// a file at all.
type Dataset interface {
	Grid() (Grid, error)
	IPV() (*IPVField, error)
	Wind() (*WindField, error)
	ThermalTropopause() (*ThermalTropopause, error)
}

// Writer is the output collaborator: whatever can persist a run's jet
// results keyed by hemisphere.
type Writer interface {
	WriteResults(g Grid, results map[Hemisphere][]JetResult) error
	Close() error
}

// NetCDFDataset reads IPV, zonal wind and a pre-computed thermal
// tropopause off a single NetCDF file, following the variable-read
// pattern used by the preprocessor that turns raw WRF output into
// gridded model input: open once, then pull one variable's full record
// range through cdf.File.Reader.
type NetCDFDataset struct {
	raw  *os.File
	file *cdf.File
	// Variable names, defaulted by NewNetCDFDataset but overridable for
	// datasets that don't follow the usual CF naming.
	LatVar, LonVar, ThetaVar, TimeVar string
	IPVVar, UVar, TropVar             string

	grid Grid
}

// NewNetCDFDataset opens path and sets the conventional CF variable
// names; override the exported Var fields before calling Grid/IPV/etc
// if the file uses different ones.
func NewNetCDFDataset(path string) (*NetCDFDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stjpv: netcdf dataset: %w", err)
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stjpv: netcdf dataset: %w", err)
	}
	return &NetCDFDataset{
		raw:      f,
		file:     ff,
		LatVar:   "lat",
		LonVar:   "lon",
		ThetaVar: "theta",
		TimeVar:  "time",
		IPVVar:   "ipv",
		UVar:     "u",
		TropVar:  "trop_theta",
	}, nil
}

// Grid reads the coordinate axes and caches them.
func (d *NetCDFDataset) Grid() (Grid, error) {
	if len(d.grid.Lat) != 0 {
		return d.grid, nil
	}
	lat, err := d.readVector(d.LatVar)
	if err != nil {
		return Grid{}, err
	}
	lon, err := d.readVector(d.LonVar)
	if err != nil {
		return Grid{}, err
	}
	theta, err := d.readVector(d.ThetaVar)
	if err != nil {
		return Grid{}, err
	}
	rawTime, err := d.readVector(d.TimeVar)
	if err != nil {
		return Grid{}, err
	}
	epoch := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(rawTime))
	for i, hours := range rawTime {
		times[i] = CFOffsetToTime(hours/24.0, epoch)
	}
	d.grid = Grid{Lat: lat, Lon: lon, Theta: theta, Time: times}
	return d.grid, nil
}

// IPV reads the full (time, theta, lat, lon) IPV variable.
func (d *NetCDFDataset) IPV() (*IPVField, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	data, err := d.read4D(d.IPVVar, len(g.Time), len(g.Theta), len(g.Lat), len(g.Lon))
	if err != nil {
		return nil, err
	}
	return NewIPVField(g, data)
}

// Wind reads the full (time, theta, lat, lon) zonal wind variable.
func (d *NetCDFDataset) Wind() (*WindField, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	data, err := d.read4D(d.UVar, len(g.Time), len(g.Theta), len(g.Lat), len(g.Lon))
	if err != nil {
		return nil, err
	}
	return NewWindField(g, data)
}

// ThermalTropopause reads the (time, lat) thermal tropopause variable.
func (d *NetCDFDataset) ThermalTropopause() (*ThermalTropopause, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	dims := d.file.Header.Lengths(d.TropVar)
	if len(dims) != 2 {
		return nil, fmt.Errorf("stjpv: netcdf dataset: %s is not (time, lat)", d.TropVar)
	}
	flat, err := d.readFlat(d.TropVar, dims)
	if err != nil {
		return nil, err
	}
	data := make([][]float64, len(g.Time))
	nLat := len(g.Lat)
	for t := range data {
		data[t] = flat[t*nLat : (t+1)*nLat]
	}
	return NewThermalTropopause(g, data)
}

func (d *NetCDFDataset) readVector(name string) ([]float64, error) {
	dims := d.file.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("stjpv: netcdf dataset: variable %q not found", name)
	}
	return d.readFlat(name, dims)
}

// read4D reads a variable laid out (t, theta, lat, lon) into a
// sparse.DenseArray — the same gridded-buffer type the WRF/InMAP
// preprocessor uses to hold data read off a cdf.Reader — then unpacks it
// into the nested-slice shape the rest of the package works with.
func (d *NetCDFDataset) read4D(name string, nt, nk, nlat, nlon int) ([][][][]float64, error) {
	flat, err := d.readFlat(name, []int{nt, nk, nlat, nlon})
	if err != nil {
		return nil, err
	}
	arr := sparse.ZerosDense(nt, nk, nlat, nlon)
	copy(arr.Elements, flat)
	out := make([][][][]float64, nt)
	idx := 0
	for t := 0; t < nt; t++ {
		out[t] = make([][][]float64, nk)
		for k := 0; k < nk; k++ {
			out[t][k] = make([][]float64, nlat)
			for la := 0; la < nlat; la++ {
				out[t][k][la] = arr.Elements[idx : idx+nlon]
				idx += nlon
			}
		}
	}
	return out, nil
}

func (d *NetCDFDataset) readFlat(name string, dims []int) ([]float64, error) {
	n := 1
	for _, dim := range dims {
		n *= dim
	}
	start := make([]int, len(dims))
	end := make([]int, len(dims))
	for i, dim := range dims {
		end[i] = dim
	}
	r := d.file.Reader(name, start, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("stjpv: netcdf dataset: reading %q: %w", name, err)
	}
	out := make([]float64, n)
	switch vals := buf.(type) {
	case []float32:
		for i, v := range vals {
			out[i] = float64(v)
		}
	case []float64:
		copy(out, vals)
	default:
		return nil, fmt.Errorf("stjpv: netcdf dataset: unsupported type for %q", name)
	}
	return out, nil
}

// Close releases the underlying file handle.
func (d *NetCDFDataset) Close() error {
	return d.raw.Close()
}

// NetCDFWriter persists jet results as a (time, lat_band) style NetCDF
// file: one record per time step, one variable per result field per
// hemisphere, following the header-then-Define-then-Writer sequence the
// WRF-output writer uses to build a record-dimensioned file.
type NetCDFWriter struct {
	raw *os.File
	f   *cdf.File
}

// NewNetCDFWriter defines and creates path for nTime time steps. Global
// attributes record cfg (as JSON, standing in for the original's
// yaml.safe_dump of its run properties) and buildCommit (standing in for
// its GIT_ID), so every output file carries the run that produced it.
func NewNetCDFWriter(path string, nTime int, cfg Config) (*NetCDFWriter, error) {
	h := cdf.NewHeader([]string{"time"}, []int{nTime})
	h.AddAttribute("", "title", "subtropical jet core positions")
	commit := buildCommit
	if commit == "" {
		commit = "NONE"
	}
	h.AddAttribute("", "commit-id", commit)
	runProps, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("stjpv: netcdf writer: serialising config: %w", err)
	}
	h.AddAttribute("", "run_props", string(runProps))
	for _, hemi := range []string{"nh", "sh"} {
		for _, field := range []string{"lat", "intens", "theta", "cross_lat"} {
			h.AddVariable(hemi+"_"+field, []string{"time"}, []float64{0.})
		}
	}
	h.Define()
	for _, err := range h.Check() {
		if err != nil {
			return nil, fmt.Errorf("stjpv: netcdf writer: %w", err)
		}
	}
	raw, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stjpv: netcdf writer: %w", err)
	}
	f, err := cdf.Create(raw, h)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("stjpv: netcdf writer: %w", err)
	}
	return &NetCDFWriter{raw: raw, f: f}, nil
}

// WriteResults writes each hemisphere's JetResult slice in results into
// that hemisphere's pre-defined variables, one value per record.
func (w *NetCDFWriter) WriteResults(g Grid, results map[Hemisphere][]JetResult) error {
	for hemi, rs := range results {
		prefix := "nh"
		if hemi == SH {
			prefix = "sh"
		}
		lat := make([]float64, len(rs))
		intens := make([]float64, len(rs))
		theta := make([]float64, len(rs))
		crossLat := make([]float64, len(rs))
		for i, r := range rs {
			lat[i], intens[i], theta[i], crossLat[i] = r.Lat, r.Intens, r.ThetaLev, r.CrossLat
		}
		for name, vals := range map[string][]float64{
			prefix + "_lat":       lat,
			prefix + "_intens":    intens,
			prefix + "_theta":     theta,
			prefix + "_cross_lat": crossLat,
		} {
			start := []int{0}
			end := []int{len(vals)}
			wr := w.f.Writer(name, start, end)
			if _, err := wr.Write(vals); err != nil {
				return fmt.Errorf("stjpv: netcdf writer: writing %q: %w", name, err)
			}
		}
	}
	return nil
}

// Close flushes the record count and closes the underlying file.
func (w *NetCDFWriter) Close() error {
	if err := cdf.UpdateNumRecs(w.raw); err != nil {
		return err
	}
	return w.raw.Close()
}
