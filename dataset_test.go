package stjpv

import (
	"testing"
	"time"
)

// fakeDataset is an in-memory Dataset used to verify that Driver only
// depends on the Dataset interface, never on NetCDFDataset directly.
type fakeDataset struct {
	g     Grid
	ipv   *IPVField
	wind  *WindField
	trop  *ThermalTropopause
}

func (f *fakeDataset) Grid() (Grid, error)                         { return f.g, nil }
func (f *fakeDataset) IPV() (*IPVField, error)                      { return f.ipv, nil }
func (f *fakeDataset) Wind() (*WindField, error)                    { return f.wind, nil }
func (f *fakeDataset) ThermalTropopause() (*ThermalTropopause, error) { return f.trop, nil }

var _ Dataset = (*fakeDataset)(nil)

func newFakeDataset(t *testing.T) *fakeDataset {
	t.Helper()
	g := Grid{
		Lat:   []float64{-20, -10, 10, 20},
		Lon:   []float64{0, 180},
		Theta: []float64{320, 330, 340, 350},
		Time:  []time.Time{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	ipvData := makeField4D(1, 4, 4, 2, 1.5)
	windData := makeField4D(1, 4, 4, 2, 15.0)
	ipv, err := NewIPVField(g, ipvData)
	if err != nil {
		t.Fatalf("unexpected ipv error: %s", err)
	}
	wind, err := NewWindField(g, windData)
	if err != nil {
		t.Fatalf("unexpected wind error: %s", err)
	}
	trop, err := NewThermalTropopause(g, [][]float64{{300, 300, 300, 300}})
	if err != nil {
		t.Fatalf("unexpected tropopause error: %s", err)
	}
	return &fakeDataset{g: g, ipv: ipv, wind: wind, trop: trop}
}

func TestFakeDatasetSatisfiesInterface(t *testing.T) {
	ds := newFakeDataset(t)
	g, err := ds.Grid()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(g.Lat) != 4 {
		t.Fatalf("expected 4 latitudes, got %d", len(g.Lat))
	}
	if _, err := ds.IPV(); err != nil {
		t.Fatalf("unexpected IPV error: %s", err)
	}
	if _, err := ds.Wind(); err != nil {
		t.Fatalf("unexpected Wind error: %s", err)
	}
	if _, err := ds.ThermalTropopause(); err != nil {
		t.Fatalf("unexpected ThermalTropopause error: %s", err)
	}
}

func TestNewNetCDFDatasetMissingFile(t *testing.T) {
	if _, err := NewNetCDFDataset("/nonexistent/path/to/file.nc"); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}
