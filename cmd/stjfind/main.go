package main

import (
	"flag"
	"log"

	"github.com/yyang9301/stj-pv"
)

// This code reads the run configuration, opens the input dataset, finds
// the subtropical jet core for every time step, and writes the result.

var inputFile string

func init() {
	flag.StringVar(&inputFile, "input", "", "input NetCDF dataset")
}

func main() {
	flag.Parse()
	if inputFile == "" {
		log.Fatal("no -input dataset provided")
	}

	cfg := stjpv.LoadConfig()

	ds, err := stjpv.NewNetCDFDataset(inputFile)
	if err != nil {
		log.Fatalf("opening %s: %s", inputFile, err)
	}
	defer ds.Close()

	g, err := ds.Grid()
	if err != nil {
		log.Fatalf("reading grid: %s", err)
	}
	if err := g.Validate(); err != nil {
		log.Fatalf("invalid grid: %s", err)
	}
	ipv, err := ds.IPV()
	if err != nil {
		log.Fatalf("reading ipv: %s", err)
	}
	wind, err := ds.Wind()
	if err != nil {
		log.Fatalf("reading wind: %s", err)
	}
	trop, err := ds.ThermalTropopause()
	if err != nil {
		log.Fatalf("reading thermal tropopause: %s", err)
	}

	driver, err := stjpv.NewDriver(&cfg)
	if err != nil {
		log.Fatalf("building driver: %s", err)
	}
	result := driver.Run(g, ipv, wind, trop)

	toWrite := result.Zonal
	outLen := len(g.Time)
	if cfg.ZonalOpt == "none" {
		lonN := len(g.Lon)
		if lonN == 0 {
			lonN = 1
		}
		outLen = len(g.Time) * lonN
		toWrite = map[stjpv.Hemisphere][]stjpv.JetResult{}
		for hemi, raw := range result.Raw {
			toWrite[hemi] = stjpv.FlattenRaw(raw)
		}
	}

	out, err := stjpv.NewNetCDFWriter(cfg.OutputFile, outLen, cfg)
	if err != nil {
		log.Fatalf("opening output %s: %s", cfg.OutputFile, err)
	}
	if err := out.WriteResults(result.Grid, toWrite); err != nil {
		log.Fatalf("writing results: %s", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("closing output: %s", err)
	}
}
