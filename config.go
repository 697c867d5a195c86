package stjpv

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds every tunable named in §6/§7: the PV* target, the curve
// fit basis and degree, the latitude/theta search bands, the zonal
// aggregation mode, the output path, and which JetMetric to run.
type Config struct {
	PVValue    float64 // PVU, magnitude applied with hemisphere sign
	FitDeg     int
	Poly       string // "chebyshev" | "legendre" | "polynomial"
	MinLat     float64
	MaxLat     float64
	ThetaS     float64
	ThetaE     float64
	ZonalOpt   string // "mean" | "median" | "none"
	OutputFile string
	Metric     string // "pv_grad" | "max_wind"
	PresLevel  float64 // hPa; loaded from jet.pres_level but not read by either metric
}

// defaultConfig mirrors the values the original STJ_PV run used absent
// an override, so a minimal conf.toml only needs to set what it wants
// to change.
func defaultConfig() Config {
	return Config{
		PVValue:  2.0,
		FitDeg:   12,
		Poly:     "chebyshev",
		MinLat:   10.0,
		MaxLat:   70.0,
		ThetaS:   310.0,
		ThetaE:   400.0,
		ZonalOpt: "mean",
		Metric:   "pv_grad",
	}
}

// LoadConfig reads conf.toml from the directory named by the STJPV_CONFIG
// environment variable, following the same "panic if the environment
// isn't set up right" contract as the configuration loader it's
// generalised from: a missing run configuration is a programmer/operator
// error, not a recoverable one.
func LoadConfig() Config {
	confPath := os.Getenv("STJPV_CONFIG")
	if confPath == "" {
		panic("environment variable `STJPV_CONFIG` is missing or empty")
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found or invalid: %s", confPath, err))
	}

	cfg := defaultConfig()
	if viper.IsSet("jet.pv_value") {
		cfg.PVValue = viper.GetFloat64("jet.pv_value")
	}
	if viper.IsSet("jet.fit_deg") {
		cfg.FitDeg = viper.GetInt("jet.fit_deg")
	}
	if viper.IsSet("jet.poly") {
		cfg.Poly = viper.GetString("jet.poly")
	}
	if viper.IsSet("jet.min_lat") {
		cfg.MinLat = viper.GetFloat64("jet.min_lat")
	}
	if viper.IsSet("jet.max_lat") {
		cfg.MaxLat = viper.GetFloat64("jet.max_lat")
	}
	if viper.IsSet("jet.theta_s") {
		cfg.ThetaS = viper.GetFloat64("jet.theta_s")
	}
	if viper.IsSet("jet.theta_e") {
		cfg.ThetaE = viper.GetFloat64("jet.theta_e")
	}
	if viper.IsSet("jet.zonal_opt") {
		cfg.ZonalOpt = viper.GetString("jet.zonal_opt")
	}
	if viper.IsSet("jet.metric") {
		cfg.Metric = viper.GetString("jet.metric")
	}
	if viper.IsSet("jet.pres_level") {
		cfg.PresLevel = viper.GetFloat64("jet.pres_level")
	}
	cfg.OutputFile = viper.GetString("general.output_file")

	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate reports configuration inconsistencies (§7) that would
// otherwise surface much later as a silent all-missing run.
func (c Config) Validate() error {
	if c.ThetaS >= c.ThetaE {
		return fmt.Errorf("stjpv: config: theta_s (%v) must be less than theta_e (%v)", c.ThetaS, c.ThetaE)
	}
	if c.MinLat >= c.MaxLat {
		return fmt.Errorf("stjpv: config: min_lat (%v) must be less than max_lat (%v)", c.MinLat, c.MaxLat)
	}
	if c.FitDeg < 1 {
		return fmt.Errorf("stjpv: config: fit_deg must be at least 1, got %d", c.FitDeg)
	}
	if _, err := BasisByName(c.Poly); err != nil {
		return err
	}
	switch c.ZonalOpt {
	case "mean", "median", "none":
	default:
		return fmt.Errorf("stjpv: config: unknown zonal_opt %q", c.ZonalOpt)
	}
	if _, err := MetricByName(c.Metric); err != nil {
		return err
	}
	return nil
}
