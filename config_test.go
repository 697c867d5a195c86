package stjpv

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected the default configuration to validate, got %s", err)
	}
}

func TestConfigValidateThetaBand(t *testing.T) {
	cfg := defaultConfig()
	cfg.ThetaS = 400
	cfg.ThetaE = 310
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when theta_s >= theta_e")
	}
}

func TestConfigValidateLatBand(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinLat = 70
	cfg.MaxLat = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when min_lat >= max_lat")
	}
}

func TestConfigValidateFitDeg(t *testing.T) {
	cfg := defaultConfig()
	cfg.FitDeg = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for fit_deg < 1")
	}
}

func TestConfigValidateUnknownPoly(t *testing.T) {
	cfg := defaultConfig()
	cfg.Poly = "quintic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognised polynomial basis")
	}
}

func TestConfigValidateUnknownZonalOpt(t *testing.T) {
	cfg := defaultConfig()
	cfg.ZonalOpt = "geometric_mean"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognised zonal_opt")
	}
}

func TestConfigValidateUnknownMetric(t *testing.T) {
	cfg := defaultConfig()
	cfg.Metric = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognised metric")
	}
}
