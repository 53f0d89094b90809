package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateThresholdLadder(t *testing.T) {
	tests := []struct {
		name     string
		warnings []float64
		autoStop float64
		wantErr  string
	}{
		{"valid default", []float64{60, 80}, 90, ""},
		{"single tier", []float64{50}, 100, ""},
		{"descending warnings", []float64{80, 60}, 90, "strictly ascending"},
		{"duplicate warnings", []float64{60, 60}, 90, "strictly ascending"},
		{"warning out of range", []float64{0}, 90, "out of range"},
		{"warning above hundred", []float64{120}, 90, "out of range"},
		{"auto-stop below warnings", []float64{60, 80}, 70, "auto_stop_threshold"},
		{"auto-stop above hundred", []float64{60}, 110, "auto_stop_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Alerts: AlertConfig{
					WarningThresholds: tt.warnings,
					AutoStopThreshold: tt.autoStop,
				},
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.LockTimeout != 5*time.Second {
		t.Errorf("Database.LockTimeout = %s, want 5s", cfg.Database.LockTimeout)
	}
	if len(cfg.Alerts.WarningThresholds) != 2 || cfg.Alerts.AutoStopThreshold != 90 {
		t.Errorf("alert defaults = %+v, want [60 80] / 90", cfg.Alerts)
	}
	if cfg.Sweeps.PendingBatchSize != 100 {
		t.Errorf("Sweeps.PendingBatchSize = %d, want 100", cfg.Sweeps.PendingBatchSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
