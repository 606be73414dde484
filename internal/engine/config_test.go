package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }, true},
		{"negative cell size", func(c *Config) { c.CellSize = -1e-4 }, true},
		{"NaN cell size", func(c *Config) { c.CellSize = math.NaN() }, true},
		{"infinite cell size", func(c *Config) { c.CellSize = math.Inf(1) }, true},
		{"zero radius", func(c *Config) { c.VisibilityRadius = 0 }, false},
		{"negative radius", func(c *Config) { c.VisibilityRadius = -1 }, true},
		{"no tokens", func(c *Config) { c.MaxInitialTokens = 0 }, true},
		{"probability one", func(c *Config) { c.SpawnProbability = 1 }, true},
		{"negative probability", func(c *Config) { c.SpawnProbability = -0.1 }, true},
		{"autosave off", func(c *Config) { c.AutosaveInterval = 0 }, false},
		{"negative autosave", func(c *Config) { c.AutosaveInterval = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrConfiguration) {
					t.Fatalf("Validate() = %v, want ErrConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
