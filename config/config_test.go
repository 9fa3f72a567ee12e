package config

import (
	"testing"
	"time"
)

// ── ParsePort ────────────────────────────────────────────────────────

func TestParsePort(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"6969", 6969, false},
		{"1", 1, false},
		{"65535", 65535, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			port, err := ParsePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePort(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if err == nil && port != tt.want {
				t.Errorf("got %d, want %d", port, tt.want)
			}
		})
	}
}

// ── Defaults ─────────────────────────────────────────────────────────

func TestNewAppliesReferenceDefaults(t *testing.T) {
	cfg := New()
	if cfg.BanLimit != 10*time.Minute {
		t.Errorf("BanLimit = %v, want 10m", cfg.BanLimit)
	}
	if cfg.MessageRate != time.Second {
		t.Errorf("MessageRate = %v, want 1s", cfg.MessageRate)
	}
	if cfg.StrikeLimit != 10 {
		t.Errorf("StrikeLimit = %d, want 10", cfg.StrikeLimit)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
}

// ── Validate ─────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"listen ok", func(c *Config) { c.Listen = true; c.LocalPort = 6969 }, false},
		{"listen missing port", func(c *Config) { c.Listen = true }, true},
		{"listen port out of range", func(c *Config) { c.Listen = true; c.LocalPort = 70000 }, true},
		{"connect ok", func(c *Config) { c.Host = "example.com" }, false},
		{"connect missing host", func(c *Config) {}, true},
		{"connect port out of range", func(c *Config) { c.Host = "example.com"; c.Port = 0 }, true},
		{"zero strike limit", func(c *Config) { c.Host = "h"; c.StrikeLimit = 0 }, true},
		{"negative message rate", func(c *Config) { c.Host = "h"; c.MessageRate = -time.Second }, true},
		{"zero message rate ok", func(c *Config) { c.Host = "h"; c.MessageRate = 0 }, false},
		{"zero ban limit", func(c *Config) { c.Listen = true; c.LocalPort = 1; c.BanLimit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
