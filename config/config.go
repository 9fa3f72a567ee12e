// Package config defines the runtime configuration for gochat and the
// validation rules that keep serve and connect modes consistent.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/KartikSindura/chat/internal/errors"
)

// Config holds every tuneable for a single gochat run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host      string // connect mode: remote host; listen mode: optional bind host
	Port      int    // connect mode: remote port
	LocalPort int    // -p: listening port
	Listen    bool
	Timeout   time.Duration // connect mode dial timeout

	// ── Relay policy ─────────────────────────────────────────────────
	Token       string        // shared secret; empty means generate at startup
	BanLimit    time.Duration // how long a banned IP is rejected
	MessageRate time.Duration // minimum interval between frames per client
	StrikeLimit int           // policy violations before a ban

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// New returns a Config populated with the defaults from defaults.go.
func New() *Config {
	return &Config{
		Port:        DefaultPort,
		BanLimit:    DefaultBanLimit,
		MessageRate: DefaultMessageRate,
		StrikeLimit: DefaultStrikeLimit,
		Timeout:     DefaultDialTimeout,
	}
}

// ── Port parsing ─────────────────────────────────────────────────────

// ParsePort parses a decimal TCP port and range-checks it.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Listen {
		if c.LocalPort == 0 {
			return &errors.ConfigError{
				Field:   "port",
				Message: "listen mode requires a port",
				Hint:    "gochat -l -p 6969",
			}
		}
		if c.LocalPort < 1 || c.LocalPort > 65535 {
			return &errors.ConfigError{
				Field:   "port",
				Value:   c.LocalPort,
				Message: "out of range 1-65535",
			}
		}
	} else {
		if c.Host == "" {
			return &errors.ConfigError{
				Field:   "host",
				Message: "hostname is required (use --help for usage)",
			}
		}
		if c.Port < 1 || c.Port > 65535 {
			return &errors.ConfigError{
				Field:   "port",
				Value:   c.Port,
				Message: "out of range 1-65535",
			}
		}
	}

	if c.StrikeLimit < 1 {
		return &errors.ConfigError{
			Field:   "strike-limit",
			Value:   c.StrikeLimit,
			Message: "must be at least 1",
		}
	}
	if c.MessageRate < 0 {
		return &errors.ConfigError{
			Field:   "message-rate",
			Value:   c.MessageRate,
			Message: "cannot be negative",
		}
	}
	if c.BanLimit <= 0 {
		return &errors.ConfigError{
			Field:   "ban-limit",
			Value:   c.BanLimit,
			Message: "must be positive",
			Hint:    "e.g. --ban-limit 10m",
		}
	}

	return nil
}
