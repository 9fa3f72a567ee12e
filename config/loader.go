package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GOCHAT_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GOCHAT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("GOCHAT_PORT"); v > 0 {
		cfg.LocalPort = v
		cfg.Port = v
	}
	if envBool("GOCHAT_LISTEN") {
		cfg.Listen = true
	}
	if v := os.Getenv("GOCHAT_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := envDuration("GOCHAT_BAN_LIMIT"); v > 0 {
		cfg.BanLimit = v
	}
	if v := envDuration("GOCHAT_MESSAGE_RATE"); v > 0 {
		cfg.MessageRate = v
	}
	if v := envInt("GOCHAT_STRIKE_LIMIT"); v > 0 {
		cfg.StrikeLimit = v
	}
	if v := envInt("GOCHAT_TIMEOUT"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v := envInt("GOCHAT_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}
