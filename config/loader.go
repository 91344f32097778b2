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
// Every supported env var uses the WSFAN_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("WSFAN_URL"); v != "" {
		cfg.URL = v
	}
	if v := envInt("WSFAN_SESSIONS"); v > 0 {
		cfg.Sessions = v
	}
	if v := envInt("WSFAN_TIMEOUT"); v > 0 {
		cfg.DialTimeout = time.Duration(v) * time.Second
	}
	if v := envInt("WSFAN_QUEUE_SIZE"); v > 0 {
		cfg.QueueSize = v
	}
	if v := envInt("WSFAN_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("WSFAN_DRY_RUN") {
		cfg.DryRun = true
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
