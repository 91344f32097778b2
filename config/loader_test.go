package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WSFAN_URL", "ws://env.example:9000/ws")
	t.Setenv("WSFAN_SESSIONS", "7")
	t.Setenv("WSFAN_TIMEOUT", "5")
	t.Setenv("WSFAN_QUEUE_SIZE", "64")
	t.Setenv("WSFAN_VERBOSE", "2")
	t.Setenv("WSFAN_DRY_RUN", "yes")

	cfg := &Config{URL: DefaultURL, Sessions: DefaultSessions}
	LoadFromEnv(cfg)

	if cfg.URL != "ws://env.example:9000/ws" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Sessions != 7 {
		t.Errorf("Sessions = %d, want 7", cfg.Sessions)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", cfg.DialTimeout)
	}
	if cfg.QueueSize != 64 {
		t.Errorf("QueueSize = %d, want 64", cfg.QueueSize)
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d, want 2", cfg.Verbose)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be set")
	}
}

func TestLoadFromEnv_EmptyKeepsDefaults(t *testing.T) {
	t.Setenv("WSFAN_URL", "")
	t.Setenv("WSFAN_SESSIONS", "")

	cfg := &Config{URL: DefaultURL, Sessions: DefaultSessions}
	LoadFromEnv(cfg)

	if cfg.URL != DefaultURL {
		t.Errorf("URL = %q, want default", cfg.URL)
	}
	if cfg.Sessions != DefaultSessions {
		t.Errorf("Sessions = %d, want default", cfg.Sessions)
	}
}

func TestLoadFromEnv_MalformedNumbersIgnored(t *testing.T) {
	t.Setenv("WSFAN_SESSIONS", "many")
	t.Setenv("WSFAN_QUEUE_SIZE", "-3")

	cfg := &Config{Sessions: DefaultSessions, QueueSize: DefaultQueueSize}
	LoadFromEnv(cfg)

	if cfg.Sessions != DefaultSessions {
		t.Errorf("Sessions = %d, want default", cfg.Sessions)
	}
	if cfg.QueueSize != DefaultQueueSize {
		t.Errorf("QueueSize = %d, want default", cfg.QueueSize)
	}
}
