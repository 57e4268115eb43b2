package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("limiter should default to enabled")
	}
	if cfg.Capacity != 120 || cfg.RefillTokens != 2 {
		t.Fatalf("unexpected defaults: capacity=%d refill=%d", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("refill interval = %s, want 1s", cfg.RefillInterval)
	}
	if cfg.KeyStrategy != "ip_route" || cfg.Prefix != "rl" {
		t.Fatalf("unexpected key config: %q/%q", cfg.KeyStrategy, cfg.Prefix)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-5")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Fatalf("refill tokens = %d, want clamp to 1", cfg.RefillTokens)
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		t.Fatalf("ttl = %s, want at least %s", cfg.TTL, min)
	}
}

func TestEnvBoolParsing(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "NO": false, "off": false,
		"banana": true, // unparseable values keep the default
	}
	for raw, want := range cases {
		t.Setenv("RL_TEST_BOOL", raw)
		if got := envBool("RL_TEST_BOOL", true); got != want {
			t.Errorf("envBool(%q) = %v, want %v", raw, got, want)
		}
	}
}
