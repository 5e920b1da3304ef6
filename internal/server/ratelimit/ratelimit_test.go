package ratelimit

import (
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    3,
		GenerateLimit:   1,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("client", "/generate-brand-content")
		if !allowed {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestLimiter_DefaultTier(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("client", "/health")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if info.Limit != 3 {
			t.Errorf("expected limit 3, got %d", info.Limit)
		}
		if info.Remaining != 3-(i+1) {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 3-(i+1), info.Remaining)
		}
	}

	allowed, info := l.Allow("client", "/health")
	if allowed {
		t.Error("fourth request should be rejected")
	}
	if info.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("expected positive retry-after on rejection")
	}
}

func TestLimiter_GenerateTierIsStricter(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("client", "/generate-brand-content")
	if !allowed {
		t.Fatal("first generation request should be allowed")
	}
	if info.Limit != 1 {
		t.Errorf("expected generate limit 1, got %d", info.Limit)
	}

	if allowed, _ = l.Allow("client", "/generate-brand-content"); allowed {
		t.Error("second generation request should be rejected")
	}

	// The preview endpoint shares the generation tier.
	if allowed, _ = l.Allow("client", "/generate-brand-content-preview"); allowed {
		t.Error("preview shares the generation window and should be rejected")
	}
}

func TestLimiter_TiersAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	if allowed, _ := l.Allow("client", "/generate-brand-content"); !allowed {
		t.Fatal("generation request should be allowed")
	}
	if allowed, _ := l.Allow("client", "/generate-brand-content"); allowed {
		t.Fatal("generation tier should be exhausted")
	}

	// The default tier keeps its own counter.
	if allowed, _ := l.Allow("client", "/health"); !allowed {
		t.Error("default tier should be unaffected by the generation tier")
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("alice", "/generate-brand-content")
	if allowed, _ := l.Allow("alice", "/generate-brand-content"); allowed {
		t.Fatal("alice should be limited")
	}
	if allowed, _ := l.Allow("bob", "/generate-brand-content"); !allowed {
		t.Error("bob has their own window and should be allowed")
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	cfg := testConfig()
	cfg.Window = 20 * time.Millisecond
	l := NewLimiter(cfg)
	defer l.Stop()

	l.Allow("client", "/generate-brand-content")
	if allowed, _ := l.Allow("client", "/generate-brand-content"); allowed {
		t.Fatal("window should be exhausted")
	}

	time.Sleep(30 * time.Millisecond)

	if allowed, _ := l.Allow("client", "/generate-brand-content"); !allowed {
		t.Error("request should be allowed after the window resets")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_GENERATE_LIMIT", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Error("rate limiting should default to enabled")
	}
	if cfg.DefaultLimit != 300 {
		t.Errorf("expected default limit 300, got %d", cfg.DefaultLimit)
	}
	if cfg.GenerateLimit != 10 {
		t.Errorf("expected generate limit 10, got %d", cfg.GenerateLimit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("expected window 1m, got %s", cfg.Window)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_GENERATE_LIMIT", "2")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := LoadConfig()
	if cfg.DefaultLimit != 50 || cfg.GenerateLimit != 2 || cfg.Window != 30*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("expected rate limiting disabled")
	}
}
