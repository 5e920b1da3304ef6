// Package ratelimit provides per-client request limiting. Generation
// endpoints sit on a strict tier because each request costs a model call;
// everything else shares a loose default window.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Info describes the limit state returned with every decision, used for
// X-RateLimit response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter implements fixed-window counting per (client, tier).
type Limiter struct {
	mu      sync.Mutex
	cfg     *Config
	windows map[string]*window
	stop    chan struct{}
}

// NewLimiter creates a limiter and starts its cleanup loop.
func NewLimiter(cfg *Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may proceed with a request to path.
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{}
	}

	limit := l.cfg.DefaultLimit
	tier := "default"
	if strings.HasPrefix(path, "/generate-brand-content") {
		limit = l.cfg.GenerateLimit
		tier = "generate"
	}

	now := time.Now()
	key := clientID + "|" + tier

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.cfg.Window)}
		l.windows[key] = w
	}

	info := Info{
		Limit:     limit,
		ResetTime: w.resetAt,
	}

	if w.count >= limit {
		info.Remaining = 0
		info.RetryAfter = time.Until(w.resetAt)
		return false, info
	}

	w.count++
	info.Remaining = limit - w.count
	return true, info
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	if l.cfg.Enabled {
		close(l.stop)
	}
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
