package server

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/logging"
)

const (
	sweepInterval = 5 * time.Minute
	visitorIdle   = 10 * time.Minute
)

// RateLimitConfig configures the per-client token buckets.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
	Enabled           bool
}

// visitor is one client's bucket. Tokens refill continuously.
type visitor struct {
	tokens float64
	seen   time.Time
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter keeps a token bucket per client key.
type RateLimiter struct {
	perMinute int
	burst     int
	enabled   bool
	logger    logging.Logger
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a limiter and its idle-visitor sweeper. A nil config
// means 5 per minute with a burst of 3. Stop must be called to end the
// sweeper.
func NewRateLimiter(cfg *RateLimitConfig, logger logging.Logger) *RateLimiter {
	if cfg == nil {
		cfg = &RateLimitConfig{RequestsPerMinute: 5, BurstSize: 3, Enabled: true}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	rl := &RateLimiter{
		perMinute: cfg.RequestsPerMinute,
		burst:     cfg.BurstSize,
		enabled:   cfg.Enabled && cfg.RequestsPerMinute > 0 && cfg.BurstSize > 0,
		logger:    logger.WithComponent("ratelimit"),
		now:       time.Now,
		visitors:  make(map[string]*visitor),
		done:      make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow spends one token for key if one is available.
func (rl *RateLimiter) Allow(key string) Decision {
	if !rl.enabled {
		return Decision{Allowed: true, Remaining: rl.burst}
	}

	now := rl.now()
	perSecond := float64(rl.perMinute) / 60

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: float64(rl.burst), seen: now}
		rl.visitors[key] = v
	}
	if elapsed := now.Sub(v.seen).Seconds(); elapsed > 0 {
		v.tokens = math.Min(float64(rl.burst), v.tokens+elapsed*perSecond)
	}
	v.seen = now

	if v.tokens >= 1 {
		v.tokens--
		return Decision{Allowed: true, Remaining: int(v.tokens)}
	}

	wait := time.Duration((1 - v.tokens) / perSecond * float64(time.Second))
	return Decision{RetryAfter: wait}
}

// Visitors returns the number of tracked clients.
func (rl *RateLimiter) Visitors() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Stop ends the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep(rl.now())
		case <-rl.done:
			return
		}
	}
}

// sweep forgets clients idle for longer than visitorIdle.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if now.Sub(v.seen) > visitorIdle {
			delete(rl.visitors, key)
		}
	}
}

// RateLimitMiddleware rejects clients that ran out of tokens with 429 and a
// JSON body shaped like every other contact response. Clients are keyed by
// ips.Of.
func RateLimitMiddleware(limiter *RateLimiter, ips *ClientIPs) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ips.Of(r)
			d := limiter.Allow(client)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.perMinute))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			h.Set("Retry-After", strconv.Itoa(retry))
			limiter.logger.Warn(r.Context(), nil, "Rate limit exceeded",
				"client_ip", client,
				"path", r.URL.Path,
				"retry_after", retry)
			writeJSON(w, http.StatusTooManyRequests, contact.Response{Error: "Too Many Requests"})
		})
	}
}
