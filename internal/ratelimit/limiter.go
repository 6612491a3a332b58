package ratelimit

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/modemobile/todo-rewards/internal/adapter"
)

const (
	defaultWindow      = 15 * time.Minute
	defaultMaxRequests = 100
	defaultMaxClients  = 10_000
)

// Config holds the per-client limits
type Config struct {
	// Window is the period over which MaxRequests are allowed
	Window time.Duration
	// MaxRequests is the burst a client may spend at once; it refills over Window
	MaxRequests int
	// MaxClients bounds the number of tracked clients; the least recently seen is evicted
	MaxClients int
}

// Decision is the outcome of one rate-limit check
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks request budgets per client key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request of key's budget if available
	Allow(key string) Decision

	// Close drops all tracked clients
	Close()
}

type limiter struct {
	config  Config
	clock   adapter.Clock
	every   rate.Limit
	mu      sync.Mutex
	clients *expirable.LRU[string, *rate.Limiter]
}

// NewLimiter creates a token-bucket limiter per client. A client holds
// MaxRequests tokens that refill evenly over Window; clients idle for a whole
// Window are forgotten, which is the same as a full bucket.
func NewLimiter(cfg Config, clock adapter.Clock) (Limiter, error) {
	if cfg.Window == 0 {
		cfg.Window = defaultWindow
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = defaultMaxRequests
	}
	if cfg.MaxClients == 0 {
		cfg.MaxClients = defaultMaxClients
	}
	if cfg.Window < 0 || cfg.MaxRequests < 0 || cfg.MaxClients < 0 {
		return nil, fmt.Errorf("invalid rate limit configuration: %+v", cfg)
	}

	return &limiter{
		config:  cfg,
		clock:   clock,
		every:   rate.Every(cfg.Window / time.Duration(cfg.MaxRequests)),
		clients: expirable.NewLRU[string, *rate.Limiter](cfg.MaxClients, nil, cfg.Window),
	}, nil
}

// Allow consumes one request of key's budget if available
func (l *limiter) Allow(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	bucket, ok := l.clients.Get(key)
	if !ok {
		bucket = rate.NewLimiter(l.every, l.config.MaxRequests)
	}
	// re-adding renews the idle expiry
	l.clients.Add(key, bucket)
	l.mu.Unlock()

	decision := Decision{Limit: l.config.MaxRequests}

	reservation := bucket.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		decision.RetryAfter = delay
		return decision
	}

	decision.Allowed = true
	decision.Remaining = int(math.Max(0, math.Floor(bucket.TokensAt(now))))
	return decision
}

// Close drops all tracked clients
func (l *limiter) Close() {
	l.clients.Purge()
}
