package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/entrypoint/dto"
)

const (
	// DefaultRateLimit is the default number of requests per caller and window.
	DefaultRateLimit = 30
	// DefaultRateWindow is the default length of a rate limit window.
	DefaultRateWindow = time.Minute
)

// rateWindow counts the requests of one caller in the current window.
type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter limits requests per caller in fixed windows.
// Authenticated callers are keyed by token subject, anonymous ones by client IP.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per period.
// Non-positive values fall back to the defaults.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if period <= 0 {
		period = DefaultRateWindow
	}
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := GetSubjectFromContext(c)
		if !ok || key == "" {
			key = "ip:" + c.ClientIP()
		} else {
			key = "sub:" + key
		}

		remaining, resetAt, allowed := rl.take(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			wait := resetAt.Sub(rl.now()).Seconds()
			c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait)))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// take counts one request for key and reports what is left of its window.
func (rl *RateLimiter) take(key string) (remaining int, resetAt time.Time, allowed bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(rl.period)}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return 0, w.resetAt, false
	}
	w.count++
	return rl.limit - w.count, w.resetAt, true
}

// Prune drops windows that have ended.
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// Run prunes ended windows every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune()
		}
	}
}
