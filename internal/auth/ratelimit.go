package auth

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "spotbook/internal/errors"
)

// limiterIdle is how long an unused bucket is kept.
const limiterIdle = 10 * time.Minute

type callerLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per caller. It must run after
// UserMiddleware; requests without an identity are keyed by remote address.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*callerLimiter
	perMin    int
	lastSweep time.Time
	now       func() time.Time
	log       *zap.Logger
}

func NewRateLimiter(perMin int, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*callerLimiter),
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
		log:       log,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterIdle {
		l.sweep(now)
	}

	c, ok := l.limiters[key]
	if !ok {
		c = &callerLimiter{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.limiters[key] = c
	}
	c.lastSeen = now
	return c.lim
}

// sweep drops idle buckets. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	for key, c := range l.limiters {
		if now.Sub(c.lastSeen) >= limiterIdle {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ""
		if id, ok := UserFromContext(r.Context()); ok {
			key = id.UserID
		}
		if key == "" {
			key = r.RemoteAddr
		}
		if !l.limiter(key).Allow() {
			l.log.Warn("rate limit exceeded", zap.String("key", key), zap.String("path", r.URL.Path))
			apperrors.WriteJSON(w, apperrors.ErrTooManyRequests("rate limit exceeded, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
