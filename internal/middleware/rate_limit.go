package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

// KeyFunc picks the bucket a request draws from
type KeyFunc func(r *http.Request) string

// ClientIP keys requests by remote address. The router runs chi's RealIP
// first, so proxy headers are already folded into RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimiter hands out one token bucket per key
type RateLimiter struct {
	buckets sync.Map // key -> *rate.Limiter
	rate    rate.Limit
	burst   int
	key     KeyFunc
	sweep   *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter allows requestsPerSecond per client IP with the given burst
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
		key:   ClientIP,
		sweep: time.NewTicker(sweepInterval),
		done:  make(chan struct{}),
	}

	go rl.sweepFullBuckets()

	return rl
}

// NewAuthRateLimiter allows 5 guest sign-ups or resumes per minute per IP
func NewAuthRateLimiter() *RateLimiter {
	return NewRateLimiter(5.0/60.0, 5)
}

// KeyBy swaps the bucket key
func (rl *RateLimiter) KeyBy(key KeyFunc) *RateLimiter {
	rl.key = key
	return rl
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	if limiter, ok := rl.buckets.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.buckets.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	return limiter.(*rate.Limiter)
}

// A full bucket holds no state worth keeping
func (rl *RateLimiter) sweepFullBuckets() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.sweep.C:
			rl.buckets.Range(func(key, value interface{}) bool {
				if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}

// RateLimit rejects requests over the key's budget with 429
func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.bucket(rl.key(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.rate)))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(dto.APIResponse{
				Success: false,
				Message: "Too many requests",
				Error:   "Rate limit exceeded. Please try again later.",
			})
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(int(limiter.Tokens()), 0)))
		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds is the time one token takes to come back, rounded up
func retryAfterSeconds(limit rate.Limit) int {
	if limit <= 0 {
		return 60
	}
	// The epsilon absorbs float noise such as 1/(5/60) = 12.000000000000002
	return max(int(math.Ceil(1/float64(limit)-1e-9)), 1)
}

// Close stops the sweeper. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() {
		rl.sweep.Stop()
		close(rl.done)
	})
}
