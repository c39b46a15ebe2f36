package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/tradechart/internal/domain/dto"
)

// Defaults used when RateLimiter is given a non-positive limit or window.
var (
	window = time.Minute
	limit  = 60
)

// client is the per-IP token bucket and the last time it was used.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP and forgets buckets idle
// for longer than ttl.
type ipLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	perSecond rate.Limit
	burst     int
	ttl       time.Duration
	swept     time.Time
}

func newIPLimiter(perWindow int, w time.Duration) *ipLimiter {
	return &ipLimiter{
		clients:   make(map[string]*client),
		perSecond: rate.Limit(float64(perWindow) / w.Seconds()),
		burst:     perWindow,
		ttl:       3 * w,
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) > l.ttl {
		for k, cl := range l.clients {
			if now.Sub(cl.lastSeen) > l.ttl {
				delete(l.clients, k)
			}
		}
		l.swept = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimiter limits the number of requests per client IP with a token bucket.
//
// Behavior:
//   - Each IP may burst up to perWindow requests; tokens refill evenly over w
//     (default: 60 requests per 1 minute).
//   - Limiter state is kept in memory and is local to the returned handler.
//   - If the bucket is empty, returns HTTP 429 Too Many Requests.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60, time.Minute))
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{
//	    "message": "rate limit exceeded",
//	    "timestamp": "2024-04-02T15:04:05Z"
//	}
func RateLimiter(perWindow int, w time.Duration) gin.HandlerFunc {
	if perWindow <= 0 {
		perWindow = limit
	}
	if w <= 0 {
		w = window
	}
	l := newIPLimiter(perWindow, w)

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
