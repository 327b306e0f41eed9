package middleware

import (
	"sync"
	"time"

	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an IP's bucket is kept after its last request.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. It protects the login
// endpoint against password guessing. Buckets idle for idleLimiterTTL are
// dropped.
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter allows perMinute requests per IP with the given burst.
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= idleLimiterTTL {
		l.sweep(now)
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// sweep drops buckets not used within idleLimiterTTL. Callers hold l.mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, client := range l.clients {
		if now.Sub(client.lastSeen) >= idleLimiterTTL {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// Len returns the number of tracked client IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit rejects requests over the limit with 429.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			apierrors.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			return
		}
		c.Next()
	}
}
