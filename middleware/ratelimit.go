package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitPerIP guards unauthenticated lookup endpoints (order tracking is
// keyed on a guessable order number plus a contact string). Token bucket per
// client IP; idle buckets are dropped after an hour.
func RateLimitPerIP(r rate.Limit, burst int) gin.HandlerFunc {
	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	buckets := make(map[string]*bucket)

	go func() {
		for range time.Tick(10 * time.Minute) {
			mu.Lock()
			for ip, b := range buckets {
				if time.Since(b.lastSeen) > time.Hour {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(r, burst)}
			buckets[ip] = b
		}
		b.lastSeen = time.Now()
		mu.Unlock()

		if !b.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
