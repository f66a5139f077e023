package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter is a sliding-window per-IP limiter for general traffic.
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(requests int, intervalSeconds int) *RateLimiter {
	return &RateLimiter{
		rate:     requests,
		interval: time.Duration(intervalSeconds) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		defer rl.mu.Unlock()

		now := time.Now()
		cutoff := now.Add(-rl.interval)
		valid := make([]time.Time, 0, len(rl.ips[ip]))
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.rate {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		rl.ips[ip] = append(valid, now)
		c.Next()
	}
}

// NewStrictRateLimiter guards expensive or abusable endpoints: login,
// register and the AI generation routes. Buckets are per client IP so
// one abuser cannot starve everyone else's logins.
func NewStrictRateLimiter() gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(time.Minute/5), 5)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
