package middleware

import (
	"context"
	"math"
	"sync"
	"time"

	"orfanato-app/config"
	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateClass string

const (
	RateGeneral RateClass = "general"
	RateAuth    RateClass = "auth"
	RateWrite   RateClass = "write"
	RateUpload  RateClass = "upload"
)

// auth-class breaches from one IP beyond this count are reported as SECURITY
const authStrikeLimit = 3

type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
	strikes      int
}

type ipRateLimiter struct {
	mu                sync.Mutex
	limiters          map[string]*limiterInfo
	requestsPerMinute int
}

func newIPRateLimiter(requestsPerMinute int) *ipRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &ipRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
	}
}

// take consumes one token for ip. When none is available it returns the
// seconds to wait and how many times ip has been refused so far.
func (i *ipRateLimiter) take(ip string, now time.Time) (retryAfter int, strikes int) {
	i.mu.Lock()
	defer i.mu.Unlock()

	info, ok := i.limiters[ip]
	if !ok {
		every := time.Minute / time.Duration(i.requestsPerMinute)
		info = &limiterInfo{limiter: rate.NewLimiter(rate.Every(every), i.requestsPerMinute)}
		i.limiters[ip] = info
	}
	info.lastAccessed = now

	res := info.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay == 0 {
		return 0, info.strikes
	}
	res.CancelAt(now)
	info.strikes++
	return int(math.Ceil(delay.Seconds())), info.strikes
}

func (i *ipRateLimiter) sweep(olderThan time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, info := range i.limiters {
		if info.lastAccessed.Before(olderThan) {
			delete(i.limiters, ip)
		}
	}
}

// RateLimiter keeps one token bucket per client IP for each route class.
type RateLimiter struct {
	classes map[RateClass]*ipRateLimiter
	now     func() time.Time
}

func NewRateLimiter(cfg config.RateLimit) *RateLimiter {
	return &RateLimiter{
		classes: map[RateClass]*ipRateLimiter{
			RateGeneral: newIPRateLimiter(cfg.GeneralPerMin),
			RateAuth:    newIPRateLimiter(cfg.AuthPerMin),
			RateWrite:   newIPRateLimiter(cfg.WritePerMin),
			RateUpload:  newIPRateLimiter(cfg.UploadPerMin),
		},
		now: time.Now,
	}
}

// RateLimit answers 429 with a retryAfter hint once the caller's bucket for
// class is empty.
func (r *RateLimiter) RateLimit(class RateClass) gin.HandlerFunc {
	l, ok := r.classes[class]
	if !ok {
		panic("unknown rate class " + string(class))
	}
	return func(c *gin.Context) {
		retryAfter, strikes := l.take(c.ClientIP(), r.now())
		if retryAfter > 0 {
			security := class == RateAuth && strikes >= authStrikeLimit
			apperr.Respond(c, apperr.TooManyRequests(retryAfter, security))
			return
		}
		c.Next()
	}
}

// Sweep drops buckets idle for ten minutes until ctx is done.
func (r *RateLimiter) Sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := r.now().Add(-10 * time.Minute)
			for _, l := range r.classes {
				l.sweep(cutoff)
			}
		}
	}
}
