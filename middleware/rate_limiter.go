package middleware

import (
	"net/http"
	"sync"
	"time"

	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerMinute = 200
	limiterIdleTTL           = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds one limiter per client IP and drops those idle past idleTTL.
type rateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	perMin    int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiterStore(perMin int, idleTTL time.Duration) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*clientLimiter),
		perMin:   perMin,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		for key, cl := range s.limiters {
			if now.Sub(cl.lastSeen) >= s.idleTTL {
				delete(s.limiters, key)
			}
		}
		s.lastSweep = now
	}

	cl, exists := s.limiters[ip]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware limits each client IP to perMinute requests, allowing that many in a burst.
// The IP comes from gin's ClientIP, so forwarding headers only count from trusted proxies.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return rateLimit(newRateLimiterStore(perMinute, limiterIdleTTL))
}

func rateLimit(store *rateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Message: "Too many requests, please try again later."})
			return
		}
		c.Next()
	}
}
