package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"studymarket/internal/infrastructure/metrics"
	"studymarket/internal/infrastructure/ratelimit"
	"studymarket/pkg/errors"
	"studymarket/pkg/logger"
	"studymarket/pkg/response"
)

// RateLimit rejects requests from a client IP whose bucket is empty.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				logger.Warn("rate limit: rejected request from %s (retry in %v)", ip, retryAfter.Round(time.Millisecond))
				metrics.RecordRateLimited()
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests("Too many requests"))
			}
			return next(c)
		}
	}
}

// Limiters holds the buckets used across the API. Auth endpoints get a tighter one.
type Limiters struct {
	General *ratelimit.RateLimiter
	Auth    *ratelimit.RateLimiter
}

func NewLimiters(rps float64, burst int) *Limiters {
	authBurst := burst / 4
	if authBurst < 1 {
		authBurst = 1
	}
	return &Limiters{
		General: ratelimit.NewRateLimiter(rps, burst),
		Auth:    ratelimit.NewRateLimiter(rps/4, authBurst),
	}
}

func (l *Limiters) GeneralRateLimit() echo.MiddlewareFunc {
	return RateLimit(l.General)
}

func (l *Limiters) AuthRateLimit() echo.MiddlewareFunc {
	return RateLimit(l.Auth)
}

// Cleanup drops idle buckets from every limiter and returns how many were removed.
func (l *Limiters) Cleanup(maxIdle time.Duration) int {
	return l.General.Cleanup(maxIdle) + l.Auth.Cleanup(maxIdle)
}
