package middleware

import (
	"net/http"
	"strconv"
	"time"

	"jacha_aru_api_go/logger"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc returns the bucket key (defaults to the client IP)
	KeyFunc func(c echo.Context) string
	// Message is returned with the 429
	Message string
}

// RateLimiter is a fixed-window limiter. Each key's counter expires with its
// window, go-cache evicts it afterwards.
type RateLimiter struct {
	config RateLimitConfig
	hits   *gocache.Cache
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "too many requests, please try again later"
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return &RateLimiter{
		config: config,
		hits:   gocache.New(config.Window, 2*config.Window),
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.config.KeyFunc(c)

			if rl.allow(key) {
				return next(c)
			}

			logger.From(c.Request().Context()).Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.Path()),
			)
			c.Response().Header().Set("Retry-After", retryAfter(rl.config.Window))
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

func (rl *RateLimiter) allow(key string) bool {
	if err := rl.hits.Add(key, 1, rl.config.Window); err == nil {
		return rl.config.Requests >= 1
	}
	n, err := rl.hits.IncrementInt(key, 1)
	if err != nil {
		// expired between Add and Increment; start a new window
		rl.hits.Set(key, 1, rl.config.Window)
		return true
	}
	return n <= rl.config.Requests
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// AuthRateLimiter builds the per-IP limiter for /auth routes
func AuthRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Requests: perMinute,
		Window:   time.Minute,
		Message:  "too many authentication attempts, please wait a minute",
	})
}
