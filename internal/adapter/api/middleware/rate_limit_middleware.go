package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
	"vehiql/pkg/response"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if ok, wait := limiter.Allow(ip); !ok {
				logger.Warn("rate limit exceeded for %s, retry in %s", ip, wait)
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", wait))
			}

			return next(c)
		}
	}
}
