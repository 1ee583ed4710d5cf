// Package log implements a logging middleware
package log

import (
	"net/http"
	"time"

	"github.com/focusguard/core/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Config struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper
	Logger  log.Logger
}

// NewWithConfig returns a middleware for logging HTTP requests. Failed requests are
// logged as warnings, requests that change state (e.g. starting or cancelling a session)
// as info, and everything else as debug.
func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Logger == nil {
		config.Logger = log.New("HTTP")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"client":      c.RealIP(),
				"method":      req.Method,
				"path":        req.URL.RequestURI(),
				"status":      res.Status,
				"status_text": http.StatusText(res.Status),
				"size_bytes":  res.Size,
				"latency_ms":  time.Since(start).Milliseconds(),
			}

			if id := c.Param("id"); len(id) != 0 {
				fields["session"] = id
			}

			logger := config.Logger.WithFields(fields)

			switch {
			case res.Status >= 400:
				logger.Warn().Log("")
			case req.Method != http.MethodGet && req.Method != http.MethodHead:
				logger.Info().Log("")
			default:
				logger.Debug().Log("")
			}

			return nil
		}
	}
}
