package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-simulator/internal/logger"
)

// RequestLog writes one structured line per request.
func RequestLog(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			ctx := log.WithFields(req.Context(), map[string]any{
				"method":      req.Method,
				"path":        req.URL.Path,
				"status":      c.Response().Status,
				"duration_ms": time.Since(start).Milliseconds(),
				"cache":       c.Response().Header().Get("X-Cache"),
			})
			log.Info(ctx, "request")
			return nil
		}
	}
}
