package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studymarket/pkg/logger"
)

// RequestLogger writes one structured line per request. It expects the
// RequestID middleware to run first.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if uid, ok := c.Get("uid").(int64); ok {
				fields = append(fields, zap.Int64("user_id", uid))
			}

			switch {
			case res.Status >= 500:
				logger.L().Error("request", fields...)
			case res.Status >= 400:
				logger.L().Warn("request", fields...)
			default:
				logger.L().Info("request", fields...)
			}
			return nil
		}
	}
}
