// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request once the handler chain returns,
// with the matched route pattern alongside the raw path so board and
// request ids do not explode the cardinality of log queries.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		fields := []any{
			"method", c.Method(),
			"route", c.Route().Path,
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"request_id", reqID,
		}
		if err != nil {
			log.Errorw("http request failed", append(fields, "error", err)...)
			return err
		}
		log.Infow("http request", fields...)
		return nil
	}
}
