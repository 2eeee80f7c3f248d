package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs each request at debug level and feeds the HTTP request
// counter.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		if metrics != nil {
			metrics.HTTPRequests.WithLabelValues(c.Path(), c.Method(), strconv.Itoa(status)).Inc()
		}
		logger.Debug("request handled",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
