package middleware

import (
	"time"

	"listings-console/internal/pkg/logging"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxRequestIDKey = "request_id"

type AccessLogMiddleware struct {
	logger *logging.Logger
}

func NewAccessLogMiddleware(logger *logging.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger.With("component", "http")}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		keyvals := []any{
			"rid", rid,
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"latency", time.Since(start),
			"resp_bytes", len(c.Response().Body()),
			"ua", c.Get("User-Agent"),
		}

		switch {
		case status >= 500:
			m.logger.Error("http access", keyvals...)
		case status >= 400:
			m.logger.Warn("http access", keyvals...)
		default:
			m.logger.Info("http access", keyvals...)
		}

		return err
	}
}
