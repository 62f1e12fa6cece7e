package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wpuckar/hexastock-api/pkg/logger"
)

// RequestIDKey é a local onde o middleware guarda o id da requisição.
const RequestIDKey = "request_id"

// RequestLogger atribui um request id (ou propaga o X-Request-ID recebido) e
// loga cada requisição com método, rota, status e duração.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(RequestIDKey, reqID)
		c.Set("X-Request-ID", reqID)

		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("requisição atendida")
		return err
	}
}
