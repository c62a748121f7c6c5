// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"worklog/pkg/logger"
)

// RequestContextKey - ключ Locals с контекстом запроса, несущим request ID.
const RequestContextKey = "requestContext"

// RequestContext достает контекст запроса из Locals. Запасным вариантом
// служит контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(RequestContextKey).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}

// NewLoggerMiddleware создает промежуточное ПО, присваивающее запросу
// request ID и логирующее начало и завершение обработки.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get("X-Request-Id"))
		ctx.Locals(RequestContextKey, requestCtx)

		start := time.Now()
		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, "request started")

		err := ctx.Next()

		logFields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, "request failed", append(logFields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, "request completed", logFields...)
		return nil
	}
}
