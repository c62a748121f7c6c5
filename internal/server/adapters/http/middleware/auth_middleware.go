package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"worklog/internal/server/ports/services"
	"worklog/pkg/logger"
)

// UserIDKey - ключ Locals с идентификатором аутентифицированного пользователя.
const UserIDKey = "userID"

const (
	msgNoAuthHeader   = "no authorization header provided"
	msgBadTokenFormat = "invalid token format"
	msgInvalidToken   = "invalid or expired token"
)

// UserID достает идентификатор аутентифицированного пользователя из Locals.
func UserID(ctx fiber.Ctx) (int64, bool) {
	id, ok := ctx.Locals(UserIDKey).(int64)
	return id, ok
}

// NewAuthMiddleware создает промежуточное ПО проверки Bearer токена.
// Идентификатор пользователя берется только из токена; успешная проверка
// кладет его в Locals под UserIDKey.
func NewAuthMiddleware(tokenSvc services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, msgNoAuthHeader)
			return unauthorized(ctx, msgNoAuthHeader)
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			log.Debug(requestCtx, msgBadTokenFormat)
			return unauthorized(ctx, msgBadTokenFormat)
		}

		userID, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, msgInvalidToken, zap.Error(err))
			return unauthorized(ctx, msgInvalidToken)
		}

		ctx.Locals(UserIDKey, userID)
		return ctx.Next()
	}
}

func unauthorized(ctx fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
