// Package auth содержит HTTP-обработчики регистрации и входа.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"worklog/internal/server/adapters/http/dto"
	"worklog/internal/server/adapters/http/middleware"
	"worklog/internal/server/domain/entities"
	"worklog/internal/server/domain/services"
	"worklog/internal/server/ports/api"
	"worklog/pkg/logger"
)

const (
	logHandlerRegister = "handling register request"
	logHandlerLogin    = "handling login request"

	errMsgInvalidRequestBody = "invalid request body"
	errMsgMissingCredentials = "username and password are required"
	errMsgWeakPassword       = "password is too short"
	errMsgUsernameTaken      = "username is already taken"
	errMsgBadCredentials     = "invalid username or password"
	errMsgInternal           = "internal server error"

	msgUserRegistered = "user registered successfully"
	msgLoginOK        = "login successful"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Register обрабатывает запрос на регистрацию пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(requestCtx, logHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidRequestBody)
	}
	if req.Username == "" || req.Password == "" {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingCredentials)
	}

	user, err := h.authUseCase.Register(requestCtx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmptyUsername):
			return respond(ctx, fiber.StatusBadRequest, errMsgMissingCredentials)
		case errors.Is(err, entities.ErrPasswordTooShort):
			return respond(ctx, fiber.StatusBadRequest, errMsgWeakPassword)
		case errors.Is(err, entities.ErrUsernameTaken):
			return respond(ctx, fiber.StatusConflict, errMsgUsernameTaken)
		}
		log.Error(requestCtx, "failed to register user", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: msgUserRegistered,
		User:    dto.NewUserResponse(user),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход. Неизвестное имя и неверный пароль
// дают один и тот же ответ 401 без уточнения причины.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, logHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidRequestBody)
	}
	if req.Username == "" || req.Password == "" {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingCredentials)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respond(ctx, fiber.StatusUnauthorized, errMsgBadCredentials)
		}
		log.Error(requestCtx, "failed to login user", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.JSON(dto.LoginResponse{
		Message:     msgLoginOK,
		User:        dto.NewUserResponse(result.User),
		AccessToken: result.AccessToken,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func respond(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
