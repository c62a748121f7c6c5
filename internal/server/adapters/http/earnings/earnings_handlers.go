// Package earnings содержит HTTP-обработчики учета заработка.
package earnings

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"worklog/internal/server/adapters/http/dto"
	"worklog/internal/server/adapters/http/middleware"
	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/api"
	"worklog/pkg/logger"
)

const (
	logHandlerSaveEarning = "handling save earning request"
	logHandlerListByMonth = "handling list earnings request"
	logHandlerSummary     = "handling monthly summary request"

	errMsgInvalidRequestBody = "invalid request body"
	errMsgMissingDate        = "recordDate is required in YYYY-MM-DD format"
	errMsgMissingUserID      = "userId is required"
	errMsgInvalidParams      = "invalid userId, year or month"
	errMsgForeignUser        = "cannot access another user's earnings"
	errMsgInternal           = "internal server error"
)

// Handler обработчик HTTP-запросов для записей заработка.
type Handler struct {
	earningUseCase api.EarningUseCase
}

// NewHandler создает новый экземпляр обработчика заработка.
func NewHandler(earningUseCase api.EarningUseCase) *Handler {
	return &Handler{earningUseCase: earningUseCase}
}

// SaveEarning обрабатывает запрос на сохранение заработка за день.
// Запись можно создавать только от своего имени: userId тела обязан
// совпадать с пользователем из токена.
func (h *Handler) SaveEarning(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveEarning"))
	log.Debug(requestCtx, logHandlerSaveEarning)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return respond(ctx, fiber.StatusUnauthorized, "missing user identity")
	}

	var req dto.SaveEarningRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidRequestBody)
	}
	if req.UserID == 0 {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingUserID)
	}
	recordDate, err := dto.ParseDate(req.RecordDate)
	if err != nil {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingDate)
	}
	if req.UserID != userID {
		log.Debug(requestCtx, "save rejected: body userId differs from token user",
			zap.Int64("bodyUserID", req.UserID), zap.Int64("tokenUserID", userID))
		return respond(ctx, fiber.StatusForbidden, errMsgForeignUser)
	}

	saved, err := h.earningUseCase.SaveEarning(requestCtx, &entities.DailyEarning{
		UserID:      userID,
		RecordDate:  recordDate,
		DailyWage:   req.DailyWage,
		OvertimePay: req.OvertimePay,
		Allowance:   req.Allowance,
	})
	if err != nil {
		log.Error(requestCtx, "failed to save earning", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.JSON(dto.NewEarningResponse(saved)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListByMonth обрабатывает запрос записей заработка за календарный месяц.
func (h *Handler) ListByMonth(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListByMonth"))
	log.Debug(requestCtx, logHandlerListByMonth)

	userID, year, month, status, message := h.authorizeParams(ctx)
	if status != 0 {
		return respond(ctx, status, message)
	}

	earnings, err := h.earningUseCase.ListByMonth(requestCtx, userID, year, month)
	if err != nil {
		log.Error(requestCtx, "failed to list earnings", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.JSON(dto.NewEarningListResponse(earnings)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// MonthlySummary обрабатывает запрос сводки за расчетный период:
// с 21-го числа месяца по 20-е следующего.
func (h *Handler) MonthlySummary(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.MonthlySummary"))
	log.Debug(requestCtx, logHandlerSummary)

	userID, year, month, status, message := h.authorizeParams(ctx)
	if status != 0 {
		return respond(ctx, status, message)
	}

	summary, err := h.earningUseCase.MonthlySummary(requestCtx, userID, year, month)
	if err != nil {
		log.Error(requestCtx, "failed to compute monthly summary", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.JSON(summary); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// authorizeParams разбирает путь :userId/:year/:month и проверяет, что
// запрошенный пользователь совпадает с пользователем из токена. Нулевой
// статус означает успех.
func (h *Handler) authorizeParams(ctx fiber.Ctx) (userID int64, year, month, status int, message string) {
	tokenUserID, ok := middleware.UserID(ctx)
	if !ok {
		return 0, 0, 0, fiber.StatusUnauthorized, "missing user identity"
	}

	userID, err := strconv.ParseInt(ctx.Params("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, 0, fiber.StatusBadRequest, errMsgInvalidParams
	}
	year, err = strconv.Atoi(ctx.Params("year"))
	if err != nil || year < 1 {
		return 0, 0, 0, fiber.StatusBadRequest, errMsgInvalidParams
	}
	month, err = strconv.Atoi(ctx.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fiber.StatusBadRequest, errMsgInvalidParams
	}

	if userID != tokenUserID {
		return 0, 0, 0, fiber.StatusForbidden, errMsgForeignUser
	}

	return userID, year, month, 0, ""
}

func respond(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
