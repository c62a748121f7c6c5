// Package notes содержит HTTP-обработчики для заметок.
package notes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"worklog/internal/server/adapters/http/dto"
	"worklog/internal/server/adapters/http/middleware"
	"worklog/internal/server/app"
	"worklog/internal/server/ports/api"
	"worklog/pkg/logger"
)

const (
	logHandlerSaveNote   = "handling save note request"
	logHandlerListNotes  = "handling list notes request"
	logHandlerUpdateNote = "handling update note request"
	logHandlerDeleteNote = "handling delete note request"

	errMsgInvalidRequestBody = "invalid request body"
	errMsgMissingDate        = "date is required in YYYY-MM-DD format"
	errMsgMissingText        = "text field is required"
	errMsgInvalidNoteID      = "invalid note id"
	errMsgUnpairedFilter     = "year and month must be provided together"
	errMsgInvalidFilter      = "invalid year or month"
	errMsgNoteNotFound       = "note not found"
	errMsgNotOwner           = "note belongs to another user"
	errMsgInternal           = "internal server error"

	msgNoteDeleted = "note deleted"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// SaveNote обрабатывает запрос на сохранение заметки на дату. Пустой текст
// означает удаление заметки на эту дату, подтверждение возвращается и тогда,
// когда заметки на дату не было.
func (h *Handler) SaveNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveNote"))
	log.Debug(requestCtx, logHandlerSaveNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return respond(ctx, fiber.StatusUnauthorized, "missing user identity")
	}

	var req dto.SaveNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidRequestBody)
	}
	if req.Text == nil {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingText)
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingDate)
	}

	result, err := h.noteUseCase.SaveNote(requestCtx, userID, date, *req.Text)
	if err != nil {
		log.Error(requestCtx, "failed to save note", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if result.Deleted {
		return respond(ctx, fiber.StatusOK, msgNoteDeleted)
	}
	if err := ctx.JSON(dto.NewNoteResponse(result.Note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос списка заметок. Фильтры year и month
// необязательны, но допустимы только вместе.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, logHandlerListNotes)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return respond(ctx, fiber.StatusUnauthorized, "missing user identity")
	}

	yearStr := ctx.Query("year")
	monthStr := ctx.Query("month")

	if (yearStr == "") != (monthStr == "") {
		return respond(ctx, fiber.StatusBadRequest, errMsgUnpairedFilter)
	}

	if yearStr == "" {
		allNotes, err := h.noteUseCase.ListNotes(requestCtx, userID)
		if err != nil {
			log.Error(requestCtx, "failed to list notes", zap.Error(err))
			return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
		}
		if err := ctx.JSON(dto.NewNoteListResponse(allNotes)); err != nil {
			return fmt.Errorf("error sending response: %w", err)
		}
		return nil
	}

	year, month, ok := parseYearMonth(yearStr, monthStr)
	if !ok {
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidFilter)
	}

	monthNotes, err := h.noteUseCase.ListNotesByMonth(requestCtx, userID, year, month)
	if err != nil {
		log.Error(requestCtx, "failed to list notes by month", zap.Error(err))
		return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
	}

	if err := ctx.JSON(dto.NewNoteListResponse(monthNotes)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки по идентификатору.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, logHandlerUpdateNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return respond(ctx, fiber.StatusUnauthorized, "missing user identity")
	}

	noteID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || noteID <= 0 {
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidNoteID)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidRequestBody)
	}
	if req.Text == nil {
		return respond(ctx, fiber.StatusBadRequest, errMsgMissingText)
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, userID, noteID, *req.Text)
	if err != nil {
		if !errors.Is(err, app.ErrNotFound) && !errors.Is(err, app.ErrForbidden) {
			log.Error(requestCtx, "failed to update note", zap.Error(err))
		}
		return mapNoteError(ctx, err)
	}

	if err := ctx.JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки по идентификатору.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, logHandlerDeleteNote)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return respond(ctx, fiber.StatusUnauthorized, "missing user identity")
	}

	noteID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || noteID <= 0 {
		return respond(ctx, fiber.StatusBadRequest, errMsgInvalidNoteID)
	}

	if err := h.noteUseCase.DeleteNote(requestCtx, userID, noteID); err != nil {
		if !errors.Is(err, app.ErrNotFound) && !errors.Is(err, app.ErrForbidden) {
			log.Error(requestCtx, "failed to delete note", zap.Error(err))
		}
		return mapNoteError(ctx, err)
	}

	return respond(ctx, fiber.StatusOK, msgNoteDeleted)
}

// mapNoteError преобразует ошибки бизнес-логики в HTTP статусы: отсутствие
// заметки в 404, чужую заметку в 403, все прочее в 500.
func mapNoteError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return respond(ctx, fiber.StatusNotFound, errMsgNoteNotFound)
	case errors.Is(err, app.ErrForbidden):
		return respond(ctx, fiber.StatusForbidden, errMsgNotOwner)
	}
	return respond(ctx, fiber.StatusInternalServerError, errMsgInternal)
}

func parseYearMonth(yearStr, monthStr string) (int, int, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func respond(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
