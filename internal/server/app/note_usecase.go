package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"worklog/internal/server/domain/billing"
	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/api"
	"worklog/internal/server/ports/cache"
	"worklog/internal/server/ports/repositories"
	"worklog/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("caller is not the resource owner")
)

const (
	msgCacheHit       = "serving response from cache"
	msgErrCacheRead   = "cache read failed, falling back to store"
	msgErrCacheWrite  = "cache write failed"
	msgErrCacheEvict  = "cache invalidation failed"
	msgErrCacheDecode = "cached value is not decodable, falling back to store"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	cache    cache.Cache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, responseCache cache.Cache) api.NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		cache:    responseCache,
	}
}

// SaveNote сохраняет заметку пользователя на дату. Пустое (после обрезки
// пробелов) содержимое трактуется как удаление заметки на эту дату;
// отсутствие заметки при этом не является ошибкой. Непустое содержимое
// атомарно вставляется или замещает существующее.
func (uc *NoteUseCase) SaveNote(ctx context.Context, userID int64, date time.Time, content string) (*api.SaveNoteResult, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.SaveNote"), zap.Int64("userID", userID))

	if strings.TrimSpace(content) == "" {
		deleted, err := uc.noteRepo.DeleteByDate(ctx, userID, date)
		if err != nil {
			return nil, fmt.Errorf("deleting note by date: %w", err)
		}
		if deleted {
			uc.invalidate(ctx, log, userID, date)
		}
		return &api.SaveNoteResult{Deleted: true}, nil
	}

	note, err := uc.noteRepo.Upsert(ctx, entities.NewNote(userID, date, content))
	if err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}

	uc.invalidate(ctx, log, userID, date)
	return &api.SaveNoteResult{Note: note}, nil
}

// ListNotes возвращает все заметки пользователя, упорядоченные по дате.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListNotes"), zap.Int64("userID", userID))

	key := notesAllKey(userID)
	if notes, ok := uc.cachedNotes(ctx, log, key); ok {
		return notes, nil
	}

	notes, err := uc.noteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	uc.storeNotes(ctx, log, key, notes)
	return notes, nil
}

// ListNotesByMonth возвращает заметки пользователя за календарный месяц.
func (uc *NoteUseCase) ListNotesByMonth(ctx context.Context, userID int64, year, month int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.ListNotesByMonth"), zap.Int64("userID", userID))

	key := notesMonthKey(userID, year, month)
	if notes, ok := uc.cachedNotes(ctx, log, key); ok {
		return notes, nil
	}

	window := billing.MonthWindow(year, month)
	notes, err := uc.noteRepo.ListByRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("listing notes by month: %w", err)
	}

	uc.storeNotes(ctx, log, key, notes)
	return notes, nil
}

// UpdateNote обновляет содержимое заметки по идентификатору. Изменять
// заметку может только её владелец.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID int64, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.UpdateNote"),
		zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}
	if note.UserID != userID {
		log.Debug(ctx, "update rejected: caller does not own the note", zap.Int64("ownerID", note.UserID))
		return nil, ErrForbidden
	}

	updated, err := uc.noteRepo.UpdateContent(ctx, noteID, content)
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	uc.invalidate(ctx, log, userID, updated.Date)
	return updated, nil
}

// DeleteNote удаляет заметку по идентификатору. Удалять заметку может
// только её владелец.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.DeleteNote"),
		zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("getting note: %w", err)
	}
	if note == nil {
		return ErrNotFound
	}
	if note.UserID != userID {
		log.Debug(ctx, "delete rejected: caller does not own the note", zap.Int64("ownerID", note.UserID))
		return ErrForbidden
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting note: %w", err)
	}

	uc.invalidate(ctx, log, userID, note.Date)
	return nil
}

// cachedNotes пытается достать выборку заметок из кэша. Любая ошибка кэша
// приводит к чтению из базы, не к отказу.
func (uc *NoteUseCase) cachedNotes(ctx context.Context, log *logger.Logger, key string) ([]*entities.Note, bool) {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err), zap.String("key", key))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var notes []*entities.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		log.Warn(ctx, msgErrCacheDecode, zap.Error(err), zap.String("key", key))
		return nil, false
	}

	log.Debug(ctx, msgCacheHit, zap.String("key", key))
	return notes, true
}

func (uc *NoteUseCase) storeNotes(ctx context.Context, log *logger.Logger, key string, notes []*entities.Note) {
	raw, err := json.Marshal(notes)
	if err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
		return
	}
	if err := uc.cache.Set(ctx, key, string(raw), 0); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
	}
}

func (uc *NoteUseCase) invalidate(ctx context.Context, log *logger.Logger, userID int64, date time.Time) {
	if err := uc.cache.Delete(ctx, noteKeysFor(userID, date)...); err != nil {
		log.Warn(ctx, msgErrCacheEvict, zap.Error(err), zap.Int64("userID", userID))
	}
}
