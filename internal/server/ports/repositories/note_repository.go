package repositories

import (
	"context"
	"time"

	"worklog/internal/server/domain/entities"
)

// NoteRepository определяет интерфейс для работы с заметками.
// Upsert атомарен: вставка или обновление по естественному ключу
// (user_id, note_date) одним запросом.
type NoteRepository interface {
	Upsert(ctx context.Context, note *entities.Note) (*entities.Note, error)
	DeleteByDate(ctx context.Context, userID int64, date time.Time) (bool, error)
	GetByID(ctx context.Context, noteID int64) (*entities.Note, error)
	List(ctx context.Context, userID int64) ([]*entities.Note, error)
	ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.Note, error)
	UpdateContent(ctx context.Context, noteID int64, content string) (*entities.Note, error)
	Delete(ctx context.Context, noteID int64) error
}
