// Package api определяет интерфейсы прикладного уровня,
// которые потребляют HTTP обработчики.
package api

import (
	"context"
	"time"

	"worklog/internal/server/domain/entities"
)

// AuthResult - результат успешной аутентификации.
type AuthResult struct {
	User        *entities.User
	AccessToken string
	ExpiresAt   time.Time
}

// AuthUseCase определяет операции регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (*entities.User, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// SaveNoteResult - результат сохранения заметки. При пустом содержимом
// заметка на дату удаляется, Deleted выставлен, Note равен nil.
type SaveNoteResult struct {
	Note    *entities.Note
	Deleted bool
}

// NoteUseCase определяет операции над заметками.
type NoteUseCase interface {
	SaveNote(ctx context.Context, userID int64, date time.Time, content string) (*SaveNoteResult, error)
	ListNotes(ctx context.Context, userID int64) ([]*entities.Note, error)
	ListNotesByMonth(ctx context.Context, userID int64, year, month int) ([]*entities.Note, error)
	UpdateNote(ctx context.Context, userID, noteID int64, content string) (*entities.Note, error)
	DeleteNote(ctx context.Context, userID, noteID int64) error
}

// EarningUseCase определяет операции над записями заработка.
type EarningUseCase interface {
	SaveEarning(ctx context.Context, earning *entities.DailyEarning) (*entities.DailyEarning, error)
	ListByMonth(ctx context.Context, userID int64, year, month int) ([]*entities.DailyEarning, error)
	MonthlySummary(ctx context.Context, userID int64, year, month int) (*entities.MonthlySummary, error)
}
