package entities

import (
	"errors"
	"time"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotNoteOwner = errors.New("note belongs to another user")
)

// Note представляет собой заметку пользователя, привязанную к календарной дате.
// На каждую пару (пользователь, дата) существует не более одной заметки.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote создает новую заметку для пользователя на указанную дату.
func NewNote(userID int64, date time.Time, content string) *Note {
	now := time.Now()
	return &Note{
		UserID:    userID,
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
