package dto

import (
	"time"

	"worklog/internal/server/domain/entities"
)

// DateLayout - формат календарной даты во всех запросах и ответах API.
const DateLayout = "2006-01-02"

// SaveNoteRequest содержит данные для сохранения заметки на дату.
// Text - указатель: поле обязано присутствовать, но может быть пустым,
// пустой текст означает удаление заметки на эту дату.
type SaveNoteRequest struct {
	Date string  `json:"date"`
	Text *string `json:"text"`
}

// UpdateNoteRequest содержит данные для обновления заметки по идентификатору.
type UpdateNoteRequest struct {
	Text *string `json:"text"`
}

// NoteResponse представляет заметку в ответе API.
type NoteResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// NewNoteResponse преобразует доменную заметку в ответ API.
func NewNoteResponse(note *entities.Note) *NoteResponse {
	return &NoteResponse{
		ID:     note.ID,
		UserID: note.UserID,
		Date:   note.Date.Format(DateLayout),
		Text:   note.Content,
	}
}

// NewNoteListResponse преобразует выборку заметок в ответ API.
// Пустая выборка дает пустой массив, не null.
func NewNoteListResponse(notes []*entities.Note) []*NoteResponse {
	out := make([]*NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, NewNoteResponse(note))
	}
	return out
}

// ParseDate разбирает календарную дату запроса в UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
