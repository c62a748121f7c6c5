package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/repositories"
	"worklog/pkg/logger"
)

// Константы ошибок репозитория заметок.
const (
	ErrUpsertingNote = "failed to upsert note"
	ErrDeletingNote  = "failed to delete note"
	ErrGettingNote   = "failed to get note"
	ErrListingNotes  = "failed to list notes"
	ErrUpdatingNote  = "failed to update note"
	ErrScanningNote  = "failed to scan note"
)

const noteColumns = `id, user_id, note_date, content, created_at, updated_at`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPool
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPool) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Upsert атомарно вставляет заметку или обновляет содержимое существующей
// по естественному ключу (user_id, note_date).
func (r *NoteRepository) Upsert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Upsert"))
	log.Debug(ctx, "upserting note",
		zap.Int64("userID", note.UserID),
		zap.Time("date", note.Date))

	var saved entities.Note
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, note_date, content) VALUES ($1, $2, $3)
         ON CONFLICT (user_id, note_date)
         DO UPDATE SET content = EXCLUDED.content, updated_at = now()
         RETURNING `+noteColumns,
		note.UserID, note.Date, note.Content,
	).Scan(&saved.ID, &saved.UserID, &saved.Date, &saved.Content, &saved.CreatedAt, &saved.UpdatedAt)

	if err != nil {
		log.Error(ctx, ErrUpsertingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpsertingNote, err)
	}

	log.Debug(ctx, "note upserted", zap.Int64("noteID", saved.ID))
	return &saved, nil
}

// DeleteByDate удаляет заметку пользователя на дату. Возвращает false,
// если заметки на эту дату не было.
func (r *NoteRepository) DeleteByDate(ctx context.Context, userID int64, date time.Time) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.DeleteByDate"))
	log.Debug(ctx, "deleting note by date", zap.Int64("userID", userID), zap.Time("date", date))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE user_id = $1 AND note_date = $2`,
		userID, date,
	)
	if err != nil {
		log.Error(ctx, ErrDeletingNote, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrDeletingNote, err)
	}

	return result.RowsAffected() > 0, nil
}

// GetByID получает заметку по идентификатору независимо от владельца.
// Возвращает nil без ошибки, если заметки не существует.
func (r *NoteRepository) GetByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.Int64("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+`
         FROM notes
         WHERE id = $1`,
		noteID,
	).Scan(&note.ID, &note.UserID, &note.Date, &note.Content, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, ErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGettingNote, err)
	}

	return &note, nil
}

// List получает все заметки пользователя, упорядоченные по дате и id.
func (r *NoteRepository) List(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.Int64("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+`
         FROM notes
         WHERE user_id = $1
         ORDER BY note_date, id`,
		userID,
	)
	if err != nil {
		log.Error(ctx, ErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingNotes, err)
	}
	defer rows.Close()

	return r.collectNotes(ctx, rows)
}

// ListByRange получает заметки пользователя в диапазоне дат включительно,
// упорядоченные по дате и id.
func (r *NoteRepository) ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByRange"))
	log.Debug(ctx, "listing notes by range",
		zap.Int64("userID", userID),
		zap.Time("from", from),
		zap.Time("to", to))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+`
         FROM notes
         WHERE user_id = $1 AND note_date BETWEEN $2 AND $3
         ORDER BY note_date, id`,
		userID, from, to,
	)
	if err != nil {
		log.Error(ctx, ErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingNotes, err)
	}
	defer rows.Close()

	return r.collectNotes(ctx, rows)
}

// UpdateContent обновляет содержимое заметки по идентификатору.
// Возвращает nil без ошибки, если заметки не существует.
func (r *NoteRepository) UpdateContent(ctx context.Context, noteID int64, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.UpdateContent"))
	log.Debug(ctx, "updating note content", zap.Int64("noteID", noteID))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes SET content = $1, updated_at = now()
         WHERE id = $2
         RETURNING `+noteColumns,
		content, noteID,
	).Scan(&note.ID, &note.UserID, &note.Date, &note.Content, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, ErrUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpdatingNote, err)
	}

	return &note, nil
}

// Delete удаляет заметку по идентификатору.
func (r *NoteRepository) Delete(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, ErrDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.Int64("noteID", noteID))
		return entities.ErrNoteNotFound
	}

	return nil
}

// collectNotes вычитывает строки результата в срез заметок.
func (r *NoteRepository) collectNotes(ctx context.Context, rows pgx.Rows) ([]*entities.Note, error) {
	log := logger.Log(ctx)

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.UserID, &note.Date, &note.Content, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, ErrScanningNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanningNote, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingNotes, err)
	}

	return notes, nil
}
