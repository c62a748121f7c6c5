// Package postgres содержит реализации репозиториев на PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"worklog/internal/server/ports/repositories"
)

// PgxPool - минимальный контракт пула соединений, который используют
// репозитории. Его реализуют pgxpool.Pool и pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPool
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPool) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}

// EarningRepository возвращает репозиторий записей заработка.
func (f *RepositoryFactory) EarningRepository() repositories.EarningRepository {
	return NewEarningRepository(f.pool)
}

// scanDecimal преобразует текстовое представление NUMERIC в decimal.
func scanDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing numeric value %q: %w", raw, err)
	}
	return d, nil
}
