// Package repositories определяет интерфейсы репозиториев сервиса.
package repositories

import (
	"context"

	"worklog/internal/server/domain/entities"
)

// UserRepository определяет интерфейс для работы с пользователями.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
}
