package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/repositories"
	"worklog/pkg/logger"
)

// Константы ошибок репозитория пользователей.
const (
	ErrCreatingUser       = "failed to create user"
	ErrFindingUser        = "failed to find user"
)

// UserRepository реализует интерфейс repositories.UserRepository.
type UserRepository struct {
	pool PgxPool
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPool) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет нового пользователя в БД.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Create"))
	log.Debug(ctx, "creating new user", zap.String("username", user.Username))

	var created entities.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
         RETURNING id, username, password_hash, created_at, updated_at`,
		user.Username, user.PasswordHash,
	).Scan(&created.ID, &created.Username, &created.PasswordHash, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "username already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, ErrCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatingUser, err)
	}

	log.Debug(ctx, "user created", zap.Int64("userID", created.ID))
	return &created, nil
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByUsername"))
	log.Debug(ctx, "finding user", zap.String("username", username))

	var user entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
         FROM users
         WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindingUser, err)
	}

	return &user, nil
}

// FindByID находит пользователя по идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByID"))
	log.Debug(ctx, "finding user", zap.Int64("userID", id))

	var user entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
         FROM users
         WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindingUser, err)
	}

	return &user, nil
}
