package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для выпуска и проверки access токенов.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID int64, username string) (string, time.Time, error)
	ValidateAccessToken(ctx context.Context, token string) (int64, error)
}
