package repositories

import (
	"context"
	"time"

	"worklog/internal/server/domain/entities"
)

// EarningRepository определяет интерфейс для работы с записями заработка.
// Upsert атомарен по ключу (user_id, record_date); записи не удаляются.
type EarningRepository interface {
	Upsert(ctx context.Context, earning *entities.DailyEarning) (*entities.DailyEarning, error)
	ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.DailyEarning, error)
	SumByRange(ctx context.Context, userID int64, from, to time.Time) (*entities.MonthlySummary, error)
}
