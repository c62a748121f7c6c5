package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"worklog/internal/server/domain/billing"
	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/api"
	"worklog/internal/server/ports/cache"
	"worklog/internal/server/ports/repositories"
	"worklog/pkg/logger"
)

// EarningUseCase представляет собой бизнес-логику учета заработка.
type EarningUseCase struct {
	earningRepo repositories.EarningRepository
	cache       cache.Cache
}

// NewEarningUseCase создает новый экземпляр EarningUseCase.
func NewEarningUseCase(earningRepo repositories.EarningRepository, responseCache cache.Cache) api.EarningUseCase {
	return &EarningUseCase{
		earningRepo: earningRepo,
		cache:       responseCache,
	}
}

// SaveEarning атомарно сохраняет запись заработка за день: вставляет новую
// или обновляет существующую по ключу (пользователь, дата).
func (uc *EarningUseCase) SaveEarning(ctx context.Context, earning *entities.DailyEarning) (*entities.DailyEarning, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningUseCase.SaveEarning"),
		zap.Int64("userID", earning.UserID))

	saved, err := uc.earningRepo.Upsert(ctx, earning)
	if err != nil {
		return nil, fmt.Errorf("saving daily earning: %w", err)
	}

	if err := uc.cache.Delete(ctx, earningKeysFor(saved.UserID, saved.RecordDate)...); err != nil {
		log.Warn(ctx, msgErrCacheEvict, zap.Error(err), zap.Int64("userID", saved.UserID))
	}

	return saved, nil
}

// ListByMonth возвращает записи заработка пользователя за календарный месяц,
// упорядоченные по дате по возрастанию.
func (uc *EarningUseCase) ListByMonth(ctx context.Context, userID int64, year, month int) ([]*entities.DailyEarning, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningUseCase.ListByMonth"), zap.Int64("userID", userID))

	key := earningsMonthKey(userID, year, month)
	if raw, err := uc.cache.Get(ctx, key); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err), zap.String("key", key))
	} else if raw != "" {
		var earnings []*entities.DailyEarning
		if err := json.Unmarshal([]byte(raw), &earnings); err != nil {
			log.Warn(ctx, msgErrCacheDecode, zap.Error(err), zap.String("key", key))
		} else {
			log.Debug(ctx, msgCacheHit, zap.String("key", key))
			return earnings, nil
		}
	}

	window := billing.MonthWindow(year, month)
	earnings, err := uc.earningRepo.ListByRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("listing daily earnings: %w", err)
	}

	uc.store(ctx, log, key, earnings)
	return earnings, nil
}

// MonthlySummary возвращает суммы заработка за расчетный период месяца:
// с 21-го числа указанного месяца по 20-е число следующего. Пустой период
// дает нулевые итоги.
func (uc *EarningUseCase) MonthlySummary(ctx context.Context, userID int64, year, month int) (*entities.MonthlySummary, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningUseCase.MonthlySummary"), zap.Int64("userID", userID))

	key := summaryKey(userID, year, month)
	if raw, err := uc.cache.Get(ctx, key); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err), zap.String("key", key))
	} else if raw != "" {
		var summary entities.MonthlySummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			log.Warn(ctx, msgErrCacheDecode, zap.Error(err), zap.String("key", key))
		} else {
			log.Debug(ctx, msgCacheHit, zap.String("key", key))
			return &summary, nil
		}
	}

	window := billing.BillingWindow(year, month)
	summary, err := uc.earningRepo.SumByRange(ctx, userID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("summing daily earnings: %w", err)
	}

	uc.store(ctx, log, key, summary)
	return summary, nil
}

func (uc *EarningUseCase) store(ctx context.Context, log *logger.Logger, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
		return
	}
	if err := uc.cache.Set(ctx, key, string(raw), 0); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
	}
}
