package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"worklog/internal/server/domain/entities"
	"worklog/internal/server/ports/repositories"
	"worklog/pkg/logger"
)

// Константы ошибок репозитория заработка.
const (
	ErrUpsertingEarning = "failed to upsert daily earning"
	ErrListingEarnings  = "failed to list daily earnings"
	ErrScanningEarning  = "failed to scan daily earning"
	ErrSummingEarnings  = "failed to sum daily earnings"
)

// Суммы NUMERIC переносятся текстом и разбираются в decimal на стороне Go.
const earningColumns = `id, user_id, record_date, daily_wage::text, overtime_pay::text, allowance::text, updated_at`

// EarningRepository реализует интерфейс repositories.EarningRepository.
type EarningRepository struct {
	pool PgxPool
}

// NewEarningRepository создает новый репозиторий записей заработка.
func NewEarningRepository(pool PgxPool) repositories.EarningRepository {
	return &EarningRepository{pool: pool}
}

// Upsert атомарно вставляет запись заработка или обновляет существующую
// по естественному ключу (user_id, record_date).
func (r *EarningRepository) Upsert(ctx context.Context, earning *entities.DailyEarning) (*entities.DailyEarning, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningRepository.Upsert"))
	log.Debug(ctx, "upserting daily earning",
		zap.Int64("userID", earning.UserID),
		zap.Time("recordDate", earning.RecordDate))

	row := r.pool.QueryRow(ctx,
		`INSERT INTO daily_earnings (user_id, record_date, daily_wage, overtime_pay, allowance)
         VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric)
         ON CONFLICT (user_id, record_date)
         DO UPDATE SET daily_wage = EXCLUDED.daily_wage,
                       overtime_pay = EXCLUDED.overtime_pay,
                       allowance = EXCLUDED.allowance,
                       updated_at = now()
         RETURNING `+earningColumns,
		earning.UserID, earning.RecordDate,
		earning.DailyWage.String(), earning.OvertimePay.String(), earning.Allowance.String(),
	)

	saved, err := scanEarning(row)
	if err != nil {
		log.Error(ctx, ErrUpsertingEarning, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpsertingEarning, err)
	}

	log.Debug(ctx, "daily earning upserted", zap.Int64("earningID", saved.ID))
	return saved, nil
}

// ListByRange получает записи заработка пользователя в диапазоне дат
// включительно, упорядоченные по дате по возрастанию.
func (r *EarningRepository) ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.DailyEarning, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningRepository.ListByRange"))
	log.Debug(ctx, "listing daily earnings",
		zap.Int64("userID", userID),
		zap.Time("from", from),
		zap.Time("to", to))

	rows, err := r.pool.Query(ctx,
		`SELECT `+earningColumns+`
         FROM daily_earnings
         WHERE user_id = $1 AND record_date BETWEEN $2 AND $3
         ORDER BY record_date`,
		userID, from, to,
	)
	if err != nil {
		log.Error(ctx, ErrListingEarnings, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingEarnings, err)
	}
	defer rows.Close()

	earnings := make([]*entities.DailyEarning, 0)
	for rows.Next() {
		earning, err := scanEarning(rows)
		if err != nil {
			log.Error(ctx, ErrScanningEarning, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanningEarning, err)
		}
		earnings = append(earnings, earning)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListingEarnings, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingEarnings, err)
	}

	return earnings, nil
}

// SumByRange возвращает суммы столбцов заработка за диапазон дат включительно.
// Пустой диапазон дает нулевые итоги: NULL от SUM нормализуется в ноль
// на стороне SQL.
func (r *EarningRepository) SumByRange(ctx context.Context, userID int64, from, to time.Time) (*entities.MonthlySummary, error) {
	log := logger.Log(ctx).With(zap.String("method", "EarningRepository.SumByRange"))
	log.Debug(ctx, "summing daily earnings",
		zap.Int64("userID", userID),
		zap.Time("from", from),
		zap.Time("to", to))

	var wage, overtime, allowance string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(daily_wage), 0)::text,
                COALESCE(SUM(overtime_pay), 0)::text,
                COALESCE(SUM(allowance), 0)::text
         FROM daily_earnings
         WHERE user_id = $1 AND record_date BETWEEN $2 AND $3`,
		userID, from, to,
	).Scan(&wage, &overtime, &allowance)

	if err != nil {
		log.Error(ctx, ErrSummingEarnings, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrSummingEarnings, err)
	}

	summary := entities.ZeroSummary()
	if summary.DailyWageTotal, err = scanDecimal(wage); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSummingEarnings, err)
	}
	if summary.OvertimePayTotal, err = scanDecimal(overtime); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSummingEarnings, err)
	}
	if summary.AllowanceTotal, err = scanDecimal(allowance); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSummingEarnings, err)
	}
	summary.GrandTotal = summary.DailyWageTotal.Add(summary.OvertimePayTotal).Add(summary.AllowanceTotal)

	return summary, nil
}

// scanEarning вычитывает одну строку записи заработка.
func scanEarning(row pgx.Row) (*entities.DailyEarning, error) {
	var earning entities.DailyEarning
	var wage, overtime, allowance string

	err := row.Scan(&earning.ID, &earning.UserID, &earning.RecordDate,
		&wage, &overtime, &allowance, &earning.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning earning row: %w", err)
	}

	if earning.DailyWage, err = scanDecimal(wage); err != nil {
		return nil, err
	}
	if earning.OvertimePay, err = scanDecimal(overtime); err != nil {
		return nil, err
	}
	if earning.Allowance, err = scanDecimal(allowance); err != nil {
		return nil, err
	}

	return &earning, nil
}
