package postgres_test

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/server/adapters/postgres"
	"worklog/internal/server/domain/entities"
)

var earningColumns = []string{"id", "user_id", "record_date", "daily_wage", "overtime_pay", "allowance", "updated_at"}

var sumColumns = []string{"coalesce", "coalesce", "coalesce"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEarningRepository_Upsert(t *testing.T) {
	ctx := testContext(t)

	recordDate := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	input := &entities.DailyEarning{
		UserID:      1,
		RecordDate:  recordDate,
		DailyWage:   dec("500"),
		OvertimePay: dec("0"),
		Allowance:   dec("50"),
	}

	t.Run("insert returns persisted amounts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO daily_earnings \(user_id, record_date, daily_wage, overtime_pay, allowance\)`).
			WithArgs(input.UserID, input.RecordDate, "500", "0", "50").
			WillReturnRows(pgxmock.NewRows(earningColumns).
				AddRow(int64(11), int64(1), recordDate, "500.00", "0.00", "50.00", now))

		repo := postgres.NewEarningRepository(mock)
		saved, err := repo.Upsert(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, int64(11), saved.ID)
		assert.True(t, saved.DailyWage.Equal(dec("500")), "daily wage must round-trip")
		assert.True(t, saved.Allowance.Equal(dec("50")), "allowance must round-trip")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict keeps one row per user and date", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		// Повторная запись за ту же дату: та же строка, новые значения.
		mock.ExpectQuery(`ON CONFLICT \(user_id, record_date\)`).
			WithArgs(input.UserID, input.RecordDate, "500", "0", "50").
			WillReturnRows(pgxmock.NewRows(earningColumns).
				AddRow(int64(11), int64(1), recordDate, "500.00", "0.00", "50.00", now))

		repo := postgres.NewEarningRepository(mock)
		saved, err := repo.Upsert(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(11), saved.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO daily_earnings`).
			WithArgs(input.UserID, input.RecordDate, "500", "0", "50").
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewEarningRepository(mock)
		saved, err := repo.Upsert(ctx, input)

		require.Error(t, err)
		assert.Nil(t, saved)
		assert.Contains(t, err.Error(), postgres.ErrUpsertingEarning)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEarningRepository_ListByRange(t *testing.T) {
	ctx := testContext(t)

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	t.Run("rows ordered by record date", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM daily_earnings\s+WHERE user_id = \$1 AND record_date BETWEEN \$2 AND \$3\s+ORDER BY record_date`).
			WithArgs(int64(1), from, to).
			WillReturnRows(pgxmock.NewRows(earningColumns).
				AddRow(int64(11), int64(1), from.AddDate(0, 0, 14), "500.00", "0.00", "50.00", now).
				AddRow(int64(12), int64(1), from.AddDate(0, 0, 15), "450.00", "30.00", "0.00", now))

		repo := postgres.NewEarningRepository(mock)
		earnings, err := repo.ListByRange(ctx, 1, from, to)

		require.NoError(t, err)
		require.Len(t, earnings, 2)
		assert.True(t, earnings[0].DailyWage.Equal(dec("500")))
		assert.True(t, earnings[1].OvertimePay.Equal(dec("30")))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty month yields empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM daily_earnings`).
			WithArgs(int64(1), from, to).
			WillReturnRows(pgxmock.NewRows(earningColumns))

		repo := postgres.NewEarningRepository(mock)
		earnings, err := repo.ListByRange(ctx, 1, from, to)

		require.NoError(t, err)
		assert.Empty(t, earnings)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEarningRepository_SumByRange(t *testing.T) {
	ctx := testContext(t)

	from := time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	t.Run("sums plus grand total", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(daily_wage\), 0\)::text`).
			WithArgs(int64(1), from, to).
			WillReturnRows(pgxmock.NewRows(sumColumns).AddRow("10500.00", "240.00", "600.00"))

		repo := postgres.NewEarningRepository(mock)
		summary, err := repo.SumByRange(ctx, 1, from, to)

		require.NoError(t, err)
		assert.True(t, summary.DailyWageTotal.Equal(dec("10500")))
		assert.True(t, summary.OvertimePayTotal.Equal(dec("240")))
		assert.True(t, summary.AllowanceTotal.Equal(dec("600")))
		assert.True(t, summary.GrandTotal.Equal(dec("11340")), "grand total must be the sum of the three columns")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window normalizes to zeros", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(daily_wage\), 0\)::text`).
			WithArgs(int64(1), from, to).
			WillReturnRows(pgxmock.NewRows(sumColumns).AddRow("0", "0", "0"))

		repo := postgres.NewEarningRepository(mock)
		summary, err := repo.SumByRange(ctx, 1, from, to)

		require.NoError(t, err)
		assert.True(t, summary.GrandTotal.IsZero())
		assert.True(t, summary.DailyWageTotal.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
