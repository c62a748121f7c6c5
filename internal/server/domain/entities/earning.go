package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEarning представляет запись о заработке за один календарный день.
// На каждую пару (пользователь, дата) существует не более одной записи;
// записи обновляются на месте и никогда не удаляются.
type DailyEarning struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	RecordDate  time.Time       `json:"record_date"`
	DailyWage   decimal.Decimal `json:"daily_wage"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	Allowance   decimal.Decimal `json:"allowance"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MonthlySummary - производный агрегат: суммы по столбцам заработка за
// расчетный период плюс общий итог. Не хранится в базе, пересчитывается
// на каждый запрос.
type MonthlySummary struct {
	DailyWageTotal   decimal.Decimal `json:"daily_wage_total"`
	OvertimePayTotal decimal.Decimal `json:"overtime_pay_total"`
	AllowanceTotal   decimal.Decimal `json:"allowance_total"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// ZeroSummary возвращает сводку с нулевыми итогами.
func ZeroSummary() *MonthlySummary {
	return &MonthlySummary{
		DailyWageTotal:   decimal.Zero,
		OvertimePayTotal: decimal.Zero,
		AllowanceTotal:   decimal.Zero,
		GrandTotal:       decimal.Zero,
	}
}
