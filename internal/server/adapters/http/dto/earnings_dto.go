package dto

import (
	"github.com/shopspring/decimal"

	"worklog/internal/server/domain/entities"
)

// SaveEarningRequest содержит данные для сохранения заработка за день.
// Отсутствующие денежные поля трактуются как ноль.
type SaveEarningRequest struct {
	UserID      int64           `json:"userId"`
	RecordDate  string          `json:"recordDate"`
	DailyWage   decimal.Decimal `json:"dailyWage"`
	OvertimePay decimal.Decimal `json:"overtimePay"`
	Allowance   decimal.Decimal `json:"allowance"`
}

// EarningResponse представляет запись заработка в ответе API.
type EarningResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	RecordDate  string          `json:"recordDate"`
	DailyWage   decimal.Decimal `json:"dailyWage"`
	OvertimePay decimal.Decimal `json:"overtimePay"`
	Allowance   decimal.Decimal `json:"allowance"`
}

// NewEarningResponse преобразует доменную запись заработка в ответ API.
func NewEarningResponse(earning *entities.DailyEarning) *EarningResponse {
	return &EarningResponse{
		ID:          earning.ID,
		UserID:      earning.UserID,
		RecordDate:  earning.RecordDate.Format(DateLayout),
		DailyWage:   earning.DailyWage,
		OvertimePay: earning.OvertimePay,
		Allowance:   earning.Allowance,
	}
}

// NewEarningListResponse преобразует выборку записей заработка в ответ API.
func NewEarningListResponse(earnings []*entities.DailyEarning) []*EarningResponse {
	out := make([]*EarningResponse, 0, len(earnings))
	for _, earning := range earnings {
		out = append(out, NewEarningResponse(earning))
	}
	return out
}
