package app

import (
	"fmt"
	"time"

	"worklog/internal/server/domain/billing"
)

// Ключи кэша месячных выборок. Значение - JSON соответствующего ответа.
func notesAllKey(userID int64) string {
	return fmt.Sprintf("notes:%d:all", userID)
}

func notesMonthKey(userID int64, year, month int) string {
	return fmt.Sprintf("notes:%d:%04d-%02d", userID, year, month)
}

func earningsMonthKey(userID int64, year, month int) string {
	return fmt.Sprintf("earnings:%d:%04d-%02d", userID, year, month)
}

func summaryKey(userID int64, year, month int) string {
	return fmt.Sprintf("summary:%d:%04d-%02d", userID, year, month)
}

// noteKeysFor возвращает ключи, которые затрагивает изменение заметки на дату.
func noteKeysFor(userID int64, date time.Time) []string {
	return []string{
		notesAllKey(userID),
		notesMonthKey(userID, date.Year(), int(date.Month())),
	}
}

// earningKeysFor возвращает ключи, которые затрагивает изменение записи
// заработка на дату: месячная выборка и сводка расчетного периода,
// содержащего дату.
func earningKeysFor(userID int64, date time.Time) []string {
	cycleYear, cycleMonth := billing.WindowContaining(date)
	return []string{
		earningsMonthKey(userID, date.Year(), int(date.Month())),
		summaryKey(userID, cycleYear, cycleMonth),
	}
}
