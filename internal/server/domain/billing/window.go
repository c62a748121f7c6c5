// Package billing содержит чистые функции расчета календарных окон:
// календарный месяц и расчетный период с 21-го числа по 20-е следующего месяца.
package billing

import "time"

// CycleStartDay - день месяца, с которого начинается расчетный период.
const CycleStartDay = 21

// Window - включительный с обеих сторон диапазон календарных дат.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains сообщает, попадает ли дата в диапазон (включительно).
func (w Window) Contains(date time.Time) bool {
	d := truncate(date)
	return !d.Before(w.From) && !d.After(w.To)
}

// MonthWindow возвращает окно календарного месяца: с первого числа по
// последний день месяца. Последний день вычисляется как нулевой день
// следующего месяца.
func MonthWindow(year, month int) Window {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return Window{From: from, To: to}
}

// BillingWindow возвращает расчетный период для месяца: с 21-го числа
// указанного месяца по 20-е число следующего. Декабрь переходит на январь
// следующего года.
func BillingWindow(year, month int) Window {
	from := time.Date(year, time.Month(month), CycleStartDay, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month)+1, CycleStartDay-1, 0, 0, 0, 0, time.UTC)
	return Window{From: from, To: to}
}

// WindowContaining возвращает год и месяц расчетного периода, в который
// попадает дата: с 21-го числа дата относится к периоду своего месяца,
// до 20-го включительно - к периоду предыдущего. Январь переходит на
// декабрь предыдущего года.
func WindowContaining(date time.Time) (year, month int) {
	d := truncate(date)
	if d.Day() >= CycleStartDay {
		return d.Year(), int(d.Month())
	}
	prev := d.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

// truncate отбрасывает время суток, оставляя календарную дату в UTC.
func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
