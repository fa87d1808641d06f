// Package month содержит календарную арифметику для месячных сроков
// заявок и бронирований.
package month

import (
	"time"
)

// EndDate возвращает дату окончания срока: start плюс months календарных месяцев.
// Используется и для вычисления даты окончания заявки, и для продления бронирования.
func EndDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// Expired сообщает, истек ли срок с датой окончания endDate на момент now.
func Expired(endDate, now time.Time) bool {
	return endDate.Before(now)
}
