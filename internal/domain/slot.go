package domain

import (
	"time"

	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// TimeSlot represents a (field, date, start, end) interval - one bookable
// unit of time. Value type, не хранится отдельно от бронирования
type TimeSlot struct {
	FieldID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps проверяет пересечение двух слотов
// Пересечение есть только при совпадении поля и даты и реальном наложении
// интервалов: start1 < end2 && start2 < end1
// Используем строгие неравенства - граничащие слоты (18:00-19:00 и
// 19:00-20:00) НЕ пересекаются
func Overlaps(a, b TimeSlot) bool {
	if a.FieldID != b.FieldID {
		return false
	}
	if !isSameDay(a.Date, b.Date) {
		return false
	}
	return a.StartTime.IsBefore(b.EndTime) && b.StartTime.IsBefore(a.EndTime)
}

// FindConflicts возвращает все активные бронирования, чьи слоты пересекаются
// с кандидатом. Cancelled/completed/conflicted никогда не блокируют слот.
// Без побочных эффектов, O(n) по бронированиям дня - на масштабе площадки
// (несколько полей, десятки слотов в день) этого достаточно
func FindConflicts(candidate TimeSlot, existing []*Reservation) []*Reservation {
	var conflicts []*Reservation
	for _, r := range existing {
		if !r.IsActive() {
			continue
		}
		if Overlaps(candidate, r.Slot()) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
