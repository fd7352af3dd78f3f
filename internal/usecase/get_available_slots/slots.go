package get_available_slots

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// generateSlotGrid генерирует часовую сетку слотов на день
// Слоты идут от открытия до закрытия площадки с шагом в один слот (час).
// Для сегодняшней даты уже начавшиеся слоты отбрасываются
func generateSlotGrid(
	workingHours venueservice.DaySchedule,
	requestDate time.Time,
	now time.Time,
) ([]domain.TimeSlot, error) {
	if isDateInPast(requestDate, now) {
		return []domain.TimeSlot{}, nil
	}

	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []domain.TimeSlot{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	grid := make([]domain.TimeSlot, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(domain.SlotUnitMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		grid = append(grid, domain.TimeSlot{
			Date:      requestDate,
			StartTime: current,
			EndTime:   slotEnd,
		})
		current = slotEnd
	}

	// Для сегодняшнего дня убираем слоты, которые уже начались
	if isSameDay(requestDate, now) {
		currentTime := types.NewTimeString(now)
		filtered := make([]domain.TimeSlot, 0, len(grid))
		for _, slot := range grid {
			if slot.StartTime.IsAfter(currentTime) {
				filtered = append(filtered, slot)
			}
		}
		grid = filtered
	}

	return grid, nil
}

// filterFreeSlots оставляет слоты без пересечений с активными бронированиями
// Поле эксклюзивное: один активный слот полностью закрывает время
func filterFreeSlots(grid []domain.TimeSlot, fieldID int64, reservations []*domain.Reservation) []domain.TimeSlot {
	free := make([]domain.TimeSlot, 0, len(grid))
	for _, slot := range grid {
		slot.FieldID = fieldID
		if len(domain.FindConflicts(slot, reservations)) == 0 {
			free = append(free, slot)
		}
	}
	return free
}

// getWorkingHoursForDay возвращает расписание работы на указанный день недели
func getWorkingHoursForDay(field *venueservice.Field, date time.Time) venueservice.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return field.WorkingHours.Monday
	case time.Tuesday:
		return field.WorkingHours.Tuesday
	case time.Wednesday:
		return field.WorkingHours.Wednesday
	case time.Thursday:
		return field.WorkingHours.Thursday
	case time.Friday:
		return field.WorkingHours.Friday
	case time.Saturday:
		return field.WorkingHours.Saturday
	case time.Sunday:
		return field.WorkingHours.Sunday
	default:
		return venueservice.DaySchedule{IsOpen: false}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
