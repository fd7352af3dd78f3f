package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}
	if req.CustomerContact == "" {
		return fmt.Errorf("%w: customerContact is required", ErrInvalidInput)
	}
	if len(req.CustomerContact) > domain.MaxCustomerContactLength {
		return fmt.Errorf("%w: customerContact is too long", ErrInvalidInput)
	}

	switch req.Source {
	case domain.SourceOnline, domain.SourceOffline:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	if req.PaymentStatus != "" && req.PaymentStatus != domain.PaymentPaid && req.PaymentStatus != domain.PaymentUnpaid {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, req.PaymentStatus)
	}

	return nil
}

// validateInterval проверяет интервал бронирования
func validateInterval(req *Request) error {
	// Перевёрнутый или пустой интервал
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInterval)
	}

	minutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	if minutes < domain.MinReservationMinutes {
		return fmt.Errorf("%w: interval is shorter than %d minutes", ErrInvalidInterval, domain.MinReservationMinutes)
	}
	if minutes > domain.MaxReservationMinutes {
		return fmt.Errorf("%w: interval is longer than %d minutes", ErrInvalidInterval, domain.MaxReservationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата бронирования - сегодня или в будущем
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
