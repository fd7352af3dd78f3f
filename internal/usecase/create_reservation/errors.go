package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/FP-ReservationService/pkg/types"
)

var (
	// ErrFieldNotFound возвращается, когда поле не найдено в каталоге
	ErrFieldNotFound = errors.New("create_reservation: field not found")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с активным бронированием. Детали занятого интервала несёт
	// SlotConflictError
	ErrSlotConflict = errors.New("create_reservation: slot conflict")

	// ErrClientIDTaken возвращается, когда бронирование с таким ключом
	// идемпотентности уже сохранено
	ErrClientIDTaken = errors.New("create_reservation: client id already reserved")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidInterval возвращается при пустом или перевёрнутом интервале
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrRetryable возвращается, когда конкурентная нагрузка не дала
	// завершить сериализуемую транзакцию - клиент может повторить запрос
	ErrRetryable = errors.New("create_reservation: temporary failure, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// SlotConflictError ошибка конфликта слота с занятым интервалом
// Интервал нужен UI - "это время уже занято: 18:00-19:00"
type SlotConflictError struct {
	BusyStart types.TimeString
	BusyEnd   types.TimeString
}

// Error реализует error
func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: busy %s-%s", ErrSlotConflict, e.BusyStart, e.BusyEnd)
}

// Unwrap позволяет errors.Is(err, ErrSlotConflict)
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}
