package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrInvalidTransition возвращается, когда запрошенный переход статуса
	// не входит в таблицу разрешённых рёбер
	ErrInvalidTransition = errors.New("reservations: invalid status transition")

	// ErrStatusNotAllowed возвращается при попытке установить статус,
	// недоступный через публичный API (conflicted назначает только сверка)
	ErrStatusNotAllowed = errors.New("reservations: status cannot be set directly")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
