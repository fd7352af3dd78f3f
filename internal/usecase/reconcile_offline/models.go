package reconcile_offline

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// QueuedReservation элемент локальной очереди устройства
// Бронирование, созданное офлайн и ещё не доехавшее до сервера
type QueuedReservation struct {
	ClientID  string
	FieldID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	CustomerName    string
	CustomerContact string

	PaymentStatus domain.PaymentStatus

	// QueuedAt момент создания на устройстве; очередь обрабатывается
	// в порядке поступления
	QueuedAt time.Time
}

// ConflictedItem офлайн-бронирование, которое не удалось слить:
// слот уже занят другим бронированием. Пользователю показывается
// занятый интервал
type ConflictedItem struct {
	Item      QueuedReservation
	Status    domain.ReservationStatus // Всегда conflicted
	BusyStart types.TimeString
	BusyEnd   types.TimeString
}

// RejectedItem офлайн-бронирование, которое не прошло валидацию при сверке:
// дата уже в прошлом, интервал вне допустимых границ и т.п. Повтор не поможет -
// устройство удаляет элемент из очереди и показывает причину пользователю
type RejectedItem struct {
	Item   QueuedReservation
	Reason string
}

// Report результат сверки офлайн-очереди
type Report struct {
	// Merged успешно слитые бронирования - устройство удаляет их из очереди
	Merged []*createReservation.Response

	// Conflicted бронирования, чей слот занят - требуют ручного решения
	// пользователя, молча не выбрасываются
	Conflicted []ConflictedItem

	// Rejected бронирования, отклонённые валидацией - устройство удаляет их
	// из очереди, повторная отправка даст тот же результат
	Rejected []RejectedItem

	// SkippedClientIDs ключи, уже сохранённые ранее (повторная сверка той же
	// очереди) - устройство тоже удаляет их из очереди
	SkippedClientIDs []string
}
