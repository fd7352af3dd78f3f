package domain

import (
	"time"

	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	// StatusConflicted присваивается только офлайн-сверкой: слот был занят
	// другим бронированием до того, как очередь устройства доехала до сервера
	StatusConflicted ReservationStatus = "conflicted"
)

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// ReservationSource показывает, где было создано бронирование
type ReservationSource string

const (
	SourceOnline  ReservationSource = "online"
	SourceOffline ReservationSource = "offline"
)

// Reservation represents a field booking in the system
type Reservation struct {
	ID int64

	// ClientID ключ идемпотентности, назначается при создании (онлайн или
	// офлайн) и уникален на уровне БД. Повторная отправка той же брони
	// никогда не создаёт дубликат
	ClientID string

	FieldID int64

	// Denormalized data for history
	FieldName string

	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString

	CustomerName    string
	CustomerContact string

	Price         float64
	PaymentStatus PaymentStatus

	Status ReservationStatus
	Source ReservationSource

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot возвращает слот бронирования как value type
func (r *Reservation) Slot() TimeSlot {
	return TimeSlot{
		FieldID:   r.FieldID,
		Date:      r.ReservationDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// IsActive returns true if the reservation blocks its slot
// Только pending и confirmed участвуют в проверке пересечений
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are permitted
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted || r.Status == StatusConflicted
}

// allowedTransitions таблица разрешённых переходов статусов
// Единственное место, где описан граф переходов - никаких ad hoc проверок
// по месту вызова
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusConflicted},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusConflicted},
	// Терминальные статусы не имеют исходящих переходов
	StatusCancelled:  {},
	StatusCompleted:  {},
	StatusConflicted: {},
}

// CanTransition проверяет, разрешён ли переход from -> to
// Переход в тот же статус не является переходом (идемпотентный повтор
// обрабатывается выше по стеку)
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// PublicStatuses статусы, которые можно запросить через API смены статуса
// conflicted назначается только сверкой офлайн-очереди
var PublicStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// IsPublicStatus проверяет, что статус доступен как цель для SetStatus
func IsPublicStatus(s ReservationStatus) bool {
	for _, st := range PublicStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ParseStatus валидирует строковый статус из API
func ParseStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusConflicted:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// FieldDayFilter фильтр для выборки бронирований поля на дату
type FieldDayFilter struct {
	FieldID         int64
	Date            time.Time
	IncludeInactive bool // Включать ли cancelled/completed/conflicted
}

// StatusChanged событие успешного перехода статуса
// Излучается после фиксации перехода в БД; доставка уведомления никогда
// не влияет на сам переход
type StatusChanged struct {
	Reservation Reservation
	OldStatus   ReservationStatus
	NewStatus   ReservationStatus
	OccurredAt  time.Time
}
