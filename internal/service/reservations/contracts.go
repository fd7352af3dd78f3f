package reservations

import (
	"context"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByFieldAndDate(ctx context.Context, filter domain.FieldDayFilter) ([]*domain.Reservation, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus, cancellationReason *string) (bool, error)
}

// EventSink приёмник событий смены статуса
// Контракт неблокирующий: реализация не имеет права задерживать или
// откатывать переход, событие - best-effort побочный канал
type EventSink interface {
	Dispatch(event domain.StatusChanged)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
