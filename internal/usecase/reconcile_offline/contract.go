package reconcile_offline

import (
	"context"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
)

// ReservationAllocator интерфейс аллокатора слотов
// Реализуется usecase создания бронирования - сверка переиспользует его
// целиком, включая сериализуемую транзакцию и проверку конфликтов
type ReservationAllocator interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByClientID(ctx context.Context, clientID string) (*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
