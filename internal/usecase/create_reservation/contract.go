package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByFieldAndDate(ctx context.Context, filter domain.FieldDayFilter) ([]*domain.Reservation, error)
}

// VenueServiceClient интерфейс клиента каталога площадки
type VenueServiceClient interface {
	GetField(ctx context.Context, fieldID int64) (*venueservice.Field, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
