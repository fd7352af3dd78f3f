package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	venueClient "github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
	"github.com/m04kA/FP-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции:
// два конкурентных запроса на пересекающиеся слоты не могут пройти оба
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: field=%d, date=%s, interval=%s-%s, source=%s",
		req.FieldID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	if err := validateInterval(req); err != nil {
		uc.logger.Warn("CreateReservation: interval validation failed: %v", err)
		return nil, err
	}

	// 2. Дата - сегодня или в будущем
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: date=%s", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем поле из каталога
	field, err := uc.venueClient.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, venueClient.ErrFieldNotFound) {
			uc.logger.Warn("CreateReservation: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateReservation: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 4. Ключ идемпотентности: клиентский или серверный
	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	// 5. Цена по каталогу, денормализуется в бронирование
	minutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	price := domain.PriceFor(field.PricePerSlot, minutes)

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentUnpaid
	}

	var result *domain.Reservation

	// 6. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования поля на дату с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.GetByFieldAndDate(txCtx, domain.FieldDayFilter{
			FieldID: req.FieldID,
			Date:    req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to load day reservations: %v", err)
			return fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
		}

		// 6.2. Проверка пересечений
		candidate := domain.TimeSlot{
			FieldID:   req.FieldID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}

		conflicts := domain.FindConflicts(candidate, existing)
		if len(conflicts) > 0 {
			busy := conflicts[0]
			uc.logger.Warn("CreateReservation: slot conflict field=%d date=%s busy=%s-%s",
				req.FieldID, req.Date.Format(domain.DateFormat), busy.StartTime, busy.EndTime)
			return &SlotConflictError{
				BusyStart: busy.StartTime,
				BusyEnd:   busy.EndTime,
			}
		}

		// 6.3. Сохраняем бронирование со статусом pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ClientID:        clientID,
			FieldID:         field.ID,
			FieldName:       field.Name,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			CustomerName:    req.CustomerName,
			CustomerContact: req.CustomerContact,
			Price:           price,
			PaymentStatus:   paymentStatus,
			Status:          domain.StatusPending,
			Source:          req.Source,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrClientIDTaken) {
				return fmt.Errorf("%w: clientId=%s", ErrClientIDTaken, clientID)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпание попыток сериализации - fail closed, клиент повторит
		if errors.Is(err, txmanager.ErrSerializationFailure) || errors.Is(err, txmanager.ErrTxTimeout) {
			uc.logger.Warn("CreateReservation: transaction did not complete: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrRetryable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d clientId=%s status=%s",
		result.ID, result.ClientID, result.Status)

	return fromDomain(result), nil
}
