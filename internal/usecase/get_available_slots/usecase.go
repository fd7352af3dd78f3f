package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	venueClient "github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
)

// UseCase use case для получения свободных слотов поля на дату
// Чистое чтение: сетка рабочего дня минус активные бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: field=%d, date=%s", req.FieldID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем поле из каталога
	field, err := uc.venueClient.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, venueClient.ErrFieldNotFound) {
			uc.logger.Warn("GetAvailableSlots: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 3. Сетка слотов рабочего дня
	now := uc.timeProvider.Now()
	workingHours := getWorkingHoursForDay(field, req.Date)

	grid, err := generateSlotGrid(workingHours, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// 4. Активные бронирования поля на дату
	reservations, err := uc.reservationRepo.GetByFieldAndDate(ctx, domain.FieldDayFilter{
		FieldID: req.FieldID,
		Date:    req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
	}

	// 5. Свободные слоты с ценой каталога
	free := filterFreeSlots(grid, req.FieldID, reservations)

	slots := make([]Slot, len(free))
	for i, s := range free {
		slots[i] = Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     domain.PriceFor(field.PricePerSlot, domain.SlotUnitMinutes),
		}
	}

	uc.logger.Info("GetAvailableSlots: field=%d date=%s free=%d of %d",
		req.FieldID, req.Date.Format(domain.DateFormat), len(slots), len(grid))

	return &Response{
		FieldID:   field.ID,
		FieldName: field.Name,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}
