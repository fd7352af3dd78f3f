package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/FP-ReservationService/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований
// Единственная точка, через которую меняется статус: граф переходов
// проверяется здесь, по центральной таблице в domain
type Service struct {
	reservationRepo ReservationRepository
	events          EventSink
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	events EventSink,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		events:          events,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// ListByFieldAndDate получает бронирования поля на дату
// По умолчанию только активные; IncludeInactive добавляет остальные
func (s *Service) ListByFieldAndDate(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByFieldAndDate: field=%d date=%s includeInactive=%v",
		req.FieldID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	list, err := s.reservationRepo.GetByFieldAndDate(ctx, domain.FieldDayFilter{
		FieldID:         req.FieldID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("ListByFieldAndDate: repository error for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: ListByFieldAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// SetStatus переводит бронирование в целевой статус
//
// Семантика:
//   - повторный перевод в текущий статус - идемпотентный успех без
//     повторного события (дубль сетевого ретрая не шлёт второе уведомление)
//   - переход вне таблицы рёбер - ErrInvalidTransition
//   - conflicted недоступен как цель: его назначает только сверка офлайн-очереди
//
// Событие StatusChanged излучается после фиксации перехода в БД;
// его доставка не влияет на результат операции
func (s *Service) SetStatus(ctx context.Context, reservationID int64, req *models.SetStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("SetStatus: reservation id=%d target=%s", reservationID, req.Status)

	target, ok := domain.ParseStatus(req.Status)
	if !ok {
		s.logger.Warn("SetStatus: unknown status=%q for reservation id=%d", req.Status, reservationID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if !domain.IsPublicStatus(target) {
		s.logger.Warn("SetStatus: status=%s is not settable via API, reservation id=%d", target, reservationID)
		return nil, fmt.Errorf("%w: %s", ErrStatusNotAllowed, target)
	}

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("SetStatus: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("SetStatus: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	// Идемпотентный повтор - успех без события
	if res.Status == target {
		s.logger.Info("SetStatus: reservation id=%d already in status=%s, no-op", reservationID, target)
		return models.FromDomainReservation(res), nil
	}

	if !domain.CanTransition(res.Status, target) {
		s.logger.Warn("SetStatus: transition %s -> %s rejected for reservation id=%d",
			res.Status, target, reservationID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, target)
	}

	// Compare-and-set против прочитанного статуса: конкурентный переход
	// не может привести к ребру вне таблицы
	updated, err := s.reservationRepo.UpdateStatusFrom(ctx, reservationID, res.Status, target, req.CancellationReason)
	if err != nil {
		s.logger.Error("SetStatus: failed to update reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: SetStatus - update error: %v", ErrInternal, err)
	}

	if !updated {
		// Статус изменился между чтением и обновлением - перечитываем
		current, err := s.reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return nil, ErrReservationNotFound
			}
			return nil, fmt.Errorf("%w: SetStatus - reread error: %v", ErrInternal, err)
		}
		// Конкурентный дубль того же перехода - идемпотентный успех,
		// событие уже излучил победивший запрос
		if current.Status == target {
			s.logger.Info("SetStatus: reservation id=%d concurrently moved to %s, no-op", reservationID, target)
			return models.FromDomainReservation(current), nil
		}
		s.logger.Warn("SetStatus: reservation id=%d moved to %s concurrently, transition to %s rejected",
			reservationID, current.Status, target)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
	}

	oldStatus := res.Status

	result, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("SetStatus: failed to reread reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: SetStatus - reread error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStatus: reservation id=%d transitioned %s -> %s", reservationID, oldStatus, target)

	// Уведомления только о подтверждении, отмене и завершении
	if target == domain.StatusConfirmed || target == domain.StatusCancelled || target == domain.StatusCompleted {
		s.events.Dispatch(domain.StatusChanged{
			Reservation: *result,
			OldStatus:   oldStatus,
			NewStatus:   target,
			OccurredAt:  time.Now(),
		})
	}

	return models.FromDomainReservation(result), nil
}
