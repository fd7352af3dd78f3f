package reconcile_offline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
)

// UseCase use case сверки офлайн-очереди с авторитетным хранилищем
// Очередь обрабатывается строго последовательно в порядке постановки:
// при конкуренции двух офлайн-элементов одного устройства за слот
// выигрывает тот, что был создан раньше
type UseCase struct {
	allocator       ReservationAllocator
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	allocator ReservationAllocator,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocator:       allocator,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Execute сливает локальную очередь в авторитетное хранилище
// Конфликты и ошибки валидации собираются в отчёт, а не прерывают пакет:
// пользователь должен узнать о каждом несостоявшемся бронировании, а очередь
// не должна застревать из-за одного устаревшего элемента. Обработку прерывает
// только инфраструктурная ошибка, частичный отчёт при этом сохраняется
func (uc *UseCase) Execute(ctx context.Context, queue []QueuedReservation) (*Report, error) {
	uc.logger.Info("Reconcile: processing offline queue of %d items", len(queue))

	report := &Report{
		Merged:           make([]*createReservation.Response, 0, len(queue)),
		Conflicted:       make([]ConflictedItem, 0),
		Rejected:         make([]RejectedItem, 0),
		SkippedClientIDs: make([]string, 0),
	}

	// Порядок очереди = порядок создания на устройстве
	items := make([]QueuedReservation, len(queue))
	copy(items, queue)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].QueuedAt.Before(items[j].QueuedAt)
	})

	for _, item := range items {
		if item.ClientID == "" {
			uc.logger.Warn("Reconcile: queued item without clientId, rejecting")
			report.Rejected = append(report.Rejected, RejectedItem{
				Item:   item,
				Reason: "queued item without clientId",
			})
			continue
		}

		// 1. Дедупликация: ключ уже сохранён - очередь не была очищена
		// после прошлой сверки (например, приложение перезапустилось)
		existing, err := uc.reservationRepo.GetByClientID(ctx, item.ClientID)
		if err != nil && !errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Error("Reconcile: failed to check clientId=%s: %v", item.ClientID, err)
			return report, fmt.Errorf("%w: failed to check clientId: %v", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Info("Reconcile: clientId=%s already reconciled, skipping", item.ClientID)
			report.SkippedClientIDs = append(report.SkippedClientIDs, item.ClientID)
			continue
		}

		// 2. Обычная аллокация с тем же ключом идемпотентности
		created, err := uc.allocator.Execute(ctx, &createReservation.Request{
			ClientID:        item.ClientID,
			FieldID:         item.FieldID,
			Date:            item.Date,
			StartTime:       item.StartTime,
			EndTime:         item.EndTime,
			CustomerName:    item.CustomerName,
			CustomerContact: item.CustomerContact,
			PaymentStatus:   item.PaymentStatus,
			Source:          domain.SourceOffline,
		})

		if err == nil {
			uc.logger.Info("Reconcile: merged clientId=%s as reservation id=%d", item.ClientID, created.ID)
			report.Merged = append(report.Merged, created)
			continue
		}

		// 3. Слот занят - бронирование помечается conflicted и уходит
		// в отчёт. Существующее бронирование никогда не вытесняется
		var conflictErr *createReservation.SlotConflictError
		if errors.As(err, &conflictErr) {
			uc.logger.Warn("Reconcile: clientId=%s conflicted, slot busy %s-%s",
				item.ClientID, conflictErr.BusyStart, conflictErr.BusyEnd)
			report.Conflicted = append(report.Conflicted, ConflictedItem{
				Item:      item,
				Status:    domain.StatusConflicted,
				BusyStart: conflictErr.BusyStart,
				BusyEnd:   conflictErr.BusyEnd,
			})
			continue
		}

		// 4. Гонка по ключу: кто-то успел сохранить этот clientId между
		// проверкой и вставкой - считаем уже слитым
		if errors.Is(err, createReservation.ErrClientIDTaken) {
			uc.logger.Info("Reconcile: clientId=%s raced, already persisted", item.ClientID)
			report.SkippedClientIDs = append(report.SkippedClientIDs, item.ClientID)
			continue
		}

		// 5. Ошибка валидации детерминирована: элемент устарел за время
		// офлайна (дата в прошлом, поле удалено) или был некорректен
		// изначально. Повтор даст тот же результат - элемент отклоняется,
		// остальная очередь обрабатывается дальше
		if errors.Is(err, createReservation.ErrInvalidDate) ||
			errors.Is(err, createReservation.ErrInvalidInterval) ||
			errors.Is(err, createReservation.ErrInvalidInput) ||
			errors.Is(err, createReservation.ErrFieldNotFound) {
			uc.logger.Warn("Reconcile: clientId=%s rejected: %v", item.ClientID, err)
			report.Rejected = append(report.Rejected, RejectedItem{
				Item:   item,
				Reason: err.Error(),
			})
			continue
		}

		uc.logger.Error("Reconcile: failed to merge clientId=%s: %v", item.ClientID, err)
		return report, fmt.Errorf("%w: failed to merge clientId=%s: %v", ErrInternal, item.ClientID, err)
	}

	uc.logger.Info("Reconcile: done, merged=%d conflicted=%d rejected=%d skipped=%d",
		len(report.Merged), len(report.Conflicted), len(report.Rejected), len(report.SkippedClientIDs))

	return report, nil
}
