package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/FP-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotConflict       = "выбранное время уже занято"
	msgFieldNotFound      = "поле не найдено"
	msgInvalidDate        = "дата бронирования в прошлом"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgClientIDTaken      = "бронирование с этим ключом уже существует"
	msgRetryable          = "сервис занят, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
	metrics Metrics
}

func NewHandler(useCase CreateReservationUseCase, logger Logger, metrics Metrics) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createReservation.SlotConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /reservations - Slot conflict: field_id=%d busy=%s-%s",
				req.FieldID, conflictErr.BusyStart, conflictErr.BusyEnd)
			if h.metrics != nil {
				h.metrics.SlotConflict()
			}
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgSlotConflict,
				BusyStart: conflictErr.BusyStart.String(),
				BusyEnd:   conflictErr.BusyEnd.String(),
			})

		case errors.Is(err, createReservation.ErrFieldNotFound):
			h.logger.Warn("POST /reservations - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: field_id=%d date=%s", req.FieldID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInterval),
			errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: field_id=%d: %v", req.FieldID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createReservation.ErrClientIDTaken):
			h.logger.Warn("POST /reservations - Client id taken: clientId=%s", req.ClientID)
			handlers.RespondError(w, http.StatusConflict, msgClientIDTaken)

		case errors.Is(err, createReservation.ErrRetryable):
			h.logger.Warn("POST /reservations - Retryable failure: field_id=%d: %v", req.FieldID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRetryable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: field_id=%d, error=%v",
				req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, field_id=%d",
		result.ID, req.FieldID)
	if h.metrics != nil {
		h.metrics.ReservationCreated(result.Source)
	}
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
