package reconcile_offline

import (
	"net/http"

	"github.com/m04kA/FP-ReservationService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQueueItem   = "некорректный элемент очереди"
	msgReconcileFailed    = "сверка прервана, повторите отправку очереди"
)

type Handler struct {
	useCase ReconcileUseCase
	logger  Logger
	metrics Metrics
}

func NewHandler(useCase ReconcileUseCase, logger Logger, metrics Metrics) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle POST /api/v1/reservations/reconcile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/reconcile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	queue, err := req.ToUseCaseQueue()
	if err != nil {
		h.logger.Warn("POST /reservations/reconcile - Failed to parse queue: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueueItem)
		return
	}

	report, err := h.useCase.Execute(r.Context(), queue)
	if err != nil {
		// Частичный отчёт не возвращаем: устройство повторит отправку
		// всей очереди, слитые элементы отсеются по clientId
		h.logger.Error("POST /reservations/reconcile - Failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgReconcileFailed)
		return
	}

	h.logger.Info("POST /reservations/reconcile - Done: merged=%d conflicted=%d rejected=%d skipped=%d",
		len(report.Merged), len(report.Conflicted), len(report.Rejected), len(report.SkippedClientIDs))
	if h.metrics != nil {
		h.metrics.ReconcileOutcome("merged", len(report.Merged))
		h.metrics.ReconcileOutcome("conflicted", len(report.Conflicted))
		h.metrics.ReconcileOutcome("rejected", len(report.Rejected))
		h.metrics.ReconcileOutcome("skipped", len(report.SkippedClientIDs))
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseReport(report))
}
