package reconcile_offline

import (
	"context"

	reconcileOffline "github.com/m04kA/FP-ReservationService/internal/usecase/reconcile_offline"
)

type ReconcileUseCase interface {
	Execute(ctx context.Context, queue []reconcileOffline.QueuedReservation) (*reconcileOffline.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счётчики результатов сверки; безопасны при выключенных метриках
type Metrics interface {
	ReconcileOutcome(outcome string, n int)
}
