package set_status

import (
	"context"

	"github.com/m04kA/FP-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	SetStatus(ctx context.Context, reservationID int64, req *models.SetStatusRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
