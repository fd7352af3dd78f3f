package create_reservation

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ClientID        string `json:"clientId,omitempty"` // опционально, ключ идемпотентности
	FieldID         int64  `json:"fieldId"`
	Date            string `json:"date"`      // "2026-09-01"
	StartTime       string `json:"startTime"` // "18:00"
	EndTime         string `json:"endTime"`   // "19:00"
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	PaymentStatus   string `json:"paymentStatus,omitempty"` // paid | unpaid
	Source          string `json:"source,omitempty"`        // online | offline
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        string  `json:"clientId"`
	FieldID         int64   `json:"fieldId"`
	FieldName       string  `json:"fieldName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	CustomerName    string  `json:"customerName"`
	CustomerContact string  `json:"customerContact"`
	Price           float64 `json:"price"`
	PaymentStatus   string  `json:"paymentStatus"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictResponse HTTP ответ при конфликте слота
// Несёт занятый интервал для отображения "это время уже занято"
type ConflictResponse struct {
	Error     string `json:"error"`
	BusyStart string `json:"busyStart"`
	BusyEnd   string `json:"busyEnd"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	source := domain.ReservationSource(r.Source)
	if r.Source == "" {
		source = domain.SourceOnline
	}

	return &createReservation.Request{
		ClientID:        r.ClientID,
		FieldID:         r.FieldID,
		Date:            date,
		StartTime:       startTime,
		EndTime:         endTime,
		CustomerName:    r.CustomerName,
		CustomerContact: r.CustomerContact,
		PaymentStatus:   domain.PaymentStatus(r.PaymentStatus),
		Source:          source,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		FieldID:         resp.FieldID,
		FieldName:       resp.FieldName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		CustomerName:    resp.CustomerName,
		CustomerContact: resp.CustomerContact,
		Price:           resp.Price,
		PaymentStatus:   resp.PaymentStatus,
		Status:          resp.Status,
		Source:          resp.Source,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
