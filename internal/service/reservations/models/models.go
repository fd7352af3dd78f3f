package models

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// SetStatusRequest запрос на смену статуса бронирования
type SetStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ListRequest запрос списка бронирований поля на дату
type ListRequest struct {
	FieldID         int64
	Date            time.Time
	IncludeInactive bool
}

// ReservationResponse модель бронирования для ответа сервиса
type ReservationResponse struct {
	ID                 int64      `json:"id"`
	ClientID           string     `json:"clientId"`
	FieldID            int64      `json:"fieldId"`
	FieldName          string     `json:"fieldName"`
	Date               time.Time  `json:"date"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	CustomerName       string     `json:"customerName"`
	CustomerContact    string     `json:"customerContact"`
	Price              float64    `json:"price"`
	PaymentStatus      string     `json:"paymentStatus"`
	Status             string     `json:"status"`
	Source             string     `json:"source"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует доменную модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		FieldID:            r.FieldID,
		FieldName:          r.FieldName,
		Date:               r.ReservationDate,
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		CustomerName:       r.CustomerName,
		CustomerContact:    r.CustomerContact,
		Price:              r.Price,
		PaymentStatus:      string(r.PaymentStatus),
		Status:             string(r.Status),
		Source:             string(r.Source),
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(list))
	for i, r := range list {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{Reservations: out}
}
