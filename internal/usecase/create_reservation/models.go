package create_reservation

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	// ClientID ключ идемпотентности; если пустой - генерируется сервером.
	// Офлайн-клиент всегда передаёт свой, чтобы повторная отправка
	// очереди не создавала дубликатов
	ClientID string

	FieldID   int64
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало слота, например "18:00"
	EndTime   types.TimeString // Конец слота, например "19:00"

	CustomerName    string
	CustomerContact string

	PaymentStatus domain.PaymentStatus    // По умолчанию unpaid
	Source        domain.ReservationSource // online или offline
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID       int64
	ClientID string

	FieldID   int64
	FieldName string

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	CustomerName    string
	CustomerContact string

	Price         float64
	PaymentStatus string
	Status        string
	Source        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменную модель в response
func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		ClientID:        res.ClientID,
		FieldID:         res.FieldID,
		FieldName:       res.FieldName,
		Date:            res.ReservationDate,
		StartTime:       res.StartTime,
		EndTime:         res.EndTime,
		CustomerName:    res.CustomerName,
		CustomerContact: res.CustomerContact,
		Price:           res.Price,
		PaymentStatus:   string(res.PaymentStatus),
		Status:          string(res.Status),
		Source:          string(res.Source),
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
