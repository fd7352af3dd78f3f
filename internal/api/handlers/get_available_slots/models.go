package get_available_slots

import (
	"github.com/m04kA/FP-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/FP-ReservationService/internal/usecase/get_available_slots"
)

// SlotResponse свободный слот в HTTP ответе
type SlotResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// AvailableSlotsResponse HTTP ответ со свободными слотами поля на дату
type AvailableSlotsResponse struct {
	FieldID   int64          `json:"fieldId"`
	FieldName string         `json:"fieldName"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Price:     s.Price,
		})
	}

	return &AvailableSlotsResponse{
		FieldID:   resp.FieldID,
		FieldName: resp.FieldName,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
