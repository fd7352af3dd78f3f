package get_available_slots

import (
	"time"

	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	FieldID int64
	Date    time.Time
}

// Slot свободный слот поля
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     float64
}

// Response модель ответа со свободными слотами
type Response struct {
	FieldID   int64
	FieldName string
	Date      time.Time
	Slots     []Slot
}
