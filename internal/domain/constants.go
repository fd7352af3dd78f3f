package domain

// Business validation constants
const (
	// MinReservationMinutes минимальная длительность бронирования
	MinReservationMinutes = 30
	// MaxReservationMinutes максимальная длительность бронирования
	MaxReservationMinutes = 240

	// SlotUnitMinutes один тарифицируемый слот = час игры
	SlotUnitMinutes = 60

	MaxCustomerNameLength       = 120
	MaxCustomerContactLength    = 120
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не блокирующие слот
// Используются для фильтрации при проверке пересечений
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
	StatusConflicted,
}

// ActiveStatuses статусы, блокирующие слот
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// PriceFor возвращает стоимость бронирования длительностью minutes
// Каждый начатый час тарифицируется как полный слот
func PriceFor(pricePerSlot float64, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	slots := minutes / SlotUnitMinutes
	if minutes%SlotUnitMinutes != 0 {
		slots++
	}
	return pricePerSlot * float64(slots)
}
