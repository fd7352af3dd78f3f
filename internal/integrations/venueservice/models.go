package venueservice

// Field модель поля из каталога площадки
type Field struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	PricePerSlot float64      `json:"pricePerSlot"`
	WorkingHours WeekSchedule `json:"workingHours"`
}

// DaySchedule расписание работы на день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "23:00"
}

// WeekSchedule расписание работы по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}
