package notification

import (
	"fmt"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// Шаблоны исходящих сообщений по целевому статусу
// Остальные статусы сообщений не порождают: сама заявка на бронирование
// ещё не повод писать клиенту

// BuildMessage собирает текст уведомления для события смены статуса
// Возвращает false, если для статуса сообщение не предусмотрено
func BuildMessage(event domain.StatusChanged) (string, bool) {
	r := event.Reservation
	date := r.ReservationDate.Format(domain.DateFormat)

	switch event.NewStatus {
	case domain.StatusConfirmed:
		return fmt.Sprintf(
			"Ваше бронирование подтверждено: поле «%s», %s, %s-%s. Сумма к оплате: %.2f.",
			r.FieldName, date, r.StartTime, r.EndTime, r.Price,
		), true

	case domain.StatusCancelled:
		return fmt.Sprintf(
			"Бронирование отменено: поле «%s», %s, %s-%s.",
			r.FieldName, date, r.StartTime, r.EndTime,
		), true

	case domain.StatusCompleted:
		return fmt.Sprintf(
			"Спасибо за игру! Поле «%s», %s, %s-%s. До встречи снова.",
			r.FieldName, date, r.StartTime, r.EndTime,
		), true

	default:
		return "", false
	}
}
