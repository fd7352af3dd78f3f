package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Routing keys событий бронирования
const (
	RKReservationConfirmed = "reservation.confirmed"
	RKReservationCancelled = "reservation.cancelled"
	RKReservationCompleted = "reservation.completed"
)

// StatusChangedEnvelope полезная нагрузка события для внешних подписчиков
type StatusChangedEnvelope struct {
	ReservationID int64   `json:"reservationId"`
	ClientID      string  `json:"clientId"`
	FieldID       int64   `json:"fieldId"`
	FieldName     string  `json:"fieldName"`
	Date          string  `json:"date"`      // YYYY-MM-DD
	StartTime     string  `json:"startTime"` // HH:MM
	EndTime       string  `json:"endTime"`   // HH:MM
	Price         float64 `json:"price"`
	OldStatus     string  `json:"oldStatus"`
	NewStatus     string  `json:"newStatus"`
	OccurredAt    string  `json:"occurredAt"` // RFC3339
}

// Publisher публикует события смены статуса в topic exchange
// Best-effort: ошибка публикации логируется и не влияет на переход
type Publisher struct {
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
	logger   Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel failed: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange %s failed: %w", exchange, err)
	}

	return &Publisher{
		exchange: exchange,
		conn:     conn,
		ch:       ch,
		logger:   logger,
	}, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Dispatch публикует событие смены статуса
// Реализует EventSink; не блокирует вызывающего дольше таймаута публикации
func (p *Publisher) Dispatch(event domain.StatusChanged) {
	key, ok := routingKey(event.NewStatus)
	if !ok {
		return
	}

	r := event.Reservation
	body, err := json.Marshal(StatusChangedEnvelope{
		ReservationID: r.ID,
		ClientID:      r.ClientID,
		FieldID:       r.FieldID,
		FieldName:     r.FieldName,
		Date:          r.ReservationDate.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Price:         r.Price,
		OldStatus:     string(event.OldStatus),
		NewStatus:     string(event.NewStatus),
		OccurredAt:    event.OccurredAt.Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Error("rabbitmq: marshal event reservation id=%d: %v", r.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("rabbitmq: publish key=%s reservation id=%d failed: %v", key, r.ID, err)
		return
	}

	p.logger.Info("rabbitmq: published key=%s reservation id=%d", key, r.ID)
}

func routingKey(status domain.ReservationStatus) (string, bool) {
	switch status {
	case domain.StatusConfirmed:
		return RKReservationConfirmed, true
	case domain.StatusCancelled:
		return RKReservationCancelled, true
	case domain.StatusCompleted:
		return RKReservationCompleted, true
	default:
		return "", false
	}
}
