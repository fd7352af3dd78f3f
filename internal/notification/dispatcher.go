package notification

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

// Sender канал доставки: "отправить текст контакту"
type Sender interface {
	Send(ctx context.Context, contact string, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счётчики исходящих уведомлений; nil допустим
type Metrics interface {
	NotificationSent(result string)
	NotificationDropped()
}

// Config настройки диспетчера
type Config struct {
	Workers       int
	QueueSize     int
	MaxAttempts   int
	RetryDelay    time.Duration // база для линейного backoff
	RatePerSecond float64
}

// Dispatcher best-effort доставка уведомлений о смене статуса
// Пул воркеров читает события из буферизованного канала; переполнение
// очереди роняет событие с логом, но никогда не блокирует вызывающего -
// переход статуса первичен, уведомление вторично
type Dispatcher struct {
	cfg     Config
	jobs    chan domain.StatusChanged
	sender  Sender
	limiter *rate.Limiter
	logger  Logger
	metrics Metrics
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(cfg Config, sender Sender, logger Logger, metrics Metrics) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}

	return &Dispatcher{
		cfg:     cfg,
		jobs:    make(chan domain.StatusChanged, cfg.QueueSize),
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Workers),
		logger:  logger,
		metrics: metrics,
	}
}

// Start запускает воркеров; останавливаются по ctx
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.cfg.Workers; i++ {
		go d.worker(ctx, i)
	}
	d.logger.Info("notification: started %d workers, queue size %d", d.cfg.Workers, d.cfg.QueueSize)
}

// Dispatch ставит событие в очередь доставки
// Не блокирует: при переполненной очереди событие отбрасывается с логом
func (d *Dispatcher) Dispatch(event domain.StatusChanged) {
	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("notification: queue full, dropping event reservation id=%d status=%s",
			event.Reservation.ID, event.NewStatus)
		if d.metrics != nil {
			d.metrics.NotificationDropped()
		}
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification: worker %d shutting down", id)
			return
		case event := <-d.jobs:
			d.process(ctx, event)
		}
	}
}

// process формирует сообщение и доставляет его с ограниченным числом попыток
// Ошибка доставки логируется и никогда не выходит наружу
func (d *Dispatcher) process(ctx context.Context, event domain.StatusChanged) {
	text, ok := BuildMessage(event)
	if !ok {
		return
	}

	contact := event.Reservation.CustomerContact
	if contact == "" {
		d.logger.Warn("notification: reservation id=%d has no contact, skipping", event.Reservation.ID)
		return
	}

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return
		}

		err := d.sender.Send(ctx, contact, text)
		if err == nil {
			d.logger.Info("notification: sent reservation id=%d status=%s attempt=%d",
				event.Reservation.ID, event.NewStatus, attempt)
			if d.metrics != nil {
				d.metrics.NotificationSent("ok")
			}
			return
		}

		d.logger.Warn("notification: delivery failed reservation id=%d attempt=%d/%d: %v",
			event.Reservation.ID, attempt, d.cfg.MaxAttempts, err)

		if attempt < d.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.cfg.RetryDelay * time.Duration(attempt)):
			}
		}
	}

	d.logger.Error("notification: giving up on reservation id=%d status=%s after %d attempts",
		event.Reservation.ID, event.NewStatus, d.cfg.MaxAttempts)
	if d.metrics != nil {
		d.metrics.NotificationSent("failed")
	}
}

// Fanout рассылает событие нескольким приёмникам
// Используется, чтобы один переход уходил и в чат-уведомления,
// и в брокер событий
type Fanout []interface{ Dispatch(domain.StatusChanged) }

// Dispatch передаёт событие всем приёмникам
func (f Fanout) Dispatch(event domain.StatusChanged) {
	for _, sink := range f {
		sink.Dispatch(event)
	}
}
