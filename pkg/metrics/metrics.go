package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	ReservationsCreated  *prometheus.CounterVec
	SlotConflictsTotal   prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	NotificationsSent    *prometheus.CounterVec
	NotificationsDropped prometheus.Counter
	ReconcileItems       *prometheus.CounterVec
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ReservationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Total number of created reservations",
			ConstLabels: constLabels,
		}, []string{"source"}),

		SlotConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Total number of rejected bookings due to slot conflicts",
			ConstLabels: constLabels,
		}),

		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_status_transitions_total",
			Help:        "Total number of reservation status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Total number of outbound notifications by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		NotificationsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notifications_dropped_total",
			Help:        "Notifications dropped because the dispatch queue was full",
			ConstLabels: constLabels,
		}),

		ReconcileItems: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconcile_items_total",
			Help:        "Offline reconciliation outcomes",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// Методы ниже безопасны на nil-получателе: при выключенных метриках
// код сервиса вызывает их без проверок

// ReservationCreated инкрементирует счётчик созданных бронирований
func (m *Metrics) ReservationCreated(source string) {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(source).Inc()
}

// SlotConflict инкрементирует счётчик отклонённых из-за занятого слота
func (m *Metrics) SlotConflict() {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.Inc()
}

// StatusTransition инкрементирует счётчик переходов статусов
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// NotificationSent инкрементирует счётчик исходящих уведомлений
func (m *Metrics) NotificationSent(result string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(result).Inc()
}

// NotificationDropped инкрементирует счётчик отброшенных уведомлений
func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.NotificationsDropped.Inc()
}

// ReconcileOutcome добавляет n к счётчику результатов сверки
func (m *Metrics) ReconcileOutcome(outcome string, n int) {
	if m == nil {
		return
	}
	m.ReconcileItems.WithLabelValues(outcome).Add(float64(n))
}
