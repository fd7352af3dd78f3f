package reconcile_offline

import (
	"time"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reconcileOffline "github.com/m04kA/FP-ReservationService/internal/usecase/reconcile_offline"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// QueuedItemRequest элемент офлайн-очереди в HTTP запросе
type QueuedItemRequest struct {
	ClientID        string `json:"clientId"`
	FieldID         int64  `json:"fieldId"`
	Date            string `json:"date"`      // "2026-09-01"
	StartTime       string `json:"startTime"` // "18:00"
	EndTime         string `json:"endTime"`   // "19:00"
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	PaymentStatus   string `json:"paymentStatus,omitempty"`
	QueuedAt        string `json:"queuedAt"` // RFC3339
}

// ReconcileRequest HTTP запрос на сверку офлайн-очереди
type ReconcileRequest struct {
	Queue []QueuedItemRequest `json:"queue"`
}

// MergedItemResponse успешно слитое бронирование
type MergedItemResponse struct {
	ID        int64   `json:"id"`
	ClientID  string  `json:"clientId"`
	FieldID   int64   `json:"fieldId"`
	FieldName string  `json:"fieldName"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
}

// ConflictedItemResponse бронирование, чей слот занят
type ConflictedItemResponse struct {
	ClientID  string `json:"clientId"`
	FieldID   int64  `json:"fieldId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	BusyStart string `json:"busyStart"`
	BusyEnd   string `json:"busyEnd"`
}

// RejectedItemResponse бронирование, отклонённое валидацией при сверке
type RejectedItemResponse struct {
	ClientID  string `json:"clientId"`
	FieldID   int64  `json:"fieldId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// ReconcileResponse отчёт о сверке
type ReconcileResponse struct {
	Merged           []MergedItemResponse     `json:"merged"`
	Conflicted       []ConflictedItemResponse `json:"conflicted"`
	Rejected         []RejectedItemResponse   `json:"rejected"`
	SkippedClientIDs []string                 `json:"skippedClientIds"`
}

// ToUseCaseQueue конвертирует HTTP запрос в модель use case
func (r *ReconcileRequest) ToUseCaseQueue() ([]reconcileOffline.QueuedReservation, error) {
	queue := make([]reconcileOffline.QueuedReservation, 0, len(r.Queue))
	for _, item := range r.Queue {
		date, err := time.Parse(domain.DateFormat, item.Date)
		if err != nil {
			return nil, err
		}

		startTime, err := types.NewTimeStringFromString(item.StartTime)
		if err != nil {
			return nil, err
		}

		endTime, err := types.NewTimeStringFromString(item.EndTime)
		if err != nil {
			return nil, err
		}

		queuedAt, err := time.Parse(time.RFC3339, item.QueuedAt)
		if err != nil {
			return nil, err
		}

		queue = append(queue, reconcileOffline.QueuedReservation{
			ClientID:        item.ClientID,
			FieldID:         item.FieldID,
			Date:            date,
			StartTime:       startTime,
			EndTime:         endTime,
			CustomerName:    item.CustomerName,
			CustomerContact: item.CustomerContact,
			PaymentStatus:   domain.PaymentStatus(item.PaymentStatus),
			QueuedAt:        queuedAt,
		})
	}
	return queue, nil
}

// FromUseCaseReport конвертирует отчёт use case в HTTP response
func FromUseCaseReport(report *reconcileOffline.Report) *ReconcileResponse {
	resp := &ReconcileResponse{
		Merged:           make([]MergedItemResponse, 0, len(report.Merged)),
		Conflicted:       make([]ConflictedItemResponse, 0, len(report.Conflicted)),
		Rejected:         make([]RejectedItemResponse, 0, len(report.Rejected)),
		SkippedClientIDs: report.SkippedClientIDs,
	}

	for _, m := range report.Merged {
		resp.Merged = append(resp.Merged, MergedItemResponse{
			ID:        m.ID,
			ClientID:  m.ClientID,
			FieldID:   m.FieldID,
			FieldName: m.FieldName,
			Date:      m.Date.Format(domain.DateFormat),
			StartTime: m.StartTime.String(),
			EndTime:   m.EndTime.String(),
			Price:     m.Price,
			Status:    m.Status,
		})
	}

	for _, c := range report.Conflicted {
		resp.Conflicted = append(resp.Conflicted, ConflictedItemResponse{
			ClientID:  c.Item.ClientID,
			FieldID:   c.Item.FieldID,
			Date:      c.Item.Date.Format(domain.DateFormat),
			StartTime: c.Item.StartTime.String(),
			EndTime:   c.Item.EndTime.String(),
			Status:    string(c.Status),
			BusyStart: c.BusyStart.String(),
			BusyEnd:   c.BusyEnd.String(),
		})
	}

	for _, rej := range report.Rejected {
		resp.Rejected = append(resp.Rejected, RejectedItemResponse{
			ClientID:  rej.Item.ClientID,
			FieldID:   rej.Item.FieldID,
			Date:      rej.Item.Date.Format(domain.DateFormat),
			StartTime: rej.Item.StartTime.String(),
			EndTime:   rej.Item.EndTime.String(),
			Reason:    rej.Reason,
		})
	}

	return resp
}
