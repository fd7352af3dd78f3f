package reconcile_offline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	createReservation "github.com/m04kA/FP-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

// fakeAllocator эмулирует аллокатор слотов: исход задаётся на каждый clientId
type fakeAllocator struct {
	results map[string]error
	nextID  int64
	calls   []string
}

func (f *fakeAllocator) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.calls = append(f.calls, req.ClientID)
	if err, ok := f.results[req.ClientID]; ok && err != nil {
		return nil, err
	}
	f.nextID++
	return &createReservation.Response{
		ID:        f.nextID,
		ClientID:  req.ClientID,
		FieldID:   req.FieldID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    string(domain.StatusPending),
		Source:    string(req.Source),
	}, nil
}

type fakeRepo struct {
	persisted map[string]*domain.Reservation
	err       error
}

func (f *fakeRepo) GetByClientID(_ context.Context, clientID string) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.persisted[clientID]; ok {
		return res, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDay = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func queuedItem(clientID string, start, end types.TimeString, queuedAt time.Time) QueuedReservation {
	return QueuedReservation{
		ClientID:        clientID,
		FieldID:         1,
		Date:            testDay,
		StartTime:       start,
		EndTime:         end,
		CustomerName:    "Иван",
		CustomerContact: "+79990001122",
		QueuedAt:        queuedAt,
	}
}

func TestExecute_MergesQueueInOrder(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	// Очередь намеренно перемешана: порядок берётся из QueuedAt
	queue := []QueuedReservation{
		queuedItem("c-2", "11:00", "12:00", now.Add(2*time.Minute)),
		queuedItem("c-1", "10:00", "11:00", now.Add(1*time.Minute)),
		queuedItem("c-3", "12:00", "13:00", now.Add(3*time.Minute)),
	}

	report, err := uc.Execute(context.Background(), queue)
	require.NoError(t, err)

	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, allocator.calls)
	assert.Len(t, report.Merged, 3)
	assert.Empty(t, report.Conflicted)
	assert.Empty(t, report.SkippedClientIDs)
}

func TestExecute_ConflictGoesToReportAndDoesNotStopBatch(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{
		"c-2": &createReservation.SlotConflictError{BusyStart: "11:00", BusyEnd: "12:00"},
	}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	queue := []QueuedReservation{
		queuedItem("c-1", "10:00", "11:00", now),
		queuedItem("c-2", "11:00", "12:00", now.Add(time.Minute)),
		queuedItem("c-3", "12:00", "13:00", now.Add(2*time.Minute)),
	}

	report, err := uc.Execute(context.Background(), queue)
	require.NoError(t, err)

	assert.Len(t, report.Merged, 2)
	require.Len(t, report.Conflicted, 1)

	conflicted := report.Conflicted[0]
	assert.Equal(t, "c-2", conflicted.Item.ClientID)
	assert.Equal(t, domain.StatusConflicted, conflicted.Status)
	assert.Equal(t, types.TimeString("11:00"), conflicted.BusyStart)
	assert.Equal(t, types.TimeString("12:00"), conflicted.BusyEnd)
}

func TestExecute_SecondPassSkipsAlreadyReconciled(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{}}
	repo := &fakeRepo{persisted: map[string]*domain.Reservation{
		"c-1": {ID: 1, ClientID: "c-1"},
		"c-2": {ID: 2, ClientID: "c-2"},
	}}
	uc := NewUseCase(allocator, repo, nopLogger{})

	queue := []QueuedReservation{
		queuedItem("c-1", "10:00", "11:00", now),
		queuedItem("c-2", "11:00", "12:00", now.Add(time.Minute)),
	}

	report, err := uc.Execute(context.Background(), queue)
	require.NoError(t, err)

	// Повторная сверка той же очереди не создаёт дубликатов
	assert.Empty(t, report.Merged)
	assert.Empty(t, allocator.calls)
	assert.Equal(t, []string{"c-1", "c-2"}, report.SkippedClientIDs)
}

func TestExecute_ClientIDRaceCountsAsSkipped(t *testing.T) {
	allocator := &fakeAllocator{results: map[string]error{
		"c-1": createReservation.ErrClientIDTaken,
	}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	report, err := uc.Execute(context.Background(), []QueuedReservation{
		queuedItem("c-1", "10:00", "11:00", time.Now()),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1"}, report.SkippedClientIDs)
}

func TestExecute_StaleItemRejectedAndDoesNotStopBatch(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{
		"c-stale": fmt.Errorf("%w: date is in the past", createReservation.ErrInvalidDate),
	}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	// Первый элемент устарел, пока устройство было офлайн. Он не должен
	// заклинить очередь: второй элемент всё равно сливается
	queue := []QueuedReservation{
		queuedItem("c-stale", "10:00", "11:00", now),
		queuedItem("c-fresh", "11:00", "12:00", now.Add(time.Minute)),
	}

	report, err := uc.Execute(context.Background(), queue)
	require.NoError(t, err)

	require.Len(t, report.Merged, 1)
	assert.Equal(t, "c-fresh", report.Merged[0].ClientID)

	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "c-stale", report.Rejected[0].Item.ClientID)
	assert.Contains(t, report.Rejected[0].Reason, "date is in the past")
	assert.Empty(t, report.Conflicted)
}

func TestExecute_ValidationErrorsRejectedPerItem(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name string
		err  error
	}{
		{name: "invalid date", err: createReservation.ErrInvalidDate},
		{name: "invalid interval", err: createReservation.ErrInvalidInterval},
		{name: "invalid input", err: createReservation.ErrInvalidInput},
		{name: "field removed", err: createReservation.ErrFieldNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allocator := &fakeAllocator{results: map[string]error{"c-bad": tc.err}}
			uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

			report, err := uc.Execute(context.Background(), []QueuedReservation{
				queuedItem("c-bad", "10:00", "11:00", now),
				queuedItem("c-ok", "11:00", "12:00", now.Add(time.Minute)),
			})
			require.NoError(t, err)

			require.Len(t, report.Rejected, 1)
			assert.Equal(t, "c-bad", report.Rejected[0].Item.ClientID)
			require.Len(t, report.Merged, 1)
			assert.Equal(t, "c-ok", report.Merged[0].ClientID)
		})
	}
}

func TestExecute_MissingClientIDRejected(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	report, err := uc.Execute(context.Background(), []QueuedReservation{
		queuedItem("", "10:00", "11:00", now),
		queuedItem("c-1", "11:00", "12:00", now.Add(time.Minute)),
	})
	require.NoError(t, err)

	// Элемент без ключа идемпотентности не сливается, но и не роняет пакет
	require.Len(t, report.Rejected, 1)
	assert.Contains(t, report.Rejected[0].Reason, "clientId")
	assert.Equal(t, []string{"c-1"}, allocator.calls)
	require.Len(t, report.Merged, 1)
}

func TestExecute_InfrastructureErrorKeepsPartialReport(t *testing.T) {
	now := time.Now()
	allocator := &fakeAllocator{results: map[string]error{
		"c-2": errors.New("db is down"),
	}}
	uc := NewUseCase(allocator, &fakeRepo{}, nopLogger{})

	queue := []QueuedReservation{
		queuedItem("c-1", "10:00", "11:00", now),
		queuedItem("c-2", "11:00", "12:00", now.Add(time.Minute)),
		queuedItem("c-3", "12:00", "13:00", now.Add(2*time.Minute)),
	}

	report, err := uc.Execute(context.Background(), queue)
	require.ErrorIs(t, err, ErrInternal)

	// Уже слитые элементы не теряются
	require.Len(t, report.Merged, 1)
	assert.Equal(t, "c-1", report.Merged[0].ClientID)
	// Обработка остановлена на сломавшемся элементе
	assert.Equal(t, []string{"c-1", "c-2"}, allocator.calls)
}
