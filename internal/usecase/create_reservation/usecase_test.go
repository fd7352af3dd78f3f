package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FP-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/FP-ReservationService/internal/integrations/venueservice"
	"github.com/m04kA/FP-ReservationService/pkg/txmanager"
	"github.com/m04kA/FP-ReservationService/pkg/types"
)

type fakeRepo struct {
	existing  []*domain.Reservation
	createErr error
	created   *domain.Reservation
}

func (f *fakeRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	res.ID = 42
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
}

func (f *fakeRepo) GetByFieldAndDate(_ context.Context, _ domain.FieldDayFilter) ([]*domain.Reservation, error) {
	return f.existing, nil
}

type fakeVenue struct {
	field *venueservice.Field
	err   error
}

func (f *fakeVenue) GetField(_ context.Context, _ int64) (*venueservice.Field, error) {
	return f.field, f.err
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	testDay = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *fakeRepo, venue *fakeVenue, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, venue, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		FieldID:         1,
		Date:            testDay,
		StartTime:       "18:00",
		EndTime:         "19:30",
		CustomerName:    "Иван",
		CustomerContact: "+79990001122",
		Source:          domain.SourceOnline,
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	repo := &fakeRepo{}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, Name: "Поле 1", PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Поле 1", resp.FieldName)
	// 90 минут = два начатых часовых слота
	assert.Equal(t, 2000.0, resp.Price)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	// Серверный ключ идемпотентности назначен
	assert.NotEmpty(t, resp.ClientID)
}

func TestExecute_KeepsClientProvidedClientID(t *testing.T) {
	repo := &fakeRepo{}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	req := validRequest()
	req.ClientID = "device-abc-001"
	req.Source = domain.SourceOffline

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "device-abc-001", resp.ClientID)
	assert.Equal(t, string(domain.SourceOffline), resp.Source)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeRepo{
		existing: []*domain.Reservation{
			{
				ID:              7,
				FieldID:         1,
				ReservationDate: testDay,
				StartTime:       "19:00",
				EndTime:         "20:00",
				Status:          domain.StatusConfirmed,
			},
		},
	}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSlotConflict)

	// Занятый интервал доступен для отображения пользователю
	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, types.TimeString("19:00"), conflictErr.BusyStart)
	assert.Equal(t, types.TimeString("20:00"), conflictErr.BusyEnd)

	assert.Nil(t, repo.created, "reservation must not be inserted on conflict")
}

func TestExecute_TouchingSlotDoesNotConflict(t *testing.T) {
	repo := &fakeRepo{
		existing: []*domain.Reservation{
			{
				ID:              7,
				FieldID:         1,
				ReservationDate: testDay,
				StartTime:       "19:30",
				EndTime:         "20:30",
				Status:          domain.StatusPending,
			},
		},
	}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{
		existing: []*domain.Reservation{
			{
				ID:              7,
				FieldID:         1,
				ReservationDate: testDay,
				StartTime:       "18:00",
				EndTime:         "19:00",
				Status:          domain.StatusCancelled,
			},
		},
	}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_FieldNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeVenue{err: venueservice.ErrFieldNotFound}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestExecute_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(req *Request)
		expectedErr error
	}{
		{
			name:        "date in the past",
			mutate:      func(req *Request) { req.Date = testNow.AddDate(0, 0, -1) },
			expectedErr: ErrInvalidDate,
		},
		{
			name: "inverted interval",
			mutate: func(req *Request) {
				req.StartTime = "19:00"
				req.EndTime = "18:00"
			},
			expectedErr: ErrInvalidInterval,
		},
		{
			name: "empty interval",
			mutate: func(req *Request) {
				req.StartTime = "18:00"
				req.EndTime = "18:00"
			},
			expectedErr: ErrInvalidInterval,
		},
		{
			name:        "too short",
			mutate:      func(req *Request) { req.EndTime = "18:15" },
			expectedErr: ErrInvalidInterval,
		},
		{
			name:        "too long",
			mutate:      func(req *Request) { req.EndTime = "22:30" },
			expectedErr: ErrInvalidInterval,
		},
		{
			name:        "missing customer name",
			mutate:      func(req *Request) { req.CustomerName = "" },
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "unknown source",
			mutate:      func(req *Request) { req.Source = "fax" },
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "non-positive field id",
			mutate:      func(req *Request) { req.FieldID = 0 },
			expectedErr: ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
			uc := newTestUseCase(&fakeRepo{}, venue, &fakeTxManager{})

			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestExecute_SerializationFailureIsRetryable(t *testing.T) {
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(&fakeRepo{}, venue, &fakeTxManager{err: txmanager.ErrSerializationFailure})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRetryable)
}

func TestExecute_ClientIDTaken(t *testing.T) {
	repo := &fakeRepo{createErr: reservationRepo.ErrClientIDTaken}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	req := validRequest()
	req.ClientID = "dup-key"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientIDTaken)
}

func TestExecute_InternalRepoError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("connection reset")}
	venue := &fakeVenue{field: &venueservice.Field{ID: 1, PricePerSlot: 1000}}
	uc := newTestUseCase(repo, venue, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
