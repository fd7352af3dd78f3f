package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/pkg/txmanager"
)

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var testDay = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ClientID:        "c-1",
		FieldID:         10,
		FieldName:       "Поле 1",
		ReservationDate: testDay,
		StartTime:       "18:00",
		EndTime:         "19:00",
		CustomerName:    "Иван",
		CustomerContact: "+79990001122",
		Price:           1000,
		PaymentStatus:   domain.PaymentUnpaid,
		Status:          domain.StatusPending,
		Source:          domain.SourceOnline,
	}
}

func reservationRow() *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns).
		AddRow(
			int64(1), "c-1", int64(10), "Поле 1", testDay,
			"18:00", "19:00", "Иван", "+79990001122",
			1000.0, "unpaid", "pending", "online",
			nil, nil, time.Now(), time.Now(),
		)
}

func TestCreate(t *testing.T) {
	t.Run("returns generated id and timestamps", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), time.Now(), time.Now()))

		created, err := repo.Create(context.Background(), testReservation())
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrClientIDTaken", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), testReservation())
		assert.ErrorIs(t, err, ErrClientIDTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(reservationRow())

		res, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "c-1", res.ClientID)
		assert.Equal(t, domain.StatusPending, res.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetByClientID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM reservations WHERE client_id = \$1`).
		WithArgs("c-1").
		WillReturnRows(reservationRow())

	res, err := repo.GetByClientID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByFieldAndDate(t *testing.T) {
	t.Run("filters active statuses by default", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE field_id = \$1 AND reservation_date = \$2 AND status IN \(\$3,\$4\) ORDER BY start_time ASC$`).
			WillReturnRows(reservationRow())

		list, err := repo.GetByFieldAndDate(context.Background(), domain.FieldDayFilter{
			FieldID: 10,
			Date:    testDay,
		})
		require.NoError(t, err)
		assert.Len(t, list, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("include inactive drops status filter", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM reservations WHERE field_id = \$1 AND reservation_date = \$2 ORDER BY start_time ASC$`).
			WillReturnRows(reservationRow())

		_, err := repo.GetByFieldAndDate(context.Background(), domain.FieldDayFilter{
			FieldID:         10,
			Date:            testDay,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("adds FOR UPDATE inside a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)
		mgr := txmanager.NewManager(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM reservations .+ FOR UPDATE$`).
			WillReturnRows(reservationRow())
		mock.ExpectCommit()

		err = mgr.DoSerializable(context.Background(), func(txCtx context.Context) error {
			_, err := repo.GetByFieldAndDate(txCtx, domain.FieldDayFilter{FieldID: 10, Date: testDay})
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatusFrom(t *testing.T) {
	t.Run("updates when current status matches", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("confirmed", int64(1), "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateStatusFrom(context.Background(), 1, domain.StatusPending, domain.StatusConfirmed, nil)
		require.NoError(t, err)
		assert.True(t, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when status changed concurrently", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectExec(`UPDATE reservations SET status = `).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateStatusFrom(context.Background(), 1, domain.StatusPending, domain.StatusConfirmed, nil)
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("cancellation writes reason and timestamp", func(t *testing.T) {
		repo, mock := newTestRepo(t)

		mock.ExpectExec(`UPDATE reservations SET status = \$1, updated_at = NOW\(\), cancellation_reason = \$2, cancelled_at = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		reason := "клиент заболел"
		updated, err := repo.UpdateStatusFrom(context.Background(), 1, domain.StatusConfirmed, domain.StatusCancelled, &reason)
		require.NoError(t, err)
		assert.True(t, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
