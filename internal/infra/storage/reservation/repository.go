package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FP-ReservationService/internal/domain"
	"github.com/m04kA/FP-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/FP-ReservationService/pkg/txmanager"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"client_id",
	"field_id",
	"field_name",
	"reservation_date",
	"start_time",
	"end_time",
	"customer_name",
	"customer_contact",
	"price",
	"payment_status",
	"status",
	"source",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// При нарушении уникальности client_id возвращает ErrClientIDTaken -
// так ограничение идемпотентности enforced на границе хранилища.
// Если в контексте есть активная транзакция, выполняется в ней
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"client_id",
			"field_id",
			"field_name",
			"reservation_date",
			"start_time",
			"end_time",
			"customer_name",
			"customer_contact",
			"price",
			"payment_status",
			"status",
			"source",
		).
		Values(
			res.ClientID,
			res.FieldID,
			res.FieldName,
			res.ReservationDate,
			res.StartTime,
			res.EndTime,
			res.CustomerName,
			res.CustomerContact,
			res.Price,
			res.PaymentStatus,
			res.Status,
			res.Source,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: client_id=%s", ErrClientIDTaken, res.ClientID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByClientID получает бронирование по ключу идемпотентности
// Используется сверкой офлайн-очереди, чтобы не отправлять повторно
// уже сохранённые бронирования
func (r *Repository) GetByClientID(ctx context.Context, clientID string) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_id": clientID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByClientID")
}

// GetByFieldAndDate получает бронирования поля на дату
// По умолчанию только активные (pending/confirmed); IncludeInactive
// добавляет отменённые, завершённые и conflicted.
// Внутри транзакции добавляет FOR UPDATE - так два конкурентных создания
// на одну пару (поле, дата) сериализуются
func (r *Repository) GetByFieldAndDate(ctx context.Context, filter domain.FieldDayFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"field_id": filter.FieldID}).
		Where(squirrel.Eq{"reservation_date": filter.Date}).
		OrderBy("start_time ASC")

	if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatusFrom переводит бронирование из статуса from в статус to
// Compare-and-set: условие WHERE status = from исключает гонку между
// конкурентными переходами. Возвращает false, если строка не обновлена
// (статус уже изменился или бронирование не существует)
func (r *Repository) UpdateStatusFrom(
	ctx context.Context,
	id int64,
	from, to domain.ReservationStatus,
	cancellationReason *string,
) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", cancellationReason).
			Set("cancelled_at", time.Now())
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusFrom - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

// scanOne сканирует одну строку в Reservation
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.FieldID,
		&res.FieldName,
		&res.ReservationDate,
		&res.StartTime,
		&res.EndTime,
		&res.CustomerName,
		&res.CustomerContact,
		&res.Price,
		&res.PaymentStatus,
		&res.Status,
		&res.Source,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует все строки результата
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.ClientID,
			&res.FieldID,
			&res.FieldName,
			&res.ReservationDate,
			&res.StartTime,
			&res.EndTime,
			&res.CustomerName,
			&res.CustomerContact,
			&res.Price,
			&res.PaymentStatus,
			&res.Status,
			&res.Source,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan reservation row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}

	return reservations, nil
}
