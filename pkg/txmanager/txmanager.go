package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Executor общий интерфейс для *sql.DB и *sql.Tx
// Репозитории работают через него и не знают, есть ли активная транзакция
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	// ErrSerializationFailure возвращается, когда сериализуемая транзакция
	// не смогла завершиться за отведённое число попыток.
	// Ошибка retryable - вызывающая сторона может повторить запрос
	ErrSerializationFailure = errors.New("txmanager: serialization failure, retry the request")

	// ErrTxTimeout возвращается, когда транзакция не уложилась в контекст
	ErrTxTimeout = errors.New("txmanager: transaction timed out")
)

type txKey struct{}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный по умолчанию executor (обычно *sql.DB)
func GetExecutor(ctx context.Context, def Executor) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return def
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// Manager управляет транзакциями поверх *sql.DB
type Manager struct {
	db          *sql.DB
	maxAttempts int
	retryDelay  time.Duration
}

// NewManager создает менеджер транзакций
func NewManager(db *sql.DB) *Manager {
	return &Manager{
		db:          db,
		maxAttempts: 3,
		retryDelay:  25 * time.Millisecond,
	}
}

// Do выполняет fn в обычной транзакции (read committed)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции
// При serialization failure (40001) или deadlock (40P01) повторяет
// до maxAttempts раз, после чего возвращает ErrSerializationFailure.
// Сбой никогда не приводит к выполнению fn вне транзакции - fail closed
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrTxTimeout, ctx.Err())
		case <-time.After(m.retryDelay * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrSerializationFailure, m.maxAttempts, lastErr)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTxTimeout, err)
		}
		return fmt.Errorf("txmanager: begin tx: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}
	return nil
}

// isRetryable проверяет, является ли ошибка serialization failure или deadlock
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
