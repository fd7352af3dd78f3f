package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FP-ReservationService/internal/domain"
)

func testEvent(newStatus domain.ReservationStatus) domain.StatusChanged {
	return domain.StatusChanged{
		Reservation: domain.Reservation{
			ID:              1,
			FieldName:       "Поле 1",
			ReservationDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			StartTime:       "18:00",
			EndTime:         "19:00",
			Price:           1000,
		},
		NewStatus:  newStatus,
		OccurredAt: time.Now(),
	}
}

func TestBuildMessage(t *testing.T) {
	t.Run("confirmed includes slot and price", func(t *testing.T) {
		text, ok := BuildMessage(testEvent(domain.StatusConfirmed))
		require.True(t, ok)
		assert.Contains(t, text, "подтверждено")
		assert.Contains(t, text, "Поле 1")
		assert.Contains(t, text, "2026-09-02")
		assert.Contains(t, text, "18:00-19:00")
		assert.Contains(t, text, "1000.00")
	})

	t.Run("cancelled", func(t *testing.T) {
		text, ok := BuildMessage(testEvent(domain.StatusCancelled))
		require.True(t, ok)
		assert.Contains(t, text, "отменено")
	})

	t.Run("completed", func(t *testing.T) {
		text, ok := BuildMessage(testEvent(domain.StatusCompleted))
		require.True(t, ok)
		assert.Contains(t, text, "Спасибо")
	})

	t.Run("no message for pending or conflicted", func(t *testing.T) {
		_, ok := BuildMessage(testEvent(domain.StatusPending))
		assert.False(t, ok)

		_, ok = BuildMessage(testEvent(domain.StatusConflicted))
		assert.False(t, ok)
	})
}
