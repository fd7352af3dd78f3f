package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/FP-ReservationService/pkg/types"
)

func slot(fieldID int64, date time.Time, start, end types.TimeString) TimeSlot {
	return TimeSlot{FieldID: fieldID, Date: date, StartTime: start, EndTime: end}
}

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	otherDay := day.AddDate(0, 0, 1)

	testCases := []struct {
		name     string
		a        TimeSlot
		b        TimeSlot
		expected bool
	}{
		{
			name:     "identical intervals",
			a:        slot(1, day, "18:00", "19:00"),
			b:        slot(1, day, "18:00", "19:00"),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        slot(1, day, "18:00", "19:30"),
			b:        slot(1, day, "19:00", "20:00"),
			expected: true,
		},
		{
			name:     "containment",
			a:        slot(1, day, "18:00", "21:00"),
			b:        slot(1, day, "19:00", "20:00"),
			expected: true,
		},
		{
			name:     "touching boundaries do not overlap",
			a:        slot(1, day, "18:00", "19:00"),
			b:        slot(1, day, "19:00", "20:00"),
			expected: false,
		},
		{
			name:     "touching boundaries reversed",
			a:        slot(1, day, "19:00", "20:00"),
			b:        slot(1, day, "18:00", "19:00"),
			expected: false,
		},
		{
			name:     "disjoint intervals",
			a:        slot(1, day, "10:00", "11:00"),
			b:        slot(1, day, "15:00", "16:00"),
			expected: false,
		},
		{
			name:     "same interval, different field",
			a:        slot(1, day, "18:00", "19:00"),
			b:        slot(2, day, "18:00", "19:00"),
			expected: false,
		},
		{
			name:     "same interval, different date",
			a:        slot(1, day, "18:00", "19:00"),
			b:        slot(1, otherDay, "18:00", "19:00"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.a, tc.b))
			// Overlap is symmetric
			assert.Equal(t, tc.expected, Overlaps(tc.b, tc.a))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	reservation := func(id int64, start, end types.TimeString, status ReservationStatus) *Reservation {
		return &Reservation{
			ID:              id,
			FieldID:         1,
			ReservationDate: day,
			StartTime:       start,
			EndTime:         end,
			Status:          status,
		}
	}

	existing := []*Reservation{
		reservation(1, "10:00", "11:00", StatusPending),
		reservation(2, "11:00", "12:00", StatusConfirmed),
		reservation(3, "12:00", "13:00", StatusCancelled),
		reservation(4, "13:00", "14:00", StatusCompleted),
		reservation(5, "14:00", "15:00", StatusConflicted),
	}

	t.Run("active reservation blocks the slot", func(t *testing.T) {
		conflicts := FindConflicts(slot(1, day, "10:30", "11:30"), existing)
		assert.Len(t, conflicts, 2)
		assert.Equal(t, int64(1), conflicts[0].ID)
		assert.Equal(t, int64(2), conflicts[1].ID)
	})

	t.Run("inactive reservations never block", func(t *testing.T) {
		conflicts := FindConflicts(slot(1, day, "12:00", "15:00"), existing)
		assert.Empty(t, conflicts)
	})

	t.Run("free interval", func(t *testing.T) {
		conflicts := FindConflicts(slot(1, day, "16:00", "17:00"), existing)
		assert.Empty(t, conflicts)
	})
}

func TestPriceFor(t *testing.T) {
	testCases := []struct {
		name     string
		minutes  int
		expected float64
	}{
		{name: "one hour", minutes: 60, expected: 1000},
		{name: "half hour rounds up to a slot", minutes: 30, expected: 1000},
		{name: "ninety minutes is two slots", minutes: 90, expected: 2000},
		{name: "two full hours", minutes: 120, expected: 2000},
		{name: "zero", minutes: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PriceFor(1000, tc.minutes))
		})
	}
}
