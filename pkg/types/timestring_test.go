package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    TimeString
		expectedErr bool
	}{
		{name: "valid time", input: "18:00", expected: "18:00"},
		{name: "midnight", input: "00:00", expected: "00:00"},
		{name: "last minute of day", input: "23:59", expected: "23:59"},
		{name: "missing leading zero", input: "9:30", expected: "09:30"},
		{name: "out of range hour", input: "24:00", expectedErr: true},
		{name: "out of range minute", input: "18:60", expectedErr: true},
		{name: "garbage", input: "abc", expectedErr: true},
		{name: "empty", input: "", expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.input)
			if tc.expectedErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("18:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	testCases := []struct {
		name        string
		start       TimeString
		add         int
		expected    TimeString
		expectedErr bool
	}{
		{name: "hour forward", start: "18:00", add: 60, expected: "19:00"},
		{name: "half hour", start: "18:00", add: 30, expected: "18:30"},
		{name: "backwards", start: "18:00", add: -30, expected: "17:30"},
		{name: "past midnight", start: "23:30", add: 60, expectedErr: true},
		{name: "before day start", start: "00:10", add: -30, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.start.AddMinutes(tc.add)
			if tc.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("bad").IsBefore("10:00"))

	d, err := TimeString("18:00").MinutesUntil("19:30")
	require.NoError(t, err)
	assert.Equal(t, 90, d)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("18:00:00"))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan([]byte("09:30")))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 1, 21, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("21:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
