package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid morning", "09:00", false},
		{"valid midnight", "00:00", false},
		{"valid last minute", "23:59", false},
		{"missing leading zero", "9:00", true},
		{"hour out of range", "24:00", true},
		{"minute out of range", "10:60", true},
		{"empty string", "", true},
		{"garbage", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, ts.String())
			}
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	ts := TimeString("10:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	midnight := TimeString("00:00")
	minutes, err = midnight.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), shifted)

	endOfDay, err := TimeString("22:59").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), endOfDay)
}

func TestTimeStringAddMinutesOverflow(t *testing.T) {
	// Значение за полночью не представимо: сравнения действуют в пределах суток
	_, err := TimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("16:30").AddMinutes(480)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	// Ровно полночь тоже за пределами суток
	_, err = TimeString("23:00").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("01:00").AddMinutes(-120)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("14:30").IsAfter("14:00"))
	assert.False(t, TimeString("14:00").IsAfter("14:00"))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 15, 8, 5, 0, 0, time.UTC)
	assert.Equal(t, TimeString("08:05"), NewTimeString(moment))
}
