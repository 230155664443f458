package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		unit      TimeUnit
		value     int
		wantTime  time.Time
		wantErr   error
	}{
		{
			name:     "fifteen minutes before start",
			unit:     TimeUnitMinute,
			value:    15,
			wantTime: time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC),
		},
		{
			name:     "two hours before start",
			unit:     TimeUnitHour,
			value:    2,
			wantTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "zero value rejected",
			unit:    TimeUnitMinute,
			value:   0,
			wantErr: ErrNonPositiveTimeValue,
		},
		{
			name:    "negative value rejected",
			unit:    TimeUnitHour,
			value:   -1,
			wantErr: ErrNonPositiveTimeValue,
		},
		{
			name:    "unknown unit rejected",
			unit:    TimeUnit("DAY"),
			value:   1,
			wantErr: ErrInvalidTimeUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNotification(tt.unit, tt.value, start)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, n)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, n.ID)
			assert.Equal(t, tt.wantTime, n.ScheduledTime)
			assert.False(t, n.Sent)
		})
	}
}

func TestNewNotificationNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, loc) // 10:00:00Z

	n, err := NewNotification(TimeUnitMinute, 15, start)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, n.ScheduledTime.Location())
	assert.Equal(t, time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC), n.ScheduledTime)
}

func TestNotificationValidate(t *testing.T) {
	valid := Notification{
		ID:            uuid.New(),
		TimeUnit:      TimeUnitMinute,
		TimeValue:     5,
		ScheduledTime: time.Now().UTC(),
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = uuid.Nil
	assert.ErrorIs(t, missingID.Validate(), ErrEmptyNotificationID)

	badUnit := valid
	badUnit.TimeUnit = TimeUnit("WEEK")
	assert.ErrorIs(t, badUnit.Validate(), ErrInvalidTimeUnit)

	zeroTime := valid
	zeroTime.ScheduledTime = time.Time{}
	assert.ErrorIs(t, zeroTime.Validate(), ErrZeroScheduledTime)
}
