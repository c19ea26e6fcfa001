package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kost/internal/domains/booking/model"
)

func TestPeriod_EndDate(t *testing.T) {
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period model.Period
		want   time.Time
	}{
		{model.PeriodWeek, time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC)},
		{model.PeriodMonth, start.AddDate(0, 1, 0)},
		{model.Period3Months, start.AddDate(0, 3, 0)},
		{model.Period6Months, start.AddDate(0, 6, 0)},
		{model.Period12Months, time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			end, err := tt.period.EndDate(start)

			require.NoError(t, err)
			assert.Equal(t, tt.want, end)
		})
	}

	_, err := model.Period("DAY").EndDate(start)
	assert.ErrorIs(t, err, model.ErrUnknownPeriod)
}

func TestPeriod_Price(t *testing.T) {
	tests := []struct {
		name    string
		period  model.Period
		weekly  int64
		monthly int64
		want    int64
		wantErr error
	}{
		{name: "week", period: model.PeriodWeek, weekly: 400000, monthly: 1500000, want: 400000},
		{name: "month", period: model.PeriodMonth, weekly: 400000, monthly: 1500000, want: 1500000},
		{name: "three months", period: model.Period3Months, monthly: 1500000, want: 4500000},
		{name: "six months", period: model.Period6Months, monthly: 1500000, want: 9000000},
		{name: "twelve months", period: model.Period12Months, monthly: 1500000, want: 18000000},
		{name: "week without weekly price", period: model.PeriodWeek, monthly: 1500000, wantErr: model.ErrNoWeeklyPrice},
		{name: "month without monthly price", period: model.Period3Months, weekly: 400000, wantErr: model.ErrNoMonthlyPrice},
		{name: "unknown period", period: "DAY", weekly: 1, monthly: 1, wantErr: model.ErrUnknownPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := tt.period.Price(tt.weekly, tt.monthly)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	assert.NoError(t, model.StatusPending.Validate(nil))
	assert.NoError(t, model.StatusConfirmed.Validate(nil))
	assert.NoError(t, model.StatusCancelled.Validate(nil))
	assert.ErrorIs(t, model.Status("confirmed").Validate(nil), model.ErrUnknownStatus)
}

func TestBooking_IsActive(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	active := model.Booking{Status: model.StatusConfirmed, EndDate: now.AddDate(0, 0, 1)}
	endsNow := model.Booking{Status: model.StatusConfirmed, EndDate: now}
	ended := model.Booking{Status: model.StatusConfirmed, EndDate: now.AddDate(0, 0, -1)}
	pending := model.Booking{Status: model.StatusPending, EndDate: now.AddDate(0, 1, 0)}

	assert.True(t, active.IsActive(now))
	assert.True(t, endsNow.IsActive(now))
	assert.False(t, ended.IsActive(now))
	assert.False(t, pending.IsActive(now))
}
