package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kost/internal/domains/booking/model"
	"kost/internal/domains/booking/model/dto"
	roomModel "kost/internal/domains/room/model"
	gModel "kost/shared/model"
)

func room() roomModel.Room {
	return roomModel.Room{ID: "room-1", PriceWeekly: 400000, PriceMonthly: 1500000, IsAvailable: true}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

	t.Run("prices a three month booking", func(t *testing.T) {
		req := dto.CreateBookingRequest{RoomID: "room-1", Period: model.Period3Months, StartDate: "2026-03-15", Notes: "late check-in"}

		booking, err := req.ToModel("tenant-1", room(), now)

		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, "tenant-1", booking.UserID)
		assert.Equal(t, "room-1", booking.RoomID)
		assert.Equal(t, model.StatusPending, booking.Status)
		assert.Equal(t, int64(4500000), booking.TotalPrice)
		assert.Equal(t, "2026-06-15", booking.EndDate.Format(dto.DateLayout))
		assert.Equal(t, "late check-in", booking.Notes)
		assert.Equal(t, "tenant-1", booking.CreatedBy)
	})

	t.Run("today is a valid start date", func(t *testing.T) {
		req := dto.CreateBookingRequest{RoomID: "room-1", Period: model.PeriodWeek, StartDate: "2026-03-10"}

		booking, err := req.ToModel("tenant-1", room(), now)

		require.NoError(t, err)
		assert.Equal(t, int64(400000), booking.TotalPrice)
	})

	t.Run("start date in the past", func(t *testing.T) {
		req := dto.CreateBookingRequest{RoomID: "room-1", Period: model.PeriodMonth, StartDate: "2026-03-09"}

		_, err := req.ToModel("tenant-1", room(), now)

		assert.ErrorIs(t, err, model.ErrStartDateInThePast)
	})

	t.Run("room without a weekly price", func(t *testing.T) {
		r := room()
		r.PriceWeekly = 0

		req := dto.CreateBookingRequest{RoomID: "room-1", Period: model.PeriodWeek, StartDate: "2026-03-15"}

		_, err := req.ToModel("tenant-1", r, now)

		assert.ErrorIs(t, err, model.ErrNoWeeklyPrice)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := dto.CreateBookingRequest{RoomID: "room-1", Period: model.PeriodMonth, StartDate: "15/03/2026"}

		_, err := req.ToModel("tenant-1", room(), now)

		assert.Error(t, err)
	})
}

func TestBookingResponse_FromModel(t *testing.T) {
	paymentID := "payment-1"
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	res := dto.BookingResponse{}
	res.FromModel(model.Booking{
		ID:         "booking-1",
		UserID:     "tenant-1",
		RoomID:     "room-1",
		Period:     model.PeriodMonth,
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
		TotalPrice: 1500000,
		Status:     model.StatusConfirmed,
		PaymentID:  &paymentID,
		Metadata:   gModel.NewMetadata("tenant-1", now),
	})

	assert.Equal(t, "booking-1", res.ID)
	assert.Equal(t, "MONTH", res.Period)
	assert.Equal(t, "CONFIRMED", res.Status)
	assert.Equal(t, "payment-1", res.PaymentID)
	assert.Equal(t, int64(1500000), res.TotalPrice)

	res.FromModel(model.Booking{ID: "booking-2"})
	assert.Empty(t, res.PaymentID)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	res := dto.GetBookingsResponse{}
	res.FromModels([]model.Booking{{ID: "a"}, {ID: "b"}}, 25, 10)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}
