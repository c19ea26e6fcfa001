package dto

import (
	"kost/internal/domains/booking/model"
	roomModel "kost/internal/domains/room/model"
	"kost/shared"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	gModel "kost/shared/model"
	"kost/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID    string       `json:"room_id"    validate:"required,uuid"`
	Period    model.Period `json:"period"     validate:"required,domain"`
	StartDate string       `json:"start_date" validate:"required,datetime=2006-01-02"`
	Notes     string       `json:"notes"      validate:"omitempty,max=500"`
}

// ToModel prices the booking against room and stamps it PENDING.
func (c *CreateBookingRequest) ToModel(user string, room roomModel.Room, now time.Time) (model.Booking, error) {
	start, err := timezone.Parse(DateLayout, c.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	if start.Before(timezone.StartOfDay(now)) {
		return model.Booking{}, model.ErrStartDateInThePast
	}

	end, err := c.Period.EndDate(start)
	if err != nil {
		return model.Booking{}, err
	}

	total, err := c.Period.Price(room.PriceWeekly, room.PriceMonthly)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:         uuid.NewString(),
		UserID:     user,
		RoomID:     room.ID,
		Period:     c.Period,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     model.StatusPending,
		Notes:      c.Notes,
		Metadata:   gModel.NewMetadata(user, now),
	}, nil
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,domain"`
}

type BookingResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	RoomID     string `json:"room_id"`
	Period     string `json:"period"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	PaymentID  string `json:"payment_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.Period = string(model.Period)
	r.StartDate = timezone.Format(model.StartDate, DateLayout)
	r.EndDate = timezone.Format(model.EndDate, DateLayout)
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.Notes = model.Notes
	r.PaymentID = constant.Empty

	if model.PaymentID != nil {
		r.PaymentID = *model.PaymentID
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
