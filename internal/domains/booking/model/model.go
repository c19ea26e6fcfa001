package model

import (
	"errors"
	"fmt"
	"kost/config"
	"kost/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldRoomID     = "room_id"
	FieldPeriod     = "period"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
	FieldNotes      = "notes"
	FieldPaymentID  = "payment_id"
)

var (
	ErrUnknownPeriod      = errors.New("unknown booking period")
	ErrUnknownStatus      = errors.New("unknown booking status")
	ErrNoWeeklyPrice      = errors.New("room has no weekly price")
	ErrNoMonthlyPrice     = errors.New("room has no monthly price")
	ErrStartDateInThePast = errors.New("start date is in the past")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Validate is called by the "domain" validation tag.
func (s Status) Validate(_ *config.Config) error {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStatus, s)
	}
}

type Period string

const (
	PeriodWeek     Period = "WEEK"
	PeriodMonth    Period = "MONTH"
	Period3Months  Period = "3MO"
	Period6Months  Period = "6MO"
	Period12Months Period = "12MO"
)

var periodMonths = map[Period]int{
	PeriodMonth:    1,
	Period3Months:  3,
	Period6Months:  6,
	Period12Months: 12,
}

// Validate is called by the "domain" validation tag.
func (p Period) Validate(_ *config.Config) error {
	if p == PeriodWeek {
		return nil
	}

	if _, ok := periodMonths[p]; ok {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownPeriod, p)
}

// EndDate returns the last day covered by a booking starting at start.
func (p Period) EndDate(start time.Time) (time.Time, error) {
	if p == PeriodWeek {
		return start.AddDate(0, 0, 7), nil
	}

	months, ok := periodMonths[p]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownPeriod, p)
	}

	return start.AddDate(0, months, 0), nil
}

// Price returns the total for the period given the room tariffs.
func (p Period) Price(weekly, monthly int64) (int64, error) {
	if p == PeriodWeek {
		if weekly <= 0 {
			return 0, ErrNoWeeklyPrice
		}

		return weekly, nil
	}

	months, ok := periodMonths[p]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPeriod, p)
	}

	if monthly <= 0 {
		return 0, ErrNoMonthlyPrice
	}

	return monthly * int64(months), nil
}

type Booking struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	RoomID     string    `db:"room_id"`
	Period     Period    `db:"period"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	TotalPrice int64     `db:"total_price"`
	Status     Status    `db:"status"`
	Notes      string    `db:"notes"`
	PaymentID  *string   `db:"payment_id"`
	model.Metadata
}

// IsActive reports a confirmed booking that has not ended at now.
func (b Booking) IsActive(now time.Time) bool {
	return b.Status == StatusConfirmed && !b.EndDate.Before(now)
}
