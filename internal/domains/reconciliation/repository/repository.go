package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"kost/infras/otel"
	"kost/infras/postgres"
	bookingModel "kost/internal/domains/booking/model"
	bookingRepo "kost/internal/domains/booking/repository"
	paymentModel "kost/internal/domains/payment/model"
	paymentRepo "kost/internal/domains/payment/repository"
	"kost/internal/domains/reconciliation/model"
	roomRepo "kost/internal/domains/room/repository"
	"kost/shared"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/timezone"
	"time"
)

// Store is every read and write the reconciler needs. Writes made inside
// WithTx commit or roll back together.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// GetBooking locks the booking row for the enclosing transaction.
	GetBooking(ctx context.Context, id string) (bookingModel.Booking, error)
	SetBookingStatus(ctx context.Context, id string, status bookingModel.Status, actor string) error
	SetRoomAvailability(ctx context.Context, roomID string, available bool, actor string) error
	CountOtherActiveConfirmed(ctx context.Context, roomID, excludeBookingID string, now time.Time) (int, error)
	DeleteBooking(ctx context.Context, id string) error
	ActiveConfirmedRoomIDs(ctx context.Context, now time.Time) ([]string, error)
	MarkRoomsUnavailable(ctx context.Context, roomIDs []string, actor string) ([]string, error)
}

type storeImpl struct {
	db       *postgres.Connection
	bookings bookingRepo.Booking
	rooms    roomRepo.Room
	payments paymentRepo.Payment
	otel     otel.Otel
}

func New(db *postgres.Connection, bookings bookingRepo.Booking, rooms roomRepo.Room, payments paymentRepo.Payment, otel otel.Otel) Store {
	return &storeImpl{
		db:       db,
		bookings: bookings,
		rooms:    rooms,
		payments: payments,
		otel:     otel,
	}
}

func (s *storeImpl) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithTx(ctx, fn) //nolint:wrapcheck
}

func (s *storeImpl) GetBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reconciliation.GetBooking")
	defer scope.End()

	booking, err := s.bookings.GetForUpdate(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking %s: %w", id, err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrBookingNotFound
	}

	return booking, nil
}

func (s *storeImpl) SetBookingStatus(ctx context.Context, id string, status bookingModel.Status, actor string) error {
	return s.bookings.Update(ctx, map[string]any{ //nolint:wrapcheck
		bookingModel.FieldStatus: status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
}

func (s *storeImpl) SetRoomAvailability(ctx context.Context, roomID string, available bool, actor string) error {
	return s.rooms.SetAvailability(ctx, roomID, available, actor) //nolint:wrapcheck
}

func (s *storeImpl) CountOtherActiveConfirmed(ctx context.Context, roomID, excludeBookingID string, now time.Time) (int, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.StatusConfirmed, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: bookingModel.FieldID, Value: excludeBookingID, Operator: gDto.FilterOperatorNotEq},
			gDto.Filter{Field: bookingModel.FieldEndDate, Value: now, Operator: gDto.FilterOperatorGreaterEq},
		},
	}

	return s.bookings.Count(ctx, filter) //nolint:wrapcheck
}

// DeleteBooking removes the booking and its payment row.
func (s *storeImpl) DeleteBooking(ctx context.Context, id string) error {
	paymentFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: paymentModel.FieldBookingID, Value: id, Operator: gDto.FilterOperatorEq},
		},
	}

	if err := s.payments.Delete(ctx, paymentFilter); err != nil {
		return fmt.Errorf("failed to delete payment of booking %s: %w", id, err)
	}

	if err := s.bookings.Delete(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}

	return nil
}

func (s *storeImpl) ActiveConfirmedRoomIDs(ctx context.Context, now time.Time) ([]string, error) {
	return s.bookings.ActiveConfirmedRoomIDs(ctx, now) //nolint:wrapcheck
}

func (s *storeImpl) MarkRoomsUnavailable(ctx context.Context, roomIDs []string, actor string) ([]string, error) {
	return s.rooms.MarkUnavailable(ctx, roomIDs, actor) //nolint:wrapcheck
}
