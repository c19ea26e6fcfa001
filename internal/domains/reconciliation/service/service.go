package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"kost/config"
	"kost/infras/kafka"
	"kost/infras/otel"
	bookingModel "kost/internal/domains/booking/model"
	paymentModel "kost/internal/domains/payment/model"
	"kost/internal/domains/reconciliation/model"
	"kost/internal/domains/reconciliation/model/dto"
	"kost/internal/domains/reconciliation/repository"
	"kost/shared"
	"kost/shared/cache"
	"kost/shared/constant"
	"kost/shared/failure"
	"kost/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	errUpdateBooking = errors.New("failed to update booking")
	errRemoveBooking = errors.New("failed to remove booking")
)

// Reconciler keeps booking status, payment status and room availability
// consistent across admin actions, gateway notifications and the sync job.
type Reconciler interface {
	UpdateBookingStatus(ctx context.Context, id string, status bookingModel.Status) (bookingModel.Booking, error)
	ApplyGatewayOutcome(ctx context.Context, bookingID string, outcome paymentModel.Outcome) (dto.GatewayResult, error)
	RemoveBooking(ctx context.Context, id string) error
	SyncRooms(ctx context.Context) dto.SyncResult
}

type serviceImpl struct {
	store    repository.Store
	cfg      *config.Config
	cache    cache.RedisCache
	producer kafka.Producer
	otel     otel.Otel
}

func New(store repository.Store, cfg *config.Config, cache cache.RedisCache, producer kafka.Producer, otel otel.Otel) Reconciler {
	return &serviceImpl{
		store:    store,
		cfg:      cfg,
		cache:    cache,
		producer: producer,
		otel:     otel,
	}
}

// UpdateBookingStatus applies an admin decision. CONFIRMED takes the room;
// CANCELLED and PENDING free it only when no other active confirmed booking holds it.
func (s *serviceImpl) UpdateBookingStatus(ctx context.Context, id string, status bookingModel.Status) (booking bookingModel.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = status.Validate(s.cfg); err != nil {
		return booking, failure.BadRequest(err) // nolint:wrapcheck
	}

	actor := actorFromContext(ctx, constant.RoleAdmin)

	var transition model.Transition

	err = s.store.WithTx(ctx, func(ctx context.Context) error {
		booking, err = s.store.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		transition = model.Transition{
			BookingID:  booking.ID,
			RoomID:     booking.RoomID,
			From:       booking.Status,
			To:         status,
			Source:     model.SourceAdmin,
			OccurredAt: timezone.Now(),
		}

		if err = s.store.SetBookingStatus(ctx, booking.ID, status, actor); err != nil {
			return err
		}

		available := false

		if status != bookingModel.StatusConfirmed {
			others, err := s.store.CountOtherActiveConfirmed(ctx, booking.RoomID, booking.ID, transition.OccurredAt)
			if err != nil {
				return err
			}

			available = others == 0
		}

		if err = s.store.SetRoomAvailability(ctx, booking.RoomID, available, actor); err != nil {
			return err
		}

		transition.RoomAvailable = &available
		booking.Status = status

		return nil
	})

	if errors.Is(err, model.ErrBookingNotFound) {
		return booking, failure.NotFound(model.ErrBookingNotFound.Error()) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return booking, failure.InternalError(errUpdateBooking) // nolint:wrapcheck
	}

	s.afterCommit(ctx, transition)

	return booking, nil
}

// ApplyGatewayOutcome moves a booking according to its payment. Re-applying
// the same outcome is a no-op. A failed payment cancels the booking but leaves
// the room flag untouched.
func (s *serviceImpl) ApplyGatewayOutcome(ctx context.Context, bookingID string, outcome paymentModel.Outcome) (res dto.GatewayResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyGatewayOutcome")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("outcome", outcome)

	res.BookingID = bookingID

	var target bookingModel.Status

	switch outcome {
	case paymentModel.OutcomeSettled:
		target = bookingModel.StatusConfirmed
	case paymentModel.OutcomeFailed:
		target = bookingModel.StatusCancelled
	case paymentModel.OutcomePending:
		log.Info().Str("booking_id", bookingID).Msg("payment pending, booking left unchanged")

		return res, nil
	default:
		log.Warn().Str("booking_id", bookingID).Str("outcome", outcome.String()).Msg("unrecognised payment outcome, booking left unchanged")

		return res, nil
	}

	var transition model.Transition

	err = s.store.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.store.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		res.Status = booking.Status

		if booking.Status == target {
			return nil
		}

		transition = model.Transition{
			BookingID:  booking.ID,
			RoomID:     booking.RoomID,
			From:       booking.Status,
			To:         target,
			Source:     model.SourceGateway,
			OccurredAt: timezone.Now(),
		}

		if err = s.store.SetBookingStatus(ctx, booking.ID, target, constant.ActorGateway); err != nil {
			return err
		}

		if target == bookingModel.StatusConfirmed {
			if err = s.store.SetRoomAvailability(ctx, booking.RoomID, false, constant.ActorGateway); err != nil {
				return err
			}

			available := false
			transition.RoomAvailable = &available
		}

		res.Status = target
		res.Changed = true

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to apply payment outcome")

		return dto.GatewayResult{BookingID: bookingID}, fmt.Errorf("failed to apply payment outcome: %w", err)
	}

	if res.Changed {
		s.afterCommit(ctx, transition)
	} else {
		log.Info().Str("booking_id", bookingID).Str("status", string(res.Status)).Msg("booking already in target status")
	}

	return res, nil
}

// RemoveBooking deletes a booking with its payment. Removing a confirmed
// booking frees the room when nothing else holds it.
func (s *serviceImpl) RemoveBooking(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := actorFromContext(ctx, constant.RoleAdmin)

	var (
		transition model.Transition
		roomFreed  bool
	)

	err = s.store.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.store.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		transition = model.Transition{
			BookingID:  booking.ID,
			RoomID:     booking.RoomID,
			From:       booking.Status,
			Source:     model.SourceAdmin,
			OccurredAt: timezone.Now(),
		}

		if err = s.store.DeleteBooking(ctx, booking.ID); err != nil {
			return err
		}

		if booking.Status != bookingModel.StatusConfirmed {
			return nil
		}

		others, err := s.store.CountOtherActiveConfirmed(ctx, booking.RoomID, booking.ID, transition.OccurredAt)
		if err != nil {
			return err
		}

		if others > 0 {
			return nil
		}

		if err = s.store.SetRoomAvailability(ctx, booking.RoomID, true, actor); err != nil {
			return err
		}

		roomFreed = true

		return nil
	})

	if errors.Is(err, model.ErrBookingNotFound) {
		return failure.NotFound(model.ErrBookingNotFound.Error()) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to remove booking")

		return failure.InternalError(errRemoveBooking) // nolint:wrapcheck
	}

	if roomFreed {
		available := true
		transition.RoomAvailable = &available
	}

	s.afterCommit(ctx, transition)

	return nil
}

// SyncRooms marks rooms with an active confirmed booking unavailable. It never
// marks a room available and never returns an error.
func (s *serviceImpl) SyncRooms(ctx context.Context) (res dto.SyncResult) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncRooms")
	defer scope.End()

	res.RoomIDs = []string{}

	roomIDs, err := s.store.ActiveConfirmedRoomIDs(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("availability sync failed to list active bookings")

		res.Error = err.Error()

		return res
	}

	res.ActiveRooms = len(roomIDs)

	if len(roomIDs) == 0 {
		return res
	}

	updated, err := s.store.MarkRoomsUnavailable(ctx, roomIDs, constant.ActorSystem)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("active_rooms", len(roomIDs)).Msg("availability sync failed to update rooms")

		res.Error = err.Error()

		return res
	}

	res.Updated = len(updated)
	if updated != nil {
		res.RoomIDs = updated
	}

	scope.SetAttributes(map[string]any{
		"active_rooms": res.ActiveRooms,
		"updated":      res.Updated,
		"room_ids":     res.RoomIDs,
	})

	if res.Updated > 0 {
		log.Info().Strs("room_ids", updated).Msg("availability sync marked rooms unavailable")

		go func() {
			c := context.WithoutCancel(ctx)

			for _, roomID := range updated {
				shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(constant.CacheRoomGet, roomID))
			}

			shared.InvalidateCaches(c, s.cache, constant.CacheRoomGetAll, constant.CacheRoomCount)
		}()
	}

	return res
}

// afterCommit invalidates caches and publishes the transition. Both are best effort.
func (s *serviceImpl) afterCommit(ctx context.Context, transition model.Transition) {
	log.Info().
		Str("booking_id", transition.BookingID).
		Str("room_id", transition.RoomID).
		Str("from", string(transition.From)).
		Str("to", string(transition.To)).
		Str("source", string(transition.Source)).
		Msg("booking reconciled")

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache,
			shared.BuildCacheKey(constant.CacheRoomGet, transition.RoomID),
			constant.CacheRoomGetAll,
			constant.CacheRoomCount,
			shared.BuildCacheKey(constant.CacheBookingGet, transition.BookingID),
			constant.CacheBookingGetAll,
			constant.CacheBookingCount,
		)

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.BookingStatus, kafka.Message{
			Key:   transition.BookingID,
			Value: transition,
		})
		if err != nil {
			log.Warn().Err(err).Str("booking_id", transition.BookingID).Msg("failed to publish booking transition")
		}
	}()
}

func actorFromContext(ctx context.Context, fallback string) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != constant.Empty {
		return user
	}

	return fallback
}
