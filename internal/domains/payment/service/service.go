package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"kost/config"
	"kost/infras/midtrans"
	"kost/infras/otel"
	"kost/infras/postgres"
	"kost/infras/s3"
	bookingModel "kost/internal/domains/booking/model"
	bookingRepo "kost/internal/domains/booking/repository"
	"kost/internal/domains/payment/model"
	"kost/internal/domains/payment/model/dto"
	"kost/internal/domains/payment/repository"
	reconService "kost/internal/domains/reconciliation/service"
	roomModel "kost/internal/domains/room/model"
	roomRepo "kost/internal/domains/room/repository"
	userModel "kost/internal/domains/user/model"
	userRepo "kost/internal/domains/user/repository"
	"kost/shared"
	"kost/shared/constant"
	"kost/shared/failure"
	"kost/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	archiveContentType = "application/json"
	archiveTimeLayout  = "20060102T150405.000"

	warnPaymentNotPersisted = "payment record could not be saved, token is still valid"
	warnNotReconciled       = "payment recorded but booking was not reconciled"

	msgDatastoreUnavailable = "datastore unavailable, please retry"
	msgInvalidSignature     = "invalid signature"
	msgPaymentNotFound      = "payment not found"
	msgBookingNotFound      = "booking not found"
	msgBookingAlreadyPaid   = "booking is already paid"
)

// Database is the part of the postgres connection the payment flow depends on.
type Database interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Reconnect(ctx context.Context) error
}

type Payment interface {
	CreateToken(ctx context.Context, req dto.CreateTokenRequest) (dto.TokenResult, error)
	HandleNotification(ctx context.Context, req dto.NotificationRequest, raw []byte) (dto.NotificationResult, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	db         Database
	repo       repository.Payment
	bookings   bookingRepo.Booking
	rooms      roomRepo.Room
	users      userRepo.User
	gateway    midtrans.Gateway
	archive    s3.S3
	reconciler reconService.Reconciler
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	db Database,
	repo repository.Payment,
	bookings bookingRepo.Booking,
	rooms roomRepo.Room,
	users userRepo.User,
	gateway midtrans.Gateway,
	archive s3.S3,
	reconciler reconService.Reconciler,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		db:         db,
		repo:       repo,
		bookings:   bookings,
		rooms:      rooms,
		users:      users,
		gateway:    gateway,
		archive:    archive,
		reconciler: reconciler,
		cfg:        cfg,
		otel:       otel,
	}
}

// CreateToken asks the gateway for a Snap token and records a pending payment
// for the booking. When the payment row cannot be saved the token is still
// returned as a degraded result.
func (s *serviceImpl) CreateToken(ctx context.Context, req dto.CreateTokenRequest) (res dto.TokenResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	var booking bookingModel.Booking

	err = s.retryTransient(ctx, func(ctx context.Context) error {
		found, gErr := s.bookings.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
		booking = found

		return gErr
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to get booking")

		if postgres.IsTransient(err) {
			return res, failure.ServiceUnavailable(msgDatastoreUnavailable) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if booking.UserID != user && role != constant.RoleAdmin && role != constant.RoleSuperAdmin {
		return res, failure.ResourceRestrictedError
	}

	switch booking.Status {
	case bookingModel.StatusCancelled:
		return res, failure.Conflict("booking is cancelled") // nolint:wrapcheck
	case bookingModel.StatusConfirmed:
		return res, failure.Conflict(msgBookingAlreadyPaid) // nolint:wrapcheck
	}

	// A settled payment may still sit on a PENDING booking when reconciliation
	// failed after the webhook; a new order would overwrite it.
	if booking.PaymentID != nil && *booking.PaymentID != constant.Empty {
		existing, pErr := s.repo.Get(ctx, shared.FilterByID(*booking.PaymentID, model.FieldID, model.TableName))
		if pErr != nil {
			log.Error().Err(pErr).Str("payment_id", *booking.PaymentID).Msg("failed to get existing payment")

			return res, fmt.Errorf("failed to get existing payment: %w", pErr)
		}

		if existing.Status.Outcome() == model.OutcomeSettled {
			log.Warn().Str("booking_id", booking.ID).Str("order_id", existing.OrderID).Msg("token requested for a settled payment")

			return res, failure.Conflict(msgBookingAlreadyPaid) // nolint:wrapcheck
		}
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	tenant, err := s.users.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tenant")

		return res, fmt.Errorf("failed to get tenant: %w", err)
	}

	now := timezone.Now()
	orderID := dto.NewOrderID(booking.ID, now)

	scope.SetAttribute("order_id", orderID)

	transaction, err := s.gateway.CreateTransaction(ctx, midtrans.TransactionRequest{
		OrderID:     orderID,
		GrossAmount: booking.TotalPrice,
		ItemID:      booking.RoomID,
		ItemName:    itemName(room, booking),
		Customer: midtrans.Customer{
			FullName: tenant.DisplayName(),
			Email:    tenant.Email,
			Phone:    tenant.PhoneNumber(),
		},
		StartTime: now,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to create payment transaction")

		var gErr *midtrans.GatewayError
		if errors.As(err, &gErr) {
			return res, failure.InternalError(gErr) // nolint:wrapcheck
		}

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	payment := dto.NewPendingPayment(booking.ID, orderID, booking.TotalPrice, transaction.Token, transaction.RedirectURL, user, now)

	var paymentID string

	err = s.retryTransient(ctx, func(ctx context.Context) error {
		return s.db.WithTx(ctx, func(ctx context.Context) error {
			id, err := s.repo.Upsert(ctx, payment)
			if err != nil {
				return err
			}

			paymentID = id

			return s.bookings.Update(ctx, map[string]any{
				bookingModel.FieldPaymentID: id,
				constant.FieldModifiedAt:    now,
				constant.FieldModifiedBy:    user,
			}, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName))
		})
	})
	if errors.Is(err, model.ErrPaymentSettled) {
		log.Warn().Str("booking_id", booking.ID).Str("order_id", orderID).Msg("payment settled while a new token was issued")

		return res, failure.Conflict(msgBookingAlreadyPaid) // nolint:wrapcheck
	}

	if err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("payment token issued but payment record was not saved")

		return dto.Degraded(transaction.Token, transaction.RedirectURL, orderID, warnPaymentNotPersisted), nil
	}

	log.Info().Str("order_id", orderID).Str("payment_id", paymentID).Msg("payment token issued")

	return dto.Issued(transaction.Token, transaction.RedirectURL, orderID, paymentID), nil
}

// HandleNotification records a gateway notification on its payment and
// reconciles the booking. Reconciliation failures are reported in the result,
// not as an error, so the gateway does not keep retrying.
func (s *serviceImpl) HandleNotification(ctx context.Context, req dto.NotificationRequest, raw []byte) (res dto.NotificationResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleNotification")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"order_id":           req.OrderID,
		"transaction_status": req.TransactionStatus,
	})

	if !model.VerifySignature(req.SignatureKey, req.OrderID, req.StatusCode, req.GrossAmount, s.cfg.Payment.Midtrans.ServerKey) {
		if s.cfg.Payment.Midtrans.VerifySignature {
			log.Warn().Str("order_id", req.OrderID).Msg("rejected notification with invalid signature")

			return res, failure.Unauthorized(msgInvalidSignature) // nolint:wrapcheck
		}

		log.Warn().Str("order_id", req.OrderID).Msg("notification signature mismatch, verification disabled")
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(req.OrderID, model.FieldOrderID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound(msgPaymentNotFound) // nolint:wrapcheck
	}

	if amount, err := dto.ParseGrossAmount(req.GrossAmount); err == nil && amount != payment.GrossAmount {
		log.Warn().
			Str("order_id", req.OrderID).
			Int64("expected", payment.GrossAmount).
			Int64("received", amount).
			Msg("notification gross amount differs from payment")
	}

	err = s.repo.Update(ctx, req.ToUpdate(raw, constant.ActorGateway), shared.FilterByID(payment.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to update payment")

		return res, fmt.Errorf("failed to update payment: %w", err)
	}

	s.archiveNotification(ctx, req, raw)

	outcome := req.Status().Outcome()

	res = dto.NotificationResult{
		OrderID:           req.OrderID,
		TransactionStatus: req.TransactionStatus,
		Outcome:           outcome.String(),
		BookingID:         payment.BookingID,
	}

	result, err := s.reconciler.ApplyGatewayOutcome(ctx, payment.BookingID, outcome)
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Str("booking_id", payment.BookingID).Msg("failed to reconcile booking from notification")

		res.Warning = warnNotReconciled

		return res, nil
	}

	res.Reconciled = true
	res.Changed = result.Changed
	res.BookingStatus = string(result.Status)

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName),
		bookingModel.FieldID, bookingModel.FieldUserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if booking.UserID != user && role != constant.RoleAdmin && role != constant.RoleSuperAdmin {
		return res, failure.ResourceRestrictedError
	}

	payment, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound(msgPaymentNotFound) // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

// retryTransient runs fn and, on a lost connection, reconnects and runs it once more.
func (s *serviceImpl) retryTransient(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || !postgres.IsTransient(err) {
		return err
	}

	log.Warn().Err(err).Msg("transient datastore error, reconnecting")

	if rErr := s.db.Reconnect(ctx); rErr != nil {
		log.Error().Err(rErr).Msg("failed to reconnect to datastore")

		return err
	}

	return fn(ctx)
}

func (s *serviceImpl) archiveNotification(ctx context.Context, req dto.NotificationRequest, raw []byte) {
	if !s.cfg.External.S3.Enable {
		return
	}

	fileName := fmt.Sprintf("%s-%s.json", timezone.Now().Format(archiveTimeLayout), req.TransactionStatus)
	directory := fmt.Sprintf("%s/%s", s.cfg.Payment.Midtrans.NotificationPrefix, req.OrderID)

	go func() {
		c := context.WithoutCancel(ctx)

		if _, err := s.archive.UploadBytes(c, directory, fileName, archiveContentType, raw); err != nil {
			log.Warn().Err(err).Str("order_id", req.OrderID).Msg("failed to archive notification")
		}
	}()
}

func itemName(room roomModel.Room, booking bookingModel.Booking) string {
	name := room.Name
	if name == constant.Empty {
		name = booking.RoomID
	}

	return fmt.Sprintf("%s (%s)", name, booking.Period)
}
