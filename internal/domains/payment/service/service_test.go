package service_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kost/config"
	"kost/infras/midtrans"
	midtransMocks "kost/infras/midtrans/mocks"
	"kost/infras/otel/mocks"
	s3Mocks "kost/infras/s3/mocks"
	bookingMocks "kost/internal/domains/booking/mocks"
	bookingModel "kost/internal/domains/booking/model"
	paymentMocks "kost/internal/domains/payment/mocks"
	"kost/internal/domains/payment/model"
	"kost/internal/domains/payment/model/dto"
	"kost/internal/domains/payment/service"
	reconDto "kost/internal/domains/reconciliation/model/dto"
	reconMocks "kost/internal/domains/reconciliation/service/mocks"
	roomMocks "kost/internal/domains/room/mocks"
	roomModel "kost/internal/domains/room/model"
	userMocks "kost/internal/domains/user/mocks"
	userModel "kost/internal/domains/user/model"
	"kost/shared/constant"
	"kost/shared/failure"
)

const serverKey = "server-key"

type fakeDB struct {
	reconnects int
}

func (f *fakeDB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeDB) Reconnect(context.Context) error {
	f.reconnects++

	return nil
}

type deps struct {
	db         *fakeDB
	repo       *paymentMocks.MockPayment
	bookings   *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	users      *userMocks.MockUser
	gateway    *midtransMocks.MockGateway
	reconciler *reconMocks.MockReconciler
}

func newService(t *testing.T, verifySignature bool) (service.Payment, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	d := deps{
		db:         &fakeDB{},
		repo:       paymentMocks.NewMockPayment(ctrl),
		bookings:   bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		gateway:    midtransMocks.NewMockGateway(ctrl),
		reconciler: reconMocks.NewMockReconciler(ctrl),
	}

	cfg := &config.Config{}
	cfg.Payment.Midtrans.ServerKey = serverKey
	cfg.Payment.Midtrans.VerifySignature = verifySignature

	svc := service.New(d.db, d.repo, d.bookings, d.rooms, d.users, d.gateway, s3Mocks.NewMockS3(ctrl), d.reconciler, cfg, mocks.NewOtel())

	return svc, d
}

func tenantContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func pendingBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:         "booking-1",
		UserID:     "tenant-1",
		RoomID:     "room-1",
		Period:     bookingModel.PeriodMonth,
		TotalPrice: 1500000,
		Status:     bookingModel.StatusPending,
	}
}

func notification(status string) dto.NotificationRequest {
	req := dto.NotificationRequest{
		OrderID:           "ORDER-booking-1-1700000000000",
		TransactionStatus: status,
		StatusCode:        "200",
		GrossAmount:       "1500000.00",
	}
	req.SignatureKey = model.Signature(req.OrderID, req.StatusCode, req.GrossAmount, serverKey)

	return req
}

func storedPayment() model.Payment {
	return model.Payment{
		ID:          "payment-1",
		BookingID:   "booking-1",
		OrderID:     "ORDER-booking-1-1700000000000",
		GrossAmount: 1500000,
		Status:      model.TransactionPending,
	}
}

func TestPaymentService_CreateToken(t *testing.T) {
	req := dto.CreateTokenRequest{BookingID: "booking-1"}
	transaction := midtrans.TransactionResponse{Token: "snap-token", RedirectURL: "https://pay.example/snap"}

	expectLookups := func(d deps) {
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-1", Name: "Kamar A"}, nil)
		d.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "tenant-1", Email: "tenant@example.com"}, nil)
	}

	t.Run("issues a token and records the payment", func(t *testing.T) {
		svc, d := newService(t, true)
		expectLookups(d)

		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tr midtrans.TransactionRequest) (midtrans.TransactionResponse, error) {
				assert.Equal(t, int64(1500000), tr.GrossAmount)
				assert.Equal(t, "Kamar A (MONTH)", tr.ItemName)
				assert.Contains(t, tr.OrderID, "ORDER-booking-1-")

				return transaction, nil
			})
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payment model.Payment) (string, error) {
			assert.Equal(t, model.TransactionPending, payment.Status)
			assert.Equal(t, "snap-token", payment.Token)

			return "payment-1", nil
		})
		d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "payment-1", fields[bookingModel.FieldPaymentID])

				return nil
			})

		res, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.NoError(t, err)
		assert.Equal(t, dto.TokenIssued, res.Outcome)
		assert.Equal(t, "snap-token", res.Token)
		assert.Equal(t, "payment-1", res.PaymentID)
		assert.Empty(t, res.Warning)
	})

	t.Run("returns a degraded token when the payment cannot be saved", func(t *testing.T) {
		svc, d := newService(t, true)
		expectLookups(d)

		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction, nil)
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return("", errors.New("constraint violated"))

		res, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.NoError(t, err)
		assert.Equal(t, dto.TokenDegraded, res.Outcome)
		assert.Equal(t, "snap-token", res.Token)
		assert.NotEmpty(t, res.Warning)
		assert.Empty(t, res.PaymentID)
	})

	t.Run("an admin may pay for another tenant's booking", func(t *testing.T) {
		svc, d := newService(t, true)
		expectLookups(d)

		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction, nil)
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return("payment-1", nil)
		d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.CreateToken(tenantContext("admin-1", constant.RoleAdmin), req)

		require.NoError(t, err)
		assert.Equal(t, dto.TokenIssued, res.Outcome)
	})

	t.Run("requires an authenticated caller", func(t *testing.T) {
		svc, _ := newService(t, true)

		_, err := svc.CreateToken(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("another tenant's booking is forbidden", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		_, err := svc.CreateToken(tenantContext("tenant-2", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cancelled booking is a conflict", func(t *testing.T) {
		svc, d := newService(t, true)

		booking := pendingBooking()
		booking.Status = bookingModel.StatusCancelled
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("confirmed booking is already paid", func(t *testing.T) {
		svc, d := newService(t, true)

		booking := pendingBooking()
		booking.Status = bookingModel.StatusConfirmed
		booking.PaymentID = stringPtr("payment-1")
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "booking is already paid", err.Error())
	})

	t.Run("pending booking with a settled payment is already paid", func(t *testing.T) {
		svc, d := newService(t, true)

		booking := pendingBooking()
		booking.PaymentID = stringPtr("payment-1")
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{
			ID:      "payment-1",
			OrderID: "ORDER-booking-1-1700000000000",
			Status:  model.TransactionSettlement,
		}, nil)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("pending booking with an expired payment gets a new order", func(t *testing.T) {
		svc, d := newService(t, true)

		booking := pendingBooking()
		booking.PaymentID = stringPtr("payment-1")
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{ID: "payment-1", Status: model.TransactionExpire}, nil)
		d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-1", Name: "Kamar A"}, nil)
		d.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "tenant-1"}, nil)
		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction, nil)
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return("payment-1", nil)
		d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.NoError(t, err)
		assert.Equal(t, dto.TokenIssued, res.Outcome)
	})

	t.Run("payment settled during issuance is a conflict, not degraded", func(t *testing.T) {
		svc, d := newService(t, true)

		expectLookups(d)
		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction, nil)
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return("", model.ErrPaymentSettled)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("lost datastore connection is retried once then unavailable", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, driver.ErrBadConn).Times(2)

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
		assert.Equal(t, 1, d.db.reconnects)
	})

	t.Run("recovers after a reconnect", func(t *testing.T) {
		svc, d := newService(t, true)

		gomock.InOrder(
			d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, driver.ErrBadConn),
			d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil),
		)
		d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-1"}, nil)
		d.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "tenant-1"}, nil)
		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(transaction, nil)
		d.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return("payment-1", nil)
		d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.NoError(t, err)
		assert.Equal(t, dto.TokenIssued, res.Outcome)
		assert.Equal(t, 1, d.db.reconnects)
	})

	t.Run("gateway error is internal", func(t *testing.T) {
		svc, d := newService(t, true)
		expectLookups(d)

		d.gateway.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			Return(midtrans.TransactionResponse{}, &midtrans.GatewayError{StatusCode: http.StatusBadGateway, Message: "upstream"})

		_, err := svc.CreateToken(tenantContext("tenant-1", constant.RoleUser), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestPaymentService_HandleNotification(t *testing.T) {
	t.Run("records the payment and reconciles the booking", func(t *testing.T) {
		svc, d := newService(t, true)
		req := notification("settlement")
		raw := []byte(`{"order_id":"ORDER-booking-1-1700000000000"}`)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.TransactionSettlement, fields[model.FieldStatus])
				assert.Equal(t, string(raw), fields[model.FieldRawPayload])

				return nil
			})
		d.reconciler.EXPECT().ApplyGatewayOutcome(gomock.Any(), "booking-1", model.OutcomeSettled).
			Return(reconDto.GatewayResult{BookingID: "booking-1", Status: bookingModel.StatusConfirmed, Changed: true}, nil)

		res, err := svc.HandleNotification(context.Background(), req, raw)

		require.NoError(t, err)
		assert.True(t, res.Reconciled)
		assert.True(t, res.Changed)
		assert.Equal(t, "settled", res.Outcome)
		assert.Equal(t, string(bookingModel.StatusConfirmed), res.BookingStatus)
		assert.Empty(t, res.Warning)
	})

	t.Run("a repeated notification is reported unchanged", func(t *testing.T) {
		svc, d := newService(t, true)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.reconciler.EXPECT().ApplyGatewayOutcome(gomock.Any(), "booking-1", model.OutcomeSettled).
			Return(reconDto.GatewayResult{BookingID: "booking-1", Status: bookingModel.StatusConfirmed}, nil)

		res, err := svc.HandleNotification(context.Background(), notification("settlement"), nil)

		require.NoError(t, err)
		assert.True(t, res.Reconciled)
		assert.False(t, res.Changed)
	})

	t.Run("reconcile failure is a warning, not an error", func(t *testing.T) {
		svc, d := newService(t, true)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.reconciler.EXPECT().ApplyGatewayOutcome(gomock.Any(), gomock.Any(), model.OutcomeFailed).
			Return(reconDto.GatewayResult{}, errors.New("lock timeout"))

		res, err := svc.HandleNotification(context.Background(), notification("expire"), nil)

		require.NoError(t, err)
		assert.False(t, res.Reconciled)
		assert.NotEmpty(t, res.Warning)
		assert.Equal(t, "booking-1", res.BookingID)
	})

	t.Run("invalid signature is rejected when verification is on", func(t *testing.T) {
		svc, _ := newService(t, true)

		req := notification("settlement")
		req.SignatureKey = "forged"

		_, err := svc.HandleNotification(context.Background(), req, nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("invalid signature is accepted when verification is off", func(t *testing.T) {
		svc, d := newService(t, false)

		req := notification("pending")
		req.SignatureKey = constant.Empty

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.reconciler.EXPECT().ApplyGatewayOutcome(gomock.Any(), gomock.Any(), model.OutcomePending).
			Return(reconDto.GatewayResult{BookingID: "booking-1", Status: bookingModel.StatusPending}, nil)

		res, err := svc.HandleNotification(context.Background(), req, nil)

		require.NoError(t, err)
		assert.Equal(t, "pending", res.Outcome)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		svc, d := newService(t, true)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := svc.HandleNotification(context.Background(), notification("settlement"), nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("payment update failure is an error", func(t *testing.T) {
		svc, d := newService(t, true)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update failed"))

		_, err := svc.HandleNotification(context.Background(), notification("settlement"), nil)

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestPaymentService_GetByBooking(t *testing.T) {
	t.Run("owner sees the payment", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(), nil)

		res, err := svc.GetByBooking(tenantContext("tenant-1", constant.RoleUser), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, "payment-1", res.ID)
		assert.Equal(t, string(model.TransactionPending), res.Status)
	})

	t.Run("another tenant is forbidden", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		_, err := svc.GetByBooking(tenantContext("tenant-2", constant.RoleUser), "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("booking without payment is not found", func(t *testing.T) {
		svc, d := newService(t, true)

		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := svc.GetByBooking(tenantContext("admin-1", constant.RoleAdmin), "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func stringPtr(s string) *string {
	return &s
}
