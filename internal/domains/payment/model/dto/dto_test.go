package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kost/internal/domains/payment/model"
	"kost/internal/domains/payment/model/dto"
	"kost/shared/constant"
)

func TestNotificationRequest_VirtualAccount(t *testing.T) {
	t.Run("prefers the first va number", func(t *testing.T) {
		req := dto.NotificationRequest{
			Bank:        "mandiri",
			PaymentCode: "999",
			VANumbers:   []dto.VANumber{{Bank: "bca", VANumber: "12345"}, {Bank: "bni", VANumber: "67890"}},
		}

		number, bank := req.VirtualAccount()

		assert.Equal(t, "12345", number)
		assert.Equal(t, "bca", bank)
	})

	t.Run("falls back to the payment code", func(t *testing.T) {
		req := dto.NotificationRequest{Bank: "permata", PaymentCode: "999"}

		number, bank := req.VirtualAccount()

		assert.Equal(t, "999", number)
		assert.Equal(t, "permata", bank)
	})
}

func TestNotificationRequest_ToUpdate(t *testing.T) {
	req := dto.NotificationRequest{
		OrderID:           "ORDER-1",
		TransactionStatus: "settlement",
		TransactionID:     "tx-1",
		PaymentType:       "bank_transfer",
		FraudStatus:       "accept",
		VANumbers:         []dto.VANumber{{Bank: "bca", VANumber: "12345"}},
		ExpiryTime:        "2026-01-02 15:04:05",
	}

	fields := req.ToUpdate([]byte(`{"a":1}`), constant.ActorGateway)

	assert.Equal(t, model.TransactionSettlement, fields[model.FieldStatus])
	assert.Equal(t, "tx-1", fields[model.FieldTransactionID])
	assert.Equal(t, "12345", fields[model.FieldVANumber])
	assert.Equal(t, "bca", fields[model.FieldBank])
	assert.Equal(t, `{"a":1}`, fields[model.FieldRawPayload])
	assert.Equal(t, constant.ActorGateway, fields[constant.FieldModifiedBy])

	expiry, ok := fields[model.FieldExpiryTime].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, expiry.Year())
}

func TestNotificationRequest_Expiry(t *testing.T) {
	assert.Nil(t, dto.NotificationRequest{}.Expiry())
	assert.Nil(t, dto.NotificationRequest{ExpiryTime: "tomorrow"}.Expiry())
	assert.NotNil(t, dto.NotificationRequest{ExpiryTime: "2026-01-02 15:04:05"}.Expiry())
}

func TestNewOrderID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "ORDER-booking-1-1700000000123", dto.NewOrderID("booking-1", now))
}

func TestParseGrossAmount(t *testing.T) {
	amount, err := dto.ParseGrossAmount("150000.00")
	require.NoError(t, err)
	assert.Equal(t, int64(150000), amount)

	amount, err = dto.ParseGrossAmount("99.5")
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount)

	_, err = dto.ParseGrossAmount("abc")
	assert.Error(t, err)
}

func TestTokenResults(t *testing.T) {
	issued := dto.Issued("token", "https://pay", "ORDER-1", "payment-1")
	assert.Equal(t, dto.TokenIssued, issued.Outcome)
	assert.Equal(t, "payment-1", issued.PaymentID)
	assert.Empty(t, issued.Warning)

	degraded := dto.Degraded("token", "https://pay", "ORDER-1", "not saved")
	assert.Equal(t, dto.TokenDegraded, degraded.Outcome)
	assert.Equal(t, "token", degraded.Token)
	assert.Equal(t, "not saved", degraded.Warning)
	assert.Empty(t, degraded.PaymentID)
}

func TestNewPendingPayment(t *testing.T) {
	now := time.Now()

	payment := dto.NewPendingPayment("booking-1", "ORDER-1", 5000, "token", "https://pay", "tenant-1", now)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, model.TransactionPending, payment.Status)
	assert.Equal(t, int64(5000), payment.GrossAmount)
	assert.Equal(t, "tenant-1", payment.CreatedBy)
}
