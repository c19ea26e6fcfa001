package model

import (
	"crypto/sha512"
	"errors"
	"crypto/subtle"
	"encoding/hex"
	"kost/shared/model"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldOrderID       = "order_id"
	FieldGrossAmount   = "gross_amount"
	FieldStatus        = "status"
	FieldTransactionID = "transaction_id"
	FieldPaymentType   = "payment_type"
	FieldFraudStatus   = "fraud_status"
	FieldVANumber      = "va_number"
	FieldBank          = "bank"
	FieldExpiryTime    = "expiry_time"
	FieldRawPayload    = "metadata"
	FieldToken         = "token"
	FieldRedirectURL   = "redirect_url"

	OrderIDPrefix = "ORDER"
)

var ErrPaymentSettled = errors.New("payment is already settled")

// TransactionStatus is the gateway's vocabulary for a transaction state.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionSettlement TransactionStatus = "settlement"
	TransactionCapture    TransactionStatus = "capture"
	TransactionCancel     TransactionStatus = "cancel"
	TransactionExpire     TransactionStatus = "expire"
	TransactionDeny       TransactionStatus = "deny"
)

// Outcome is what a gateway status means for the booking it pays for.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePending
	OutcomeSettled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSettled:
		return "settled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s TransactionStatus) Outcome() Outcome {
	switch TransactionStatus(strings.ToLower(string(s))) {
	case TransactionSettlement, TransactionCapture:
		return OutcomeSettled
	case TransactionCancel, TransactionExpire, TransactionDeny:
		return OutcomeFailed
	case TransactionPending:
		return OutcomePending
	default:
		return OutcomeUnknown
	}
}

// Signature is the hex SHA-512 of orderID, statusCode, grossAmount and serverKey concatenated.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))

	return hex.EncodeToString(sum[:])
}

// VerifySignature compares in constant time.
func VerifySignature(signature, orderID, statusCode, grossAmount, serverKey string) bool {
	if signature == "" {
		return false
	}

	expected := Signature(orderID, statusCode, grossAmount, serverKey)

	return subtle.ConstantTimeCompare([]byte(strings.ToLower(signature)), []byte(expected)) == 1
}

type Payment struct {
	ID            string            `db:"id"`
	BookingID     string            `db:"booking_id"`
	OrderID       string            `db:"order_id"`
	GrossAmount   int64             `db:"gross_amount"`
	Status        TransactionStatus `db:"status"`
	TransactionID string            `db:"transaction_id"`
	PaymentType   string            `db:"payment_type"`
	FraudStatus   string            `db:"fraud_status"`
	VANumber      string            `db:"va_number"`
	Bank          string            `db:"bank"`
	ExpiryTime    *time.Time        `db:"expiry_time"`
	RawPayload    types.JSONText    `db:"metadata"`
	Token         string            `db:"token"`
	RedirectURL   string            `db:"redirect_url"`
	model.Metadata
}
