package dto

import (
	"fmt"
	"kost/internal/domains/payment/model"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	gModel "kost/shared/model"
	"kost/shared/timezone"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const gatewayTimeLayout = "2006-01-02 15:04:05"

type VANumber struct {
	Bank     string `json:"bank"`
	VANumber string `json:"va_number"`
}

// NotificationRequest is the gateway webhook payload.
type NotificationRequest struct {
	OrderID           string     `json:"order_id"           validate:"required"`
	TransactionStatus string     `json:"transaction_status" validate:"required"`
	StatusCode        string     `json:"status_code"        validate:"required"`
	GrossAmount       string     `json:"gross_amount"       validate:"required,numeric"`
	TransactionID     string     `json:"transaction_id"`
	PaymentType       string     `json:"payment_type"`
	FraudStatus       string     `json:"fraud_status"`
	VANumbers         []VANumber `json:"va_numbers"         validate:"omitempty,dive"`
	PaymentCode       string     `json:"payment_code"`
	Bank              string     `json:"bank"`
	ExpiryTime        string     `json:"expiry_time"`
	SignatureKey      string     `json:"signature_key"`
}

func (n NotificationRequest) Status() model.TransactionStatus {
	return model.TransactionStatus(n.TransactionStatus)
}

// VirtualAccount prefers the first VA number and falls back to the payment code.
func (n NotificationRequest) VirtualAccount() (number, bank string) {
	bank = n.Bank

	if len(n.VANumbers) > 0 {
		number = n.VANumbers[0].VANumber
		if n.VANumbers[0].Bank != constant.Empty {
			bank = n.VANumbers[0].Bank
		}
	}

	if number == constant.Empty {
		number = n.PaymentCode
	}

	return number, bank
}

// Expiry parses expiry_time in the application timezone; nil when absent or unparsable.
func (n NotificationRequest) Expiry() *time.Time {
	if n.ExpiryTime == constant.Empty {
		return nil
	}

	t, err := timezone.Parse(gatewayTimeLayout, n.ExpiryTime)
	if err != nil {
		return nil
	}

	return &t
}

// ToUpdate maps the payload onto payment columns.
func (n NotificationRequest) ToUpdate(raw []byte, actor string) map[string]any {
	number, bank := n.VirtualAccount()

	fields := map[string]any{
		model.FieldStatus:        model.TransactionStatus(n.TransactionStatus),
		model.FieldTransactionID: n.TransactionID,
		model.FieldPaymentType:   n.PaymentType,
		model.FieldFraudStatus:   n.FraudStatus,
		model.FieldVANumber:      number,
		model.FieldBank:          bank,
		model.FieldRawPayload:    string(raw),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if expiry := n.Expiry(); expiry != nil {
		fields[model.FieldExpiryTime] = *expiry
	}

	return fields
}

type NotificationResult struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	Outcome           string `json:"outcome"`
	BookingID         string `json:"booking_id"`
	BookingStatus     string `json:"booking_status,omitempty"`
	Reconciled        bool   `json:"reconciled"`
	Changed           bool   `json:"changed"`
	Warning           string `json:"warning,omitempty"`
}

type CreateTokenRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// TokenOutcome tells whether the payment row backing a token was persisted.
type TokenOutcome string

const (
	TokenIssued   TokenOutcome = "issued"
	TokenDegraded TokenOutcome = "degraded"
)

type TokenResult struct {
	Outcome     TokenOutcome `json:"outcome"`
	Token       string       `json:"token"`
	RedirectURL string       `json:"redirect_url"`
	OrderID     string       `json:"order_id"`
	PaymentID   string       `json:"payment_id,omitempty"`
	Warning     string       `json:"warning,omitempty"`
}

func Issued(token, redirectURL, orderID, paymentID string) TokenResult {
	return TokenResult{
		Outcome:     TokenIssued,
		Token:       token,
		RedirectURL: redirectURL,
		OrderID:     orderID,
		PaymentID:   paymentID,
	}
}

func Degraded(token, redirectURL, orderID, reason string) TokenResult {
	return TokenResult{
		Outcome:     TokenDegraded,
		Token:       token,
		RedirectURL: redirectURL,
		OrderID:     orderID,
		Warning:     reason,
	}
}

// NewOrderID builds ORDER-{bookingID}-{unixMillis}.
func NewOrderID(bookingID string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", model.OrderIDPrefix, bookingID, now.UnixMilli())
}

// NewPendingPayment is the row written when a token is issued.
func NewPendingPayment(bookingID, orderID string, grossAmount int64, token, redirectURL, actor string, now time.Time) model.Payment {
	return model.Payment{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		OrderID:     orderID,
		GrossAmount: grossAmount,
		Status:      model.TransactionPending,
		Token:       token,
		RedirectURL: redirectURL,
		Metadata:    gModel.NewMetadata(actor, now),
	}
}

// ParseGrossAmount accepts the gateway's decimal string, e.g. "150000.00".
func ParseGrossAmount(value string) (int64, error) {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid gross amount %q: %w", value, err)
	}

	return int64(math.Round(amount)), nil
}

type PaymentResponse struct {
	ID            string `json:"id"`
	BookingID     string `json:"booking_id"`
	OrderID       string `json:"order_id"`
	GrossAmount   int64  `json:"gross_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	PaymentType   string `json:"payment_type"`
	FraudStatus   string `json:"fraud_status"`
	VANumber      string `json:"va_number"`
	Bank          string `json:"bank"`
	ExpiryTime    string `json:"expiry_time,omitempty"`
	RedirectURL   string `json:"redirect_url"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.OrderID = model.OrderID
	r.GrossAmount = model.GrossAmount
	r.Status = string(model.Status)
	r.TransactionID = model.TransactionID
	r.PaymentType = model.PaymentType
	r.FraudStatus = model.FraudStatus
	r.VANumber = model.VANumber
	r.Bank = model.Bank
	r.RedirectURL = model.RedirectURL

	if model.ExpiryTime != nil {
		r.ExpiryTime = timezone.Format(*model.ExpiryTime, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}
