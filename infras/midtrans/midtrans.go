package midtrans

//go:generate go run go.uber.org/mock/mockgen -source=./midtrans.go -destination=./mocks/midtrans_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"kost/config"
	"kost/infras/otel"
	"kost/shared/constant"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog/log"
)

const (
	expiryUnitMinute = "minute"
	expiryTimeLayout = "2006-01-02 15:04:05 -0700"
)

var ErrEmptyToken = errors.New("payment gateway returned an empty token")

// GatewayError carries the message reported by the payment gateway.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return e.Message
}

type Customer struct {
	FullName string
	Email    string
	Phone    string
}

type TransactionRequest struct {
	OrderID     string
	GrossAmount int64
	ItemID      string
	ItemName    string
	Customer    Customer
	StartTime   time.Time
}

type TransactionResponse struct {
	Token       string
	RedirectURL string
}

type Gateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (TransactionResponse, error)
}

type gatewayImpl struct {
	client *snap.Client
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Gateway {
	env := midtrans.Sandbox
	if config.Payment.Midtrans.Production {
		env = midtrans.Production
	}

	client := &snap.Client{}
	client.New(config.Payment.Midtrans.ServerKey, env)

	log.Info().Bool("production", config.Payment.Midtrans.Production).Msg("Midtrans snap client initialized")

	return &gatewayImpl{
		client: client,
		config: config,
		otel:   otel,
	}
}

func (g *gatewayImpl) CreateTransaction(ctx context.Context, req TransactionRequest) (res TransactionResponse, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateTransaction")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("order_id", req.OrderID)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.FullName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Name:  req.ItemName,
				Price: req.GrossAmount,
				Qty:   1,
			},
		},
	}

	if minutes := g.config.Payment.Midtrans.ExpiryMinutes; minutes > 0 && !req.StartTime.IsZero() {
		snapReq.Expiry = &snap.ExpiryDetails{
			StartTime: req.StartTime.Format(expiryTimeLayout),
			Unit:      expiryUnitMinute,
			Duration:  int64(minutes),
		}
	}

	snapRes, mErr := g.client.CreateTransaction(snapReq)
	if mErr != nil {
		log.Error().Int("status_code", mErr.StatusCode).Str("message", mErr.Message).Str("order_id", req.OrderID).Msg("payment gateway rejected transaction")

		return res, &GatewayError{StatusCode: mErr.StatusCode, Message: mErr.Message}
	}

	if snapRes == nil || snapRes.Token == "" {
		return res, fmt.Errorf("create transaction %s: %w", req.OrderID, ErrEmptyToken)
	}

	return TransactionResponse{
		Token:       snapRes.Token,
		RedirectURL: snapRes.RedirectURL,
	}, nil
}
