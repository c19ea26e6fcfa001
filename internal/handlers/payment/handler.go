package payment

import (
	"bytes"
	"io"
	"kost/infras/otel"
	"kost/internal/domains/payment/model/dto"
	"kost/internal/domains/payment/service"
	"kost/shared/constant"
	"kost/shared/failure"
	"kost/shared/validator"
	"kost/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	maxNotificationBytes = 1 << 20

	msgNotificationProcessed = "notification processed"
	msgTokenIssued           = "payment token issued"
	msgTokenDegraded         = "payment token issued but not recorded"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/notification", handler.Notification)
		routerGroup.Post("/webhook", handler.Webhook)
		routerGroup.Post("/create-token", handler.CreateToken)
	})
}

// Notification receives payment status notifications from the gateway.
// @Summary Payment gateway notification
// @Description Records the transaction status and reconciles the booking. Reconciliation problems are reported in the body with a 200.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.NotificationRequest true "Gateway notification"
// @Success 200 {object} response.Status
// @Failure 400 {object} response.Status
// @Failure 401 {object} response.Status
// @Failure 404 {object} response.Status
// @Failure 500 {object} response.Status
// @Router /v1/payments/notification [post]
func (handler *Handler) Notification(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Notification")
	defer scope.End()

	raw, err := io.ReadAll(io.LimitReader(request.Body, maxNotificationBytes))
	if err != nil {
		err = failure.BadRequestFromString("failed to read notification body")
		scope.TraceError(err)
		response.WithStatusError(writer, err)

		return
	}

	req := dto.NotificationRequest{}

	if err = validator.Validate(bytes.NewReader(raw), &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid payment notification")

		response.WithStatusError(writer, err)

		return
	}

	scope.SetAttributes(map[string]any{
		"payment.order_id":           req.OrderID,
		"payment.transaction_status": req.TransactionStatus,
	})

	result, err := handler.service.HandleNotification(ctx, req, raw)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to handle payment notification")

		response.WithStatusError(writer, err)

		return
	}

	message := msgNotificationProcessed
	if result.Warning != constant.Empty {
		message = result.Warning
	}

	response.WithStatus(writer, http.StatusOK, message, result)
}

// Webhook is the deprecated path of Notification.
// @Summary Payment gateway notification (deprecated path)
// @Deprecated
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.NotificationRequest true "Gateway notification"
// @Success 200 {object} response.Status
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(writer http.ResponseWriter, request *http.Request) {
	log.Warn().Str("path", request.URL.Path).Str("canonical", constant.PathPaymentNotification).Msg("deprecated payment webhook path called")

	writer.Header().Set(constant.ResponseHeaderDeprecation, "true")

	handler.Notification(writer, request)
}

// CreateToken issues a payment token for a booking.
// @Summary Create payment token
// @Description When the token is issued but its payment row cannot be stored, outcome is degraded and warning explains why.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateTokenRequest true "Booking to pay"
// @Success 200 {object} response.Status
// @Failure 400 {object} response.Status
// @Failure 401 {object} response.Status
// @Failure 403 {object} response.Status
// @Failure 404 {object} response.Status
// @Failure 409 {object} response.Status
// @Failure 500 {object} response.Status
// @Failure 503 {object} response.Status
// @Router /v1/payments/create-token [post]
// @Security BearerAuth
func (handler *Handler) CreateToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateToken")
	defer scope.End()

	req := dto.CreateTokenRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithStatusError(writer, err)

		return
	}

	result, err := handler.service.CreateToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create payment token")

		response.WithStatusError(writer, err)

		return
	}

	message := msgTokenIssued
	if result.Outcome == dto.TokenDegraded {
		message = msgTokenDegraded
	}

	response.WithStatus(writer, http.StatusOK, message, result)
}
