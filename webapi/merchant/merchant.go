// Package merchant serves the merchant side of Payeer: the status callback
// and the checkout link endpoint.
package merchant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/payeer/infra/metrics"
	"github.com/amirasaad/payeer/pkg/app"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/middleware"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/pkg/provider"
	"github.com/amirasaad/payeer/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Callback outcomes as recorded in metrics.
const (
	OutcomeAccepted     = "accepted"
	OutcomeForbidden    = "forbidden"
	OutcomeMissingOpID  = "missing_operation_id"
	OutcomeBadSignature = "signature_mismatch"
	OutcomeNotSuccess   = "not_success"
	OutcomeHandlerError = "handler_error"
)

// PaymentHandler is called once per accepted callback. Returning an error
// answers Payeer with "<order_id>|error" so the notification is retried.
type PaymentHandler func(ctx context.Context, payment payeer.CallbackPayload) error

// Routes registers the callback and checkout routes.
func Routes(
	fiberApp *fiber.App,
	deps *app.Deps,
	cfg *config.App,
	onPaid PaymentHandler,
) {
	fiberApp.Post(
		"/payeer/status",
		StatusHandler(deps.Verifier, onPaid, deps.Metrics, deps.Logger),
	)
	fiberApp.Post(
		"/payeer/checkout",
		middleware.JwtProtected(cfg.Auth.Jwt),
		CheckoutHandler(deps.Merchant, deps.Metrics, deps.Logger),
	)
}

// StatusHandler answers Payeer status callbacks with a plain text
// "<order_id>|success" or "<order_id>|error" body and status 200.
// Senders outside the allow-list get 403 and no body of that form.
func StatusHandler(
	verifier provider.CallbackVerifier,
	onPaid PaymentHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := ClientIP(c)
		form := postForm(c)

		result, err := verifier.Verify(form, ip)
		if err != nil {
			m.ObserveCallback(OutcomeForbidden)
			return common.ProblemDetailsJSON(c, "Forbidden", err)
		}

		body := result.Body
		outcome := outcomeOf(result.Reason)
		if result.Accepted && onPaid != nil {
			if err := onPaid(c.UserContext(), result.Payload); err != nil {
				logger.Error("Payment handler failed",
					"order_id", result.Payload.OrderID,
					"operation_id", result.Payload.OperationID,
					"error", err,
				)
				body = result.Payload.OrderID + "|error"
				outcome = OutcomeHandlerError
			}
		}
		m.ObserveCallback(outcome)

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusOK).SendString(body)
	}
}

// CheckoutHandler signs an order and returns the payment page location.
func CheckoutHandler(
	builder provider.CheckoutBuilder,
	m *metrics.Metrics,
	logger *slog.Logger,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CheckoutRequest
		if err := c.BodyParser(&req); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		}

		checkout, err := builder.Checkout(req.Order())
		if err != nil {
			logger.Warn("Checkout failed", "order_id", req.OrderID, "error", err)
			if errors.Is(err, payeer.ErrValidation) {
				return common.ProblemDetailsJSON(c, "Invalid order", err)
			}
			return common.ProblemDetailsJSON(c, "Failed to build checkout", err)
		}
		m.ObserveCheckout(req.Currency)

		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Checkout created", CheckoutResponse{
			Location:  checkout.Location,
			Signature: checkout.Signature,
			Params:    checkout.Params,
		})
	}
}

// ClientIP resolves the sender address: the last X-Forwarded-For entry,
// then X-Real-IP, then the connection address.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return c.Context().RemoteIP().String()
}

func postForm(c *fiber.Ctx) map[string]string {
	form := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form[string(key)] = string(value)
	})
	if len(form) > 0 {
		return form
	}
	if mf, err := c.MultipartForm(); err == nil {
		for k, vs := range mf.Value {
			if len(vs) > 0 {
				form[k] = vs[0]
			}
		}
	}
	return form
}

func outcomeOf(reason error) string {
	switch {
	case reason == nil:
		return OutcomeAccepted
	case errors.Is(reason, payeer.ErrMissingOperationID):
		return OutcomeMissingOpID
	case errors.Is(reason, payeer.ErrSignatureMismatch):
		return OutcomeBadSignature
	default:
		return OutcomeNotSuccess
	}
}
