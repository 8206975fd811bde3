package common

import (
	"errors"
	"fmt"

	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// ProblemDetailsJSON writes an RFC 9457 response for err.
// The status comes from ErrorToStatusCode unless an int is passed in extra;
// a string in extra replaces the detail. The "errors" payload of a remote API
// failure and the field of a validation failure are exposed under errors.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extra ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   ErrorToStatusCode(err),
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}

	var apiErr *payeer.APIError
	var verr *payeer.ValidationError
	switch {
	case errors.As(err, &apiErr):
		pd.Errors = apiErr.Errors
	case errors.As(err, &verr):
		pd.Errors = map[string]string{verr.Field: verr.Reason}
	}

	for _, e := range extra {
		switch v := e.(type) {
		case int:
			pd.Status = v
		case string:
			pd.Detail = v
		}
	}

	if err := c.Status(pd.Status).JSON(pd); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, problemJSON)
	return nil
}

const problemJSON = "application/problem+json"

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorToStatusCode maps payeer errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, payeer.ErrForbiddenIP):
		return fiber.StatusForbidden
	case errors.Is(err, payeer.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, payeer.ErrAPI):
		return fiber.StatusBadGateway
	case errors.Is(err, payeer.ErrTransport):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it with v.
// On failure it writes the problem response and returns a non-nil error;
// handlers should then return nil.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		return nil, fmt.Errorf("parse body: %w", err)
	}
	if err := payeer.ValidateStruct(v, input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err)
		return nil, err
	}
	return &input, nil
}
