package payeer

import (
	"errors"
	"fmt"
)

// Common payeer errors
var (
	// ErrValidation is returned when a wallet or an order field is malformed
	ErrValidation = errors.New("validation error")
	// ErrInvalidWallet is returned when an account number is not P followed by 7-12 digits
	ErrInvalidWallet = errors.New("invalid wallet")
	// ErrForbiddenIP is returned when a callback arrives from an address that is not allow-listed
	ErrForbiddenIP = errors.New("wrong request IP")
	// ErrSignatureMismatch marks a callback whose m_sign does not match the recomputed one
	ErrSignatureMismatch = errors.New("signature mismatch")
	// ErrMissingOperationID marks a callback without m_operation_id
	ErrMissingOperationID = errors.New("missing operation id")
	// ErrPaymentNotSuccessful marks a callback whose m_status is not "success"
	ErrPaymentNotSuccessful = errors.New("payment status is not success")
	// ErrAPI is matched by every *APIError
	ErrAPI = errors.New("payeer api error")
	// ErrTransport is matched by every *TransportError
	ErrTransport = errors.New("payeer transport error")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: invalid %s", ErrValidation, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Is reports ErrValidation for every validation error so callers don't have to errors.As.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// APIError carries the "errors" payload of a failed remote action.
type APIError struct {
	Action string
	Errors any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: action %s: %v", ErrAPI, e.Action, e.Errors)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// TransportError is returned when the remote API could not be reached
// or answered with something that is not JSON.
type TransportError struct {
	Action     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: action %s: status %d: %v", ErrTransport, e.Action, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: action %s: %v", ErrTransport, e.Action, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
