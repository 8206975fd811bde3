package payeer

import (
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
)

// Callback form fields.
const (
	FieldOperationID      = "m_operation_id"
	FieldOperationPS      = "m_operation_ps"
	FieldOperationDate    = "m_operation_date"
	FieldOperationPayDate = "m_operation_pay_date"
	FieldShop             = "m_shop"
	FieldOrderID          = "m_orderid"
	FieldAmount           = "m_amount"
	FieldCurrency         = "m_curr"
	FieldDescription      = "m_desc"
	FieldStatus           = "m_status"
	FieldParams           = "m_params"
	FieldSign             = "m_sign"

	// StatusSuccess is the only m_status that completes a payment.
	StatusSuccess = "success"
)

// CallbackFields lists the signed callback fields in signing order.
// m_params, when present, follows them.
var CallbackFields = []string{
	FieldOperationID,
	FieldOperationPS,
	FieldOperationDate,
	FieldOperationPayDate,
	FieldShop,
	FieldOrderID,
	FieldAmount,
	FieldCurrency,
	FieldDescription,
	FieldStatus,
}

// DefaultAllowedIPs are the addresses Payeer sends status callbacks from.
var DefaultAllowedIPs = []string{"185.71.65.92", "185.71.65.189", "149.202.17.210"}

// CallbackPayload is the set of fields extracted from one status callback.
type CallbackPayload struct {
	OperationID      string `json:"m_operation_id"`
	OperationPS      string `json:"m_operation_ps"`
	OperationDate    string `json:"m_operation_date"`
	OperationPayDate string `json:"m_operation_pay_date"`
	Shop             string `json:"m_shop"`
	OrderID          string `json:"m_orderid"`
	Amount           string `json:"m_amount"`
	Currency         string `json:"m_curr"`
	Description      string `json:"m_desc"`
	Status           string `json:"m_status"`
	Params           string `json:"m_params,omitempty"`
	Sign             string `json:"m_sign"`
}

// SignedValues returns the values covered by m_sign, in order, without the secret key.
func (p CallbackPayload) SignedValues() []string {
	values := []string{
		p.OperationID,
		p.OperationPS,
		p.OperationDate,
		p.OperationPayDate,
		p.Shop,
		p.OrderID,
		p.Amount,
		p.Currency,
		p.Description,
		p.Status,
	}
	if p.Params != "" {
		values = append(values, p.Params)
	}
	return values
}

// CallbackResult is the outcome of verifying one callback.
// Body must be written back verbatim with status 200.
type CallbackResult struct {
	Accepted bool
	Payload  CallbackPayload
	Body     string
	// Reason is nil when Accepted, otherwise one of ErrMissingOperationID,
	// ErrSignatureMismatch or ErrPaymentNotSuccessful.
	Reason error
}

// CallbackVerifier checks status callbacks against a merchant secret key and an
// allow-list of source addresses.
type CallbackVerifier struct {
	secretKey string
	allowed   []netip.Prefix
	logger    *slog.Logger
}

// NewCallbackVerifier parses allowedIPs, which may hold single addresses or CIDR prefixes.
func NewCallbackVerifier(secretKey string, allowedIPs []string, logger *slog.Logger) (*CallbackVerifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make([]netip.Prefix, 0, len(allowedIPs))
	for _, raw := range allowedIPs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid allowed prefix %q: %w", raw, err)
			}
			allowed = append(allowed, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed ip %q: %w", raw, err)
		}
		addr = addr.Unmap()
		allowed = append(allowed, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return &CallbackVerifier{
		secretKey: secretKey,
		allowed:   allowed,
		logger:    logger,
	}, nil
}

// IsAllowed reports whether ip is on the allow-list.
func (v *CallbackVerifier) IsAllowed(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range v.allowed {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Verify decides whether a status callback completes a payment.
// A sender outside the allow-list yields ErrForbiddenIP before any field is read.
// Every other failure is reported through CallbackResult, not as an error.
func (v *CallbackVerifier) Verify(form map[string]string, clientIP string) (*CallbackResult, error) {
	if !v.IsAllowed(clientIP) {
		v.logger.Warn("Callback from forbidden address", "ip", clientIP)
		return nil, fmt.Errorf("%w: %s", ErrForbiddenIP, clientIP)
	}

	payload := ExtractCallbackPayload(form)
	log := v.logger.With("order_id", payload.OrderID, "operation_id", payload.OperationID)

	var reason error
	switch {
	case payload.OperationID == "":
		reason = ErrMissingOperationID
	case !VerifySignature(payload.Sign, append(payload.SignedValues(), v.secretKey)...):
		reason = ErrSignatureMismatch
	case payload.Status != StatusSuccess:
		reason = ErrPaymentNotSuccessful
	}

	if reason != nil {
		log.Warn("Callback rejected", "reason", reason, "status", payload.Status)
		return &CallbackResult{
			Payload: payload,
			Body:    payload.OrderID + "|error",
			Reason:  reason,
		}, nil
	}

	log.Info("Callback accepted", "amount", payload.Amount, "currency", payload.Currency)
	return &CallbackResult{
		Accepted: true,
		Payload:  payload,
		Body:     payload.OrderID + "|success",
	}, nil
}

// ExtractCallbackPayload reads the callback fields from form; missing fields are empty.
func ExtractCallbackPayload(form map[string]string) CallbackPayload {
	return CallbackPayload{
		OperationID:      form[FieldOperationID],
		OperationPS:      form[FieldOperationPS],
		OperationDate:    form[FieldOperationDate],
		OperationPayDate: form[FieldOperationPayDate],
		Shop:             form[FieldShop],
		OrderID:          form[FieldOrderID],
		Amount:           form[FieldAmount],
		Currency:         form[FieldCurrency],
		Description:      form[FieldDescription],
		Status:           form[FieldStatus],
		Params:           form[FieldParams],
		Sign:             form[FieldSign],
	}
}
