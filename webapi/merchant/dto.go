package merchant

import "github.com/amirasaad/payeer/pkg/payeer"

// CheckoutRequest is the body of POST /payeer/checkout.
type CheckoutRequest struct {
	OrderID     string            `json:"order_id"`
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Language    string            `json:"lang,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

func (r CheckoutRequest) Order() payeer.Order {
	return payeer.Order{
		OrderID:     r.OrderID,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
		Language:    r.Language,
		Extra:       r.Extra,
	}
}

// CheckoutResponse carries the signed payment page location.
type CheckoutResponse struct {
	Location  string            `json:"location"`
	Signature string            `json:"signature"`
	Params    map[string]string `json:"params"`
}
