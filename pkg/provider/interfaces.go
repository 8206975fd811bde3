package provider

import (
	"context"
	"net/url"

	"github.com/amirasaad/payeer/pkg/payeer"
)

// PayeerAPI defines the signed Payeer API actions
type PayeerAPI interface {
	// Call posts any action and returns the decoded body
	Call(ctx context.Context, action string, params url.Values) (payeer.Response, error)

	// Balance returns the account balance per currency
	Balance(ctx context.Context) (payeer.Response, error)

	// CheckUser reports whether a Payeer account exists
	CheckUser(ctx context.Context, user string) (bool, error)

	// ExchangeRate returns deposit or withdrawal conversion rates
	ExchangeRate(ctx context.Context, output payeer.RateOutput) (payeer.Response, error)

	// PaySystems returns the payment systems available for payouts
	PaySystems(ctx context.Context) (payeer.Response, error)

	// HistoryInfo returns one transaction
	HistoryInfo(ctx context.Context, historyID string) (payeer.Response, error)

	// ShopOrderInfo returns a store transaction by merchant and order id
	ShopOrderInfo(ctx context.Context, shopID, orderID string) (payeer.Response, error)

	// Transfer moves funds to another Payeer account
	Transfer(ctx context.Context, params payeer.TransferParams) (bool, error)

	// CheckOutput checks whether a payout would be accepted without creating it
	CheckOutput(ctx context.Context, params payeer.OutputParams) (bool, error)

	// Output creates a payout
	Output(ctx context.Context, params payeer.OutputParams) (payeer.Response, error)

	// History returns the operation history
	History(ctx context.Context, params payeer.HistoryParams) (payeer.Response, error)
}

// CheckoutBuilder signs merchant orders
type CheckoutBuilder interface {
	Checkout(order payeer.Order) (*payeer.Checkout, error)
}

// CallbackVerifier decides merchant status callbacks
type CallbackVerifier interface {
	Verify(form map[string]string, clientIP string) (*payeer.CallbackResult, error)
}
