// Package payeerapi is the HTTP client of the signed Payeer API.
package payeerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/amirasaad/payeer/infra/metrics"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/pkg/provider"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

const (
	resultOK             = "ok"
	resultAPIError       = "api_error"
	resultTransportError = "transport_error"
)

// Client implements provider.PayeerAPI. One request per call, no retries.
type Client struct {
	creds    payeer.Credentials
	apiURL   string
	http     *resty.Client
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a Client from the Payeer config. m may be nil.
func New(cfg *config.Payeer, logger *slog.Logger, m *metrics.Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := resty.New().
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "payeer-go/"+payeer.Version)

	return &Client{
		creds:    cfg.Credentials(),
		apiURL:   payeer.APIURL(cfg.BaseURL),
		http:     httpClient,
		validate: payeer.NewValidator(nil),
		logger:   logger.With("component", "payeer-api"),
		metrics:  m,
	}
}

// Call posts action with params and the account credentials, then decodes
// the JSON body. A non-empty "errors" field yields *payeer.APIError.
func (c *Client) Call(ctx context.Context, action string, params url.Values) (payeer.Response, error) {
	form := make(url.Values, len(params)+4)
	for k, vs := range params {
		form[k] = append([]string(nil), vs...)
	}
	form.Set("action", action)
	form.Set("account", c.creds.Account)
	form.Set("apiId", c.creds.APIID)
	form.Set("apiPass", c.creds.APIPass)

	log := c.logger.With("action", action)
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(c.apiURL)
	if err != nil {
		c.metrics.ObserveAPICall(action, resultTransportError, time.Since(start))
		log.Error("Payeer API request failed", "error", err)
		return nil, &payeer.TransportError{Action: action, Err: err}
	}

	var body payeer.Response
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil || body == nil {
		if err == nil {
			err = payeer.ErrUnexpectedResponse
		}
		c.metrics.ObserveAPICall(action, resultTransportError, time.Since(start))
		log.Error("Payeer API returned a non-JSON body", "status", resp.StatusCode(), "error", err)
		return nil, &payeer.TransportError{
			Action:     action,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	if errs, failed := body.Errors(); failed {
		c.metrics.ObserveAPICall(action, resultAPIError, time.Since(start))
		log.Warn("Payeer API rejected the request", "errors", errs)
		return nil, &payeer.APIError{Action: action, Errors: errs}
	}
	if resp.IsError() {
		c.metrics.ObserveAPICall(action, resultTransportError, time.Since(start))
		log.Error("Payeer API answered with an error status", "status", resp.StatusCode())
		return nil, &payeer.TransportError{
			Action:     action,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	c.metrics.ObserveAPICall(action, resultOK, time.Since(start))
	log.Debug("Payeer API call succeeded", "status", resp.StatusCode(), "elapsed", time.Since(start))
	return body, nil
}

// Balance returns the "balance" object.
func (c *Client) Balance(ctx context.Context) (payeer.Response, error) {
	return c.callObject(ctx, payeer.ActionBalance, nil, "balance")
}

// CheckUser reports whether user is an existing account. A rejection by the
// API means the account does not exist and is not an error.
func (c *Client) CheckUser(ctx context.Context, user string) (bool, error) {
	_, err := c.Call(ctx, payeer.ActionCheckUser, url.Values{"user": {user}})
	return swallowAPIError(err)
}

// ExchangeRate returns the "rate" object. An empty output selects deposit rates.
func (c *Client) ExchangeRate(ctx context.Context, output payeer.RateOutput) (payeer.Response, error) {
	if output == "" {
		output = payeer.RateDeposit
	}
	if output != payeer.RateDeposit && output != payeer.RateWithdrawal {
		return nil, &payeer.ValidationError{Field: "output", Reason: "must be N or Y"}
	}
	return c.callObject(ctx, payeer.ActionGetExchangeRate, url.Values{"output": {string(output)}}, "rate")
}

// PaySystems returns the "list" object.
func (c *Client) PaySystems(ctx context.Context) (payeer.Response, error) {
	return c.callObject(ctx, payeer.ActionGetPaySystems, nil, "list")
}

// HistoryInfo returns the "info" object of one transaction.
func (c *Client) HistoryInfo(ctx context.Context, historyID string) (payeer.Response, error) {
	if historyID == "" {
		return nil, &payeer.ValidationError{Field: "history_id", Reason: "is required"}
	}
	return c.callObject(ctx, payeer.ActionHistoryInfo, url.Values{"historyId": {historyID}}, "info")
}

// ShopOrderInfo returns the whole response for a store transaction.
func (c *Client) ShopOrderInfo(ctx context.Context, shopID, orderID string) (payeer.Response, error) {
	if shopID == "" {
		return nil, &payeer.ValidationError{Field: "shop_id", Reason: "is required"}
	}
	if orderID == "" {
		return nil, &payeer.ValidationError{Field: "order_id", Reason: "is required"}
	}
	return c.Call(ctx, payeer.ActionShopOrderInfo, url.Values{
		"shopId":  {shopID},
		"orderId": {orderID},
	})
}

// Transfer sends funds to another account and reports whether the API
// created a transaction, that is returned a historyId greater than zero.
func (c *Client) Transfer(ctx context.Context, params payeer.TransferParams) (bool, error) {
	if err := payeer.ValidateStruct(c.validate, params); err != nil {
		return false, err
	}
	resp, err := c.Call(ctx, payeer.ActionTransfer, params.Values())
	if err != nil {
		return false, err
	}
	id, ok := resp.Int64("historyId")
	return ok && id > 0, nil
}

// CheckOutput asks the API to validate a payout without creating it.
func (c *Client) CheckOutput(ctx context.Context, params payeer.OutputParams) (bool, error) {
	if err := payeer.ValidateStruct(c.validate, params); err != nil {
		return false, err
	}
	_, err := c.Call(ctx, payeer.ActionInitOutput, params.Values())
	return swallowAPIError(err)
}

// Output creates a payout and returns the whole response.
func (c *Client) Output(ctx context.Context, params payeer.OutputParams) (payeer.Response, error) {
	if err := payeer.ValidateStruct(c.validate, params); err != nil {
		return nil, err
	}
	return c.Call(ctx, payeer.ActionOutput, params.Values())
}

// History returns the "history" object.
func (c *Client) History(ctx context.Context, params payeer.HistoryParams) (payeer.Response, error) {
	if err := payeer.ValidateStruct(c.validate, params); err != nil {
		return nil, err
	}
	return c.callObject(ctx, payeer.ActionHistory, params.Values(), "history")
}

func (c *Client) callObject(ctx context.Context, action string, params url.Values, field string) (payeer.Response, error) {
	resp, err := c.Call(ctx, action, params)
	if err != nil {
		return nil, err
	}
	obj, err := resp.Object(field)
	if err != nil {
		return nil, &payeer.TransportError{Action: action, Err: err}
	}
	return obj, nil
}

func swallowAPIError(err error) (bool, error) {
	if errors.Is(err, payeer.ErrAPI) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ provider.PayeerAPI = (*Client)(nil)
