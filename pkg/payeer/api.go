package payeer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnexpectedResponse is wrapped in a *TransportError when a successful
// response lacks the field an action extracts.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// API actions.
const (
	ActionBalance         = "balance"
	ActionCheckUser       = "checkUser"
	ActionGetExchangeRate = "getExchangeRate"
	ActionGetPaySystems   = "getPaySystems"
	ActionHistoryInfo     = "historyInfo"
	ActionShopOrderInfo   = "shopOrderInfo"
	ActionTransfer        = "transfer"
	ActionInitOutput      = "initOutput"
	ActionOutput          = "output"
	ActionHistory         = "history"
)

// Response is a decoded API response. Numbers are kept as json.Number.
type Response map[string]any

// Errors returns the "errors" payload and whether it signals a failure.
// Payeer sends false, [] or {} when there is nothing to report.
func (r Response) Errors() (any, bool) {
	v, ok := r["errors"]
	if !ok {
		return nil, false
	}
	switch e := v.(type) {
	case nil:
		return nil, false
	case bool:
		return e, e
	case string:
		return e, e != ""
	case []any:
		return e, len(e) > 0
	case map[string]any:
		return e, len(e) > 0
	default:
		return e, true
	}
}

// Object returns the JSON object stored under key. An empty JSON array is
// treated as an empty object; a non-empty array is keyed by index.
func (r Response) Object(key string) (Response, error) {
	switch v := r[key].(type) {
	case map[string]any:
		return Response(v), nil
	case []any:
		obj := make(Response, len(v))
		for i, item := range v {
			obj[strconv.Itoa(i)] = item
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("field %q: %w", key, ErrUnexpectedResponse)
	}
}

// Int64 reads key as an integer, accepting JSON numbers and numeric strings.
func (r Response) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		return int64(f), err == nil
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// RateOutput selects deposit or withdrawal rates for getExchangeRate.
type RateOutput string

const (
	RateDeposit    RateOutput = "N"
	RateWithdrawal RateOutput = "Y"
)

// DefaultAPICurrency is used for curIn/curOut when they are left empty.
const DefaultAPICurrency = "USD"

// TransferParams are the options of a transfer between Payeer accounts.
// ProtectPeriod and ProtectCode are only sent when Protect is set.
type TransferParams struct {
	Sum           string `json:"sum" validate:"required,decimal"`
	To            string `json:"to" validate:"required,wallet"`
	CurIn         string `json:"cur_in" validate:"omitempty,currency"`
	CurOut        string `json:"cur_out" validate:"omitempty,currency"`
	Comment       string `json:"comment,omitempty"`
	Protect       bool   `json:"protect,omitempty"`
	ProtectPeriod int    `json:"protect_period,omitempty" validate:"omitempty,min=1,max=30"`
	ProtectCode   string `json:"protect_code,omitempty"`
}

// Values returns the form fields of the transfer action.
func (p TransferParams) Values() url.Values {
	v := url.Values{}
	v.Set("sum", p.Sum)
	v.Set("to", p.To)
	v.Set("curIn", orDefault(p.CurIn, DefaultAPICurrency))
	v.Set("curOut", orDefault(p.CurOut, DefaultAPICurrency))
	if p.Comment != "" {
		v.Set("comment", p.Comment)
	}
	if p.Protect {
		v.Set("protect", "Y")
		if p.ProtectPeriod > 0 {
			v.Set("protectPeriod", strconv.Itoa(p.ProtectPeriod))
		}
		if p.ProtectCode != "" {
			v.Set("protectCode", p.ProtectCode)
		}
	}
	return v
}

// OutputParams describe a payout to an external payment system.
type OutputParams struct {
	PaySystem string `json:"ps" validate:"required"`
	Account   string `json:"account" validate:"required"`
	SumIn     string `json:"sum_in" validate:"required,decimal"`
	CurIn     string `json:"cur_in" validate:"omitempty,currency"`
	CurOut    string `json:"cur_out" validate:"omitempty,currency"`
}

// Values returns the form fields shared by initOutput and output.
func (p OutputParams) Values() url.Values {
	v := url.Values{}
	v.Set("ps", p.PaySystem)
	v.Set("param_ACCOUNT_NUMBER", p.Account)
	v.Set("sumIn", p.SumIn)
	v.Set("curIn", orDefault(p.CurIn, DefaultAPICurrency))
	v.Set("curOut", orDefault(p.CurOut, DefaultAPICurrency))
	return v
}

// HistoryParams filter the operation history. Zero values are not sent.
type HistoryParams struct {
	Sort   string `json:"sort,omitempty" validate:"omitempty,oneof=asc desc"`
	Count  int    `json:"count,omitempty" validate:"omitempty,min=1,max=1000"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Type   string `json:"type,omitempty" validate:"omitempty,oneof=incoming outgoing"`
	Append string `json:"append,omitempty"`
}

// Values returns the form fields of the history action.
func (p HistoryParams) Values() url.Values {
	v := url.Values{}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Count > 0 {
		v.Set("count", strconv.Itoa(p.Count))
	}
	if p.From != "" {
		v.Set("from", p.From)
	}
	if p.To != "" {
		v.Set("to", p.To)
	}
	if p.Type != "" {
		v.Set("type", p.Type)
	}
	if p.Append != "" {
		v.Set("append", p.Append)
	}
	return v
}

// ParseHistoryParams builds HistoryParams from loose options, e.g. a query
// string, and rejects any key it does not know.
func ParseHistoryParams(opts map[string]string) (HistoryParams, error) {
	var p HistoryParams
	for key, value := range opts {
		switch key {
		case "sort":
			p.Sort = value
		case "count":
			n, err := strconv.Atoi(value)
			if err != nil {
				return HistoryParams{}, &ValidationError{Field: "count", Reason: "not an integer", Err: err}
			}
			p.Count = n
		case "from":
			p.From = value
		case "to":
			p.To = value
		case "type":
			p.Type = value
		case "append":
			p.Append = value
		default:
			return HistoryParams{}, &ValidationError{Field: key, Reason: "unrecognized history option"}
		}
	}
	return p, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
