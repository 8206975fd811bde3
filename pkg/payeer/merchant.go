package payeer

import (
	"fmt"
	"log/slog"
	"maps"
	"net/url"

	"github.com/amirasaad/payeer/pkg/currency"
	"github.com/go-playground/validator/v10"
)

// Merchant request parameter names.
const (
	ParamShop     = "m_shop"
	ParamOrderID  = "m_orderid"
	ParamAmount   = "m_amount"
	ParamCurrency = "m_curr"
	ParamDesc     = "m_desc"
	ParamSign     = "m_sign"
	ParamProcess  = "m_process"
	ParamLanguage = "lang"

	processSend = "send"
)

// Order is a merchant checkout request before it is signed.
type Order struct {
	OrderID     string            `json:"order_id" validate:"required"`
	Amount      string            `json:"amount" validate:"required,amount"`
	Currency    string            `json:"currency" validate:"required,currency"`
	Description string            `json:"description" validate:"required"`
	Language    string            `json:"lang" validate:"omitempty,language"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Checkout is a signed merchant request: where to send the payer and exactly
// what was signed.
type Checkout struct {
	Location    string            `json:"location"`
	Signature   string            `json:"signature"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params"`
}

// MerchantConfig holds the non-secret settings of a Merchant.
type MerchantConfig struct {
	BaseURL    string
	Language   string
	Currencies *currency.CurrencyRegistry
}

// Merchant builds checkout links for one merchant account.
type Merchant struct {
	creds    Credentials
	baseURL  string
	language string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewMerchant creates a Merchant. Empty config values fall back to
// DefaultBaseURL, LanguageRU and every known currency.
func NewMerchant(creds Credentials, cfg MerchantConfig, logger *slog.Logger) *Merchant {
	if cfg.Language == "" {
		cfg.Language = LanguageRU
	}
	if cfg.Currencies == nil {
		cfg.Currencies = currency.NewCurrencyRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Merchant{
		creds:    creds,
		baseURL:  normalizeBase(cfg.BaseURL),
		language: cfg.Language,
		validate: NewValidator(cfg.Currencies),
		logger:   logger,
	}
}

// Checkout validates order, signs it and returns the redirect location.
// Order.Extra is merged last and may override any generated parameter.
func (m *Merchant) Checkout(order Order) (*Checkout, error) {
	log := m.logger.With("order_id", order.OrderID)

	if err := ValidateWallet(m.creds.Account); err != nil {
		log.Error("Merchant account is misconfigured", "error", err)
		return nil, fmt.Errorf("merchant account: %w", err)
	}

	if order.Language == "" {
		order.Language = m.language
	}
	if err := ValidateStruct(m.validate, order); err != nil {
		log.Warn("Checkout order rejected", "error", err)
		return nil, err
	}
	amount, err := NormalizeAmount(order.Amount)
	if err != nil {
		return nil, err
	}

	desc := EncodeDescription(order.Description)
	signature := checkoutSignature(
		m.creds.MerchantID,
		order.OrderID,
		amount,
		order.Currency,
		desc,
		m.creds.MerchantSecretKey,
	)

	params := map[string]string{
		ParamShop:     m.creds.MerchantID,
		ParamOrderID:  order.OrderID,
		ParamAmount:   amount,
		ParamCurrency: order.Currency,
		ParamDesc:     desc,
		ParamSign:     signature,
		ParamProcess:  processSend,
		ParamLanguage: order.Language,
	}
	maps.Copy(params, order.Extra)

	query := make(url.Values, len(params))
	for k, v := range params {
		query.Set(k, v)
	}

	log.Debug("Checkout link built", "amount", amount, "currency", order.Currency)
	return &Checkout{
		Location:    m.baseURL + merchantPath + query.Encode(),
		Signature:   signature,
		Description: order.Description,
		Params:      params,
	}, nil
}
