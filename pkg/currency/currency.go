package currency

import (
	"sort"
	"strings"
)

const (
	// DefaultCurrency is the fallback currency code (USD)
	DefaultCurrency = "USD"
	// DefaultDecimals is the default number of decimal places for currencies
	DefaultDecimals = 2
)

// CurrencyMeta holds currency-specific metadata
type CurrencyMeta struct {
	Code     string
	Decimals int
	Symbol   string
}

// knownCurrencies are the merchant currencies Payeer settles in.
var knownCurrencies = map[string]CurrencyMeta{
	"USD": {Code: "USD", Decimals: 2, Symbol: "$"},
	"EUR": {Code: "EUR", Decimals: 2, Symbol: "€"},
	"RUB": {Code: "RUB", Decimals: 2, Symbol: "₽"},
}

// CurrencyRegistry is the allow-list of currency codes accepted for checkouts.
// It is filled at construction and read-only afterwards.
type CurrencyRegistry struct {
	currencies map[string]CurrencyMeta
}

// NewCurrencyRegistry creates a registry with the given codes, or with every
// known Payeer currency when codes is empty.
func NewCurrencyRegistry(codes ...string) *CurrencyRegistry {
	cr := &CurrencyRegistry{currencies: make(map[string]CurrencyMeta)}
	if len(codes) == 0 {
		for code, meta := range knownCurrencies {
			cr.currencies[code] = meta
		}
		return cr
	}
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		meta, ok := knownCurrencies[code]
		if !ok {
			meta = CurrencyMeta{Code: code, Decimals: DefaultDecimals, Symbol: code}
		}
		cr.currencies[code] = meta
	}
	return cr
}

// Get returns currency metadata for the given code
func (cr *CurrencyRegistry) Get(code string) (CurrencyMeta, bool) {
	meta, ok := cr.currencies[code]
	return meta, ok
}

// IsSupported checks if a currency code is registered
func (cr *CurrencyRegistry) IsSupported(code string) bool {
	_, ok := cr.currencies[code]
	return ok
}

// ListSupported returns a sorted list of all supported currency codes
func (cr *CurrencyRegistry) ListSupported() []string {
	codes := make([]string, 0, len(cr.currencies))
	for code := range cr.currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Count returns the total number of registered currencies
func (cr *CurrencyRegistry) Count() int {
	return len(cr.currencies)
}
