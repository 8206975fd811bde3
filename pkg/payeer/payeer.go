// Package payeer implements the Payeer merchant protocol: wallet validation,
// m_sign generation and verification, checkout links and status callbacks.
//
// Nothing in this package performs network I/O. The signed REST API lives in
// infra/provider/payeerapi.
package payeer

// Version of the connector, reported in the User-Agent of API calls.
const Version = "0.5"

// DefaultBaseURL is the Payeer domain every endpoint is resolved against.
const DefaultBaseURL = "https://payeer.com/"

const (
	merchantPath = "merchant/?"
	// APIPath is the single endpoint every API action is posted to.
	APIPath = "ajax/api/api.php"
)

// Languages accepted by the merchant page.
const (
	LanguageRU = "ru"
	LanguageEN = "en"
)

// IsLanguage reports whether lang is a language the merchant page understands.
func IsLanguage(lang string) bool {
	return lang == LanguageRU || lang == LanguageEN
}

// Credentials are the account and merchant secrets a connector is built from.
// They are never mutated after construction.
type Credentials struct {
	Account           string
	APIID             string
	APIPass           string
	MerchantID        string
	MerchantSecretKey string
}

// MerchantURL returns the checkout endpoint for base, without a query.
func MerchantURL(base string) string {
	return normalizeBase(base) + merchantPath
}

// APIURL returns the API endpoint for base.
func APIURL(base string) string {
	return normalizeBase(base) + APIPath
}

func normalizeBase(base string) string {
	if base == "" {
		return DefaultBaseURL
	}
	if base[len(base)-1] != '/' {
		return base + "/"
	}
	return base
}
