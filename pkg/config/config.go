package config

import (
	"time"

	"github.com/amirasaad/payeer/pkg/payeer"
)

type Jwt struct {
	Secret string        `envconfig:"SECRET"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

//revive:disable
type Payeer struct {
	Account           string        `envconfig:"ACCOUNT"`
	ApiID             string        `envconfig:"API_ID"`
	ApiPass           string        `envconfig:"API_PASS"`
	MerchantID        string        `envconfig:"MERCHANT_ID"`
	MerchantSecretKey string        `envconfig:"MERCHANT_SECRET_KEY"`
	BaseURL           string        `envconfig:"BASE_URL" default:"https://payeer.com/"`
	Language          string        `envconfig:"LANGUAGE" default:"ru"`
	AllowedIPs        []string      `envconfig:"ALLOWED_IPS" default:"185.71.65.92,185.71.65.189,149.202.17.210"`
	Currencies        []string      `envconfig:"CURRENCIES" default:"USD,EUR,RUB"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

//revive:enable

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[payeer]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Server *Server `envconfig:"SERVER"`
	Log    *Log    `envconfig:"LOG"`
	Auth   *Auth   `envconfig:"AUTH"`
	Payeer *Payeer `envconfig:"PAYEER"`
}

// Credentials returns the Payeer secrets as the connector consumes them.
func (p *Payeer) Credentials() payeer.Credentials {
	return payeer.Credentials{
		Account:           p.Account,
		APIID:             p.ApiID,
		APIPass:           p.ApiPass,
		MerchantID:        p.MerchantID,
		MerchantSecretKey: p.MerchantSecretKey,
	}
}
