package app

import (
	"log/slog"

	"github.com/amirasaad/payeer/infra/metrics"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/currency"
	"github.com/amirasaad/payeer/pkg/provider"
)

// Deps contains everything the HTTP layer and the CLI need
type Deps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Currencies *currency.CurrencyRegistry
	API        provider.PayeerAPI
	Merchant   provider.CheckoutBuilder
	Verifier   provider.CallbackVerifier
}

type App struct {
	Deps   *Deps
	Config *config.App
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &App{
		Deps:   deps,
		Config: cfg,
	}
}
