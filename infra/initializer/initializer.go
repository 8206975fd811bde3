package initializer

import (
	"fmt"

	"github.com/amirasaad/payeer/infra/metrics"
	"github.com/amirasaad/payeer/infra/provider/payeerapi"
	"github.com/amirasaad/payeer/pkg/app"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/currency"
	"github.com/amirasaad/payeer/pkg/payeer"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	if cfg == nil || cfg.Payeer == nil {
		return nil, fmt.Errorf("payeer config is required")
	}
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger
	deps.Metrics = metrics.New()

	deps.Currencies = currency.NewCurrencyRegistry(cfg.Payeer.Currencies...)
	logger.Info("Currency registry ready", "currencies", deps.Currencies.ListSupported())

	deps.Merchant = payeer.NewMerchant(
		cfg.Payeer.Credentials(),
		payeer.MerchantConfig{
			BaseURL:    cfg.Payeer.BaseURL,
			Language:   cfg.Payeer.Language,
			Currencies: deps.Currencies,
		},
		logger.With("component", "merchant"),
	)

	deps.Verifier, err = payeer.NewCallbackVerifier(
		cfg.Payeer.MerchantSecretKey,
		cfg.Payeer.AllowedIPs,
		logger.With("component", "callback"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize callback verifier: %w", err)
	}

	deps.API = payeerapi.New(cfg.Payeer, logger, deps.Metrics)

	logger.Info("Dependencies initialized",
		"base_url", cfg.Payeer.BaseURL,
		"allowed_ips", len(cfg.Payeer.AllowedIPs),
	)
	return deps, nil
}
