package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/payeer/infra/initializer"
	"github.com/amirasaad/payeer/pkg/app"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a, logPayment(logger))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"version", payeer.Version,
	)
	return fiberApp.Listen(addr)
}

// logPayment is the default hook for accepted callbacks.
func logPayment(logger *slog.Logger) func(context.Context, payeer.CallbackPayload) error {
	return func(ctx context.Context, p payeer.CallbackPayload) error {
		logger.InfoContext(ctx, "Payment received",
			"order_id", p.OrderID,
			"operation_id", p.OperationID,
			"amount", p.Amount,
			"currency", p.Currency,
			"paid_at", p.OperationPayDate,
		)
		return nil
	}
}
