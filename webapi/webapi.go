// Package webapi provides the HTTP surface of the Payeer connector.
// It is organized into sub-packages:
// - merchant: status callback and checkout links
// - wallet: operator access to the signed API actions
// - common: response envelopes and error mapping
package webapi

import (
	"github.com/amirasaad/payeer/pkg/app"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/webapi/common"
	merchantweb "github.com/amirasaad/payeer/webapi/merchant"
	walletweb "github.com/amirasaad/payeer/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// SetupApp Initialize Fiber with custom configuration.
// onPaid is called for every accepted status callback and may be nil.
func SetupApp(a *app.App, onPaid merchantweb.PaymentHandler) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "payeer " + payeer.Version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	fiberApp.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Payeer connector is running! 🚀")
		},
	)
	if a.Deps.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(a.Deps.Metrics.Handler()))
	}

	merchantweb.Routes(fiberApp, a.Deps, a.Config, onPaid)
	// API currencies are not limited to the checkout allow-list.
	walletweb.Routes(fiberApp, a.Deps.API, payeer.NewValidator(nil), a.Config)
	return fiberApp
}
