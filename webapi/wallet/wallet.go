// Package wallet exposes the signed Payeer API actions to operators.
package wallet

import (
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/middleware"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/pkg/provider"
	"github.com/amirasaad/payeer/webapi/common"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the operator routes, each behind JwtProtected.
// The callback shares the /payeer prefix, so the guard is per route.
func Routes(
	app *fiber.App,
	api provider.PayeerAPI,
	validate *validator.Validate,
	cfg *config.App,
) {
	auth := middleware.JwtProtected(cfg.Auth.Jwt)
	g := app.Group("/payeer")
	g.Get("/balance", auth, Balance(api))
	g.Get("/users/:wallet", auth, CheckUser(api))
	g.Get("/rates", auth, ExchangeRate(api))
	g.Get("/paysystems", auth, PaySystems(api))
	g.Get("/history", auth, History(api, validate))
	g.Get("/history/:id", auth, HistoryInfo(api))
	g.Get("/orders/:shop/:order", auth, ShopOrderInfo(api))
	g.Post("/transfers", auth, Transfer(api, validate))
	g.Post("/payouts/check", auth, CheckOutput(api, validate))
	g.Post("/payouts", auth, Output(api, validate))
}

// Balance returns the account balance per currency.
func Balance(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance, err := api.Balance(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched", balance)
	}
}

// CheckUser reports whether the wallet in the path exists.
func CheckUser(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Params("wallet")
		if err := payeer.ValidateWallet(wallet); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet", err)
		}
		exists, err := api.CheckUser(c.UserContext(), wallet)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to check user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User checked", CheckResponse{OK: exists})
	}
}

// ExchangeRate returns conversion rates; ?output=Y selects withdrawal rates.
func ExchangeRate(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rates, err := api.ExchangeRate(c.UserContext(), payeer.RateOutput(c.Query("output")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch exchange rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchange rates fetched", rates)
	}
}

// PaySystems returns the payment systems available for payouts.
func PaySystems(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := api.PaySystems(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch payment systems", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment systems fetched", list)
	}
}

// History returns the operation history filtered by the query string.
func History(api provider.PayeerAPI, validate *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := payeer.ParseHistoryParams(c.Queries())
		if err == nil {
			err = payeer.ValidateStruct(validate, params)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid history filter", err)
		}
		history, err := api.History(c.UserContext(), params)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched", history)
	}
}

func HistoryInfo(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := api.HistoryInfo(c.UserContext(), c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", info)
	}
}

func ShopOrderInfo(api provider.PayeerAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := api.ShopOrderInfo(c.UserContext(), c.Params("shop"), c.Params("order"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch order", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Order fetched", info)
	}
}

// Transfer moves funds to another Payeer account.
func Transfer(api provider.PayeerAPI, validate *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[payeer.TransferParams](c, validate)
		if err != nil {
			return nil
		}
		created, err := api.Transfer(c.UserContext(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer processed", CheckResponse{OK: created})
	}
}

// CheckOutput validates a payout without creating it.
func CheckOutput(api provider.PayeerAPI, validate *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[payeer.OutputParams](c, validate)
		if err != nil {
			return nil
		}
		ok, err := api.CheckOutput(c.UserContext(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Payout check failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payout checked", CheckResponse{OK: ok})
	}
}

// Output creates a payout.
func Output(api provider.PayeerAPI, validate *validator.Validate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[payeer.OutputParams](c, validate)
		if err != nil {
			return nil
		}
		resp, err := api.Output(c.UserContext(), *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Payout failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Payout created", resp)
	}
}
