package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/payeer/infra/provider/payeerapi"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/pkg/currency"
	"github.com/amirasaad/payeer/pkg/middleware"
	"github.com/amirasaad/payeer/pkg/payeer"
	"github.com/amirasaad/payeer/pkg/provider"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  checkout <amount> <currency> <description> [order_id]
  balance
  check-user <wallet>
  rates [N|Y]
  paysystems
  history [key=value ...]
  history-info <history_id>
  order-info <shop_id> <order_id>
  transfer <to> <sum> [currency] [comment]
  check-output <ps> <account> <sum> [currency]
  output <ps> <account> <sum> [currency]
  sign <field> [field ...]
  token <subject>`

var errUsage = errors.New("invalid usage")

// apiCommands need the API password.
var apiCommands = map[string]bool{
	"balance": true, "check-user": true, "rates": true, "paysystems": true,
	"history": true, "history-info": true, "order-info": true,
	"transfer": true, "check-output": true, "output": true,
}

type cli struct {
	cfg      *config.App
	api      provider.PayeerAPI
	merchant provider.CheckoutBuilder
	out      io.Writer
	ok       *color.Color
	fail     *color.Color
	key      *color.Color
}

func newCLI(cfg *config.App, out io.Writer, logger *slog.Logger) *cli {
	return &cli{
		cfg: cfg,
		api: payeerapi.New(cfg.Payeer, logger, nil),
		merchant: payeer.NewMerchant(cfg.Payeer.Credentials(), payeer.MerchantConfig{
			BaseURL:    cfg.Payeer.BaseURL,
			Language:   cfg.Payeer.Language,
			Currencies: currency.NewCurrencyRegistry(cfg.Payeer.Currencies...),
		}, logger),
		out:  out,
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		key:  color.New(color.FgCyan),
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	// Keep stdout for results.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.Load(".env")
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Failed to load configuration:", err) //nolint:errcheck
		os.Exit(1)
	}
	if apiCommands[os.Args[1]] && cfg.Payeer.ApiPass == "" {
		if cfg.Payeer.ApiPass, err = promptSecret("Payeer API password: "); err != nil {
			color.New(color.FgRed).Fprintln(os.Stderr, err) //nolint:errcheck
			os.Exit(1)
		}
	}

	c := newCLI(cfg, os.Stdout, logger)
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		c.fail.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

// promptSecret reads a secret from the terminal without echo.
func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("PAYEER_API_PASS is not set and stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	need := func(n int) error {
		if len(rest) < n {
			return fmt.Errorf("%w: %s needs %d argument(s)", errUsage, cmd, n)
		}
		return nil
	}

	switch cmd {
	case "checkout":
		if err := need(3); err != nil {
			return err
		}
		orderID := uuid.NewString()
		if len(rest) > 3 {
			orderID = rest[3]
		}
		co, err := c.merchant.Checkout(payeer.Order{
			OrderID:     orderID,
			Amount:      rest[0],
			Currency:    strings.ToUpper(rest[1]),
			Description: rest[2],
		})
		if err != nil {
			return err
		}
		c.field("order_id", orderID)
		c.field("signature", co.Signature)
		c.field("location", co.Location)
		return nil

	case "balance":
		return c.print(c.api.Balance(ctx))

	case "check-user":
		if err := need(1); err != nil {
			return err
		}
		return c.check(c.api.CheckUser(ctx, rest[0]))

	case "rates":
		var output payeer.RateOutput
		if len(rest) > 0 {
			output = payeer.RateOutput(strings.ToUpper(rest[0]))
		}
		return c.print(c.api.ExchangeRate(ctx, output))

	case "paysystems":
		return c.print(c.api.PaySystems(ctx))

	case "history":
		opts := make(map[string]string, len(rest))
		for _, kv := range rest {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("%w: history option %q is not key=value", errUsage, kv)
			}
			opts[k] = v
		}
		params, err := payeer.ParseHistoryParams(opts)
		if err != nil {
			return err
		}
		return c.print(c.api.History(ctx, params))

	case "history-info":
		if err := need(1); err != nil {
			return err
		}
		return c.print(c.api.HistoryInfo(ctx, rest[0]))

	case "order-info":
		if err := need(2); err != nil {
			return err
		}
		return c.print(c.api.ShopOrderInfo(ctx, rest[0], rest[1]))

	case "transfer":
		if err := need(2); err != nil {
			return err
		}
		params := payeer.TransferParams{To: rest[0], Sum: rest[1]}
		if len(rest) > 2 {
			params.CurIn = strings.ToUpper(rest[2])
			params.CurOut = params.CurIn
		}
		if len(rest) > 3 {
			params.Comment = strings.Join(rest[3:], " ")
		}
		return c.check(c.api.Transfer(ctx, params))

	case "check-output", "output":
		if err := need(3); err != nil {
			return err
		}
		params := payeer.OutputParams{PaySystem: rest[0], Account: rest[1], SumIn: rest[2]}
		if len(rest) > 3 {
			params.CurIn = strings.ToUpper(rest[3])
			params.CurOut = params.CurIn
		}
		if cmd == "check-output" {
			return c.check(c.api.CheckOutput(ctx, params))
		}
		return c.print(c.api.Output(ctx, params))

	case "sign":
		if err := need(1); err != nil {
			return err
		}
		fmt.Fprintln(c.out, payeer.Sign(rest...))
		return nil

	case "token":
		if err := need(1); err != nil {
			return err
		}
		token, err := middleware.NewToken(c.cfg.Auth.Jwt, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, token)
		return nil

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) field(name, value string) {
	c.key.Fprintf(c.out, "%-10s", name) //nolint:errcheck
	fmt.Fprintln(c.out, value)
}

func (c *cli) print(resp payeer.Response, err error) error {
	if err != nil {
		var apiErr *payeer.APIError
		if errors.As(err, &apiErr) {
			c.fail.Fprintln(c.out, "Payeer rejected the request:") //nolint:errcheck
			if jerr := c.writeJSON(apiErr.Errors); jerr != nil {
				return jerr
			}
		}
		return err
	}
	return c.writeJSON(resp)
}

func (c *cli) check(ok bool, err error) error {
	if err != nil {
		return err
	}
	if ok {
		c.ok.Fprintln(c.out, "OK") //nolint:errcheck
		return nil
	}
	c.fail.Fprintln(c.out, "NO") //nolint:errcheck
	return nil
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
