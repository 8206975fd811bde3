package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/amirasaad/payeer/infra/initializer"
	"github.com/amirasaad/payeer/pkg/app"
	"github.com/amirasaad/payeer/pkg/config"
	"github.com/amirasaad/payeer/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

// Handler is the serverless entry point. The fiber app is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { handler = build() })
	handler.ServeHTTP(w, r)
}

func build() http.HandlerFunc {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("Failed to load application configuration", "error", err)
		return unavailable
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		return unavailable
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps, cfg), nil))
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "service misconfigured", http.StatusServiceUnavailable)
}
