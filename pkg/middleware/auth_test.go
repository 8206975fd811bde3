package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/payeer/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp(cfg *config.Jwt) *fiber.App {
	app := fiber.New()
	app.Use(JwtProtected(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(Subject(c)) })
	return app
}

func TestJwtProtected_MissingToken(t *testing.T) {
	app := protectedApp(&config.Jwt{Secret: "secret", Expiry: time.Hour})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJwtProtected_ValidToken(t *testing.T) {
	cfg := &config.Jwt{Secret: "secret", Expiry: time.Hour}
	app := protectedApp(cfg)

	token, err := NewToken(cfg, "operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtProtected_WrongSecret(t *testing.T) {
	app := protectedApp(&config.Jwt{Secret: "secret", Expiry: time.Hour})

	token, err := NewToken(&config.Jwt{Secret: "other", Expiry: time.Hour}, "operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_ExpiredToken(t *testing.T) {
	cfg := &config.Jwt{Secret: "secret", Expiry: -time.Minute}
	app := protectedApp(cfg)

	token, err := NewToken(cfg, "operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNewToken_NoSecret(t *testing.T) {
	_, err := NewToken(&config.Jwt{}, "operator")
	assert.Error(t, err)
}

func TestJwtProtected_EmptySecretRejectsEverything(t *testing.T) {
	app := protectedApp(&config.Jwt{Expiry: time.Hour})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "intruder"}).
		SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = protectedApp(nil).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
