package middleware

import (
	"errors"
	"time"

	"github.com/amirasaad/payeer/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSigningKey is reported for every request when no JWT secret is configured.
var ErrNoSigningKey = errors.New("jwt secret is not configured")

// JwtProtected guards the operator routes with an HS256 bearer token.
// Without a secret every request is rejected.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	if cfg == nil || cfg.Secret == "" {
		return func(c *fiber.Ctx) error {
			return jwtError(c, ErrNoSigningKey)
		}
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": fiber.StatusBadRequest, "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": fiber.StatusUnauthorized, "message": "Invalid or expired JWT"})
}

// NewToken signs an operator token for subject, valid for cfg.Expiry.
func NewToken(cfg *config.Jwt, subject string) (string, error) {
	if cfg == nil || cfg.Secret == "" {
		return "", ErrNoSigningKey
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// Subject returns the subject of the token set by JwtProtected.
func Subject(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	sub, _ := token.Claims.GetSubject()
	return sub
}
