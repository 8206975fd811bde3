package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	// ErrMissingCredentials is returned by Payeer.Validate when a secret is not configured.
	ErrMissingCredentials = errors.New("missing payeer credentials")
	// ErrMissingJwtSecret is returned by App.Validate when AUTH_JWT_SECRET is empty.
	ErrMissingJwtSecret = errors.New("AUTH_JWT_SECRET is not set")
)

func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	// If no specific paths provided, try default .env
	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	// Try each provided path until we find a valid one
	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using process environment")
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"payeer_base_url", cfg.Payeer.BaseURL,
		"payeer_account", cfg.Payeer.Account,
		"payeer_api_id", maskValue(cfg.Payeer.ApiID),
		"payeer_merchant_id", cfg.Payeer.MerchantID,
		"payeer_allowed_ips", cfg.Payeer.AllowedIPs,
		"payeer_currencies", cfg.Payeer.Currencies,
		"payeer_http_timeout", cfg.Payeer.HTTPTimeout,
	)
	return &cfg, nil
}

// Validate checks everything the HTTP service needs: the Payeer secrets and
// the operator token secret. The CLI only needs a subset and skips it.
func (a *App) Validate() error {
	if a.Payeer == nil {
		return errors.Join(ErrMissingCredentials, errors.New("payeer config is not loaded"))
	}
	if err := a.Payeer.Validate(); err != nil {
		return err
	}
	if a.Auth == nil || a.Auth.Jwt == nil || a.Auth.Jwt.Secret == "" {
		return ErrMissingJwtSecret
	}
	return nil
}

// Validate reports ErrMissingCredentials naming the first empty secret.
func (p *Payeer) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"PAYEER_ACCOUNT", p.Account},
		{"PAYEER_API_ID", p.ApiID},
		{"PAYEER_API_PASS", p.ApiPass},
		{"PAYEER_MERCHANT_ID", p.MerchantID},
		{"PAYEER_MERCHANT_SECRET_KEY", p.MerchantSecretKey},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Join(ErrMissingCredentials, errors.New(r.name+" is not set"))
		}
	}
	return nil
}

// FindEnvFile walks up from the working directory looking for filename,
// .env when empty.
func FindEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}
	curr, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(curr, filename)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			return "", os.ErrNotExist
		}
		curr = parent
	}
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
