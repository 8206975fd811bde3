package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAYEER_ACCOUNT", "P1000000")
	t.Setenv("PAYEER_MERCHANT_ID", "12345")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "P1000000", cfg.Payeer.Account)
	assert.Equal(t, "12345", cfg.Payeer.MerchantID)
	assert.Equal(t, "https://payeer.com/", cfg.Payeer.BaseURL)
	assert.Equal(t, "ru", cfg.Payeer.Language)
	assert.Equal(t, []string{"185.71.65.92", "185.71.65.189", "149.202.17.210"}, cfg.Payeer.AllowedIPs)
	assert.Equal(t, []string{"USD", "EUR", "RUB"}, cfg.Payeer.Currencies)
	assert.Equal(t, 30*time.Second, cfg.Payeer.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.Jwt.Expiry)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.test")
	content := "PAYEER_ALLOWED_IPS=127.0.0.1,10.0.0.0/8\nPAYEER_LANGUAGE=en\nPAYEER_HTTP_TIMEOUT=5s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PAYEER_ALLOWED_IPS")  //nolint:errcheck
		os.Unsetenv("PAYEER_LANGUAGE")     //nolint:errcheck
		os.Unsetenv("PAYEER_HTTP_TIMEOUT") //nolint:errcheck
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.Payeer.AllowedIPs)
	assert.Equal(t, "en", cfg.Payeer.Language)
	assert.Equal(t, 5*time.Second, cfg.Payeer.HTTPTimeout)
}

func TestPayeer_Validate(t *testing.T) {
	p := &Payeer{
		Account:           "P1000000",
		ApiID:             "id",
		ApiPass:           "pass",
		MerchantID:        "12345",
		MerchantSecretKey: "secret",
	}
	assert.NoError(t, p.Validate())

	p.ApiPass = ""
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "PAYEER_API_PASS")
}

func TestApp_Validate(t *testing.T) {
	cfg := &App{
		Auth: &Auth{Jwt: &Jwt{Secret: "secret"}},
		Payeer: &Payeer{
			Account:           "P1000000",
			ApiID:             "id",
			ApiPass:           "pass",
			MerchantID:        "12345",
			MerchantSecretKey: "secret",
		},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Auth.Jwt.Secret = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJwtSecret)

	cfg.Auth = nil
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJwtSecret)

	cfg.Payeer.MerchantID = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingCredentials)

	assert.ErrorIs(t, (&App{}).Validate(), ErrMissingCredentials)
}

func TestFindEnvFile(t *testing.T) {
	_, err := FindEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)

	_, err = FindEnvFile("definitely-not-here.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "ab****ghij", maskValue("abcdefghij"))
}
