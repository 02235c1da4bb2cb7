package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, "aed", cfg.PaymentCurrency)
	assert.Zero(t, cfg.RegistrationFeeAED)
	assert.False(t, cfg.R2.Enabled())
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Values(t *testing.T) {
	cfg, err := fromEnv(env(map[string]string{
		"SERVER_PORT":          "9000",
		"API_BASE_URL":         "https://api.example.com/",
		"API_TIMEOUT":          "15s",
		"PUBLIC_URL":           "https://clinic.example.com/",
		"REGISTRATION_FEE_AED": "250",
		"CHECKOUT_SECRET_KEY":  "s3cret",
		"PAYMENT_CURRENCY":     "AED",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"R2_ACCOUNT_ID":        "acc",
		"R2_ACCESS_KEY_ID":     "key",
		"R2_SECRET_ACCESS_KEY": "secret",
		"R2_BUCKET_NAME":       "exports",
		"R2_PUBLIC_BASE_URL":   "https://files.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, "https://clinic.example.com", cfg.PublicURL)
	assert.Equal(t, int64(250), cfg.RegistrationFeeAED)
	assert.Equal(t, "aed", cfg.PaymentCurrency)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.R2.Enabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number":   {"SERVER_PORT": "http"},
		"port out of range":   {"SERVER_PORT": "70000"},
		"bad timeout":         {"API_TIMEOUT": "soon"},
		"negative fee":        {"REGISTRATION_FEE_AED": "-1"},
		"fee without secret":  {"REGISTRATION_FEE_AED": "250"},
		"partial r2 settings": {"R2_BUCKET_NAME": "exports"},
	}
	for name, vals := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fromEnv(env(vals))
			assert.Error(t, err)
		})
	}
}
