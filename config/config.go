package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int

	// Внешний API заявок и платежей.
	APIBaseURL string
	APITimeout time.Duration // 0 = без таймаута

	// PublicURL is the site origin, used for payment return URLs.
	PublicURL string

	StripePublishableKey string
	CheckoutSecretKey    string
	RegistrationFeeAED   int64
	PaymentCurrency      string

	CORSAllowedOrigins []string

	// Опционально: журнал платежей в Postgres.
	DatabaseURL string

	R2 R2Config
}

// R2Config is all-or-nothing: either every field is set or archiving is off.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != "" && c.PublicBaseURL != ""
}

func (c R2Config) partial() bool {
	return !c.Enabled() && (c.AccountID != "" || c.AccessKeyID != "" || c.SecretAccessKey != "" || c.BucketName != "" || c.PublicBaseURL != "")
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(get("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var timeout time.Duration
	if raw := get("API_TIMEOUT", ""); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT environment variable: %w", err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("API_TIMEOUT must not be negative, got %s", raw)
		}
	}

	fee, err := strconv.ParseInt(get("REGISTRATION_FEE_AED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REGISTRATION_FEE_AED environment variable: %w", err)
	}
	if fee < 0 {
		return nil, fmt.Errorf("REGISTRATION_FEE_AED must not be negative, got %d", fee)
	}

	cfg := &Config{
		ServerPort:           port,
		APIBaseURL:           strings.TrimRight(get("API_BASE_URL", "http://localhost:5000"), "/"),
		APITimeout:           timeout,
		PublicURL:            strings.TrimRight(get("PUBLIC_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
		StripePublishableKey: get("STRIPE_PUBLISHABLE_KEY", ""),
		CheckoutSecretKey:    get("CHECKOUT_SECRET_KEY", ""),
		RegistrationFeeAED:   fee,
		PaymentCurrency:      strings.ToLower(get("PAYMENT_CURRENCY", "aed")),
		CORSAllowedOrigins:   splitList(get("CORS_ALLOWED_ORIGINS", "")),
		DatabaseURL:          get("DATABASE_URL", ""),
		R2: R2Config{
			AccountID:       get("R2_ACCOUNT_ID", ""),
			AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      get("R2_BUCKET_NAME", ""),
			PublicBaseURL:   get("R2_PUBLIC_BASE_URL", ""),
		},
	}

	// Без секрета нельзя подписать токен оплаты.
	if cfg.RegistrationFeeAED > 0 && cfg.CheckoutSecretKey == "" {
		return nil, fmt.Errorf("CHECKOUT_SECRET_KEY environment variable is not set (required when REGISTRATION_FEE_AED > 0)")
	}
	if cfg.R2.partial() {
		return nil, fmt.Errorf("R2 configuration is incomplete: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
