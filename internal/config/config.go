package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort        string        `mapstructure:"APP_PORT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`

	// Redis is only used for the UF cache; empty address means in-memory.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CMFAPIURL     string `mapstructure:"CMF_API_URL"`
	CMFAPIKey     string `mapstructure:"CMF_API_KEY"`
	UFRefreshCron string `mapstructure:"UF_REFRESH_CRON"`

	ReservaResetDelay time.Duration `mapstructure:"RESERVA_RESET_DELAY"`

	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeSuccessURL    string `mapstructure:"STRIPE_SUCCESS_URL"`
	StripeCancelURL     string `mapstructure:"STRIPE_CANCEL_URL"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	SendGridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `mapstructure:"SENDGRID_FROM_NAME"`

	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	ConserjePhone    string `mapstructure:"CONSERJE_PHONE"`

	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	LoginRatePerMin int    `mapstructure:"LOGIN_RATE_PER_MIN"`
}

var defaults = map[string]any{
	"APP_PORT":              "8080",
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"BACKEND_URL":           "http://localhost:8000/api/v1",
	"BACKEND_TIMEOUT":       "0s",
	"JWT_SECRET":            "dev-secret-change-me",
	"DATABASE_URL":          "",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"CMF_API_URL":           "https://api.cmfchile.cl/api-sbifv3/recursos_api/uf",
	"CMF_API_KEY":           "",
	"UF_REFRESH_CRON":       "0 5 * * *",
	"RESERVA_RESET_DELAY":   "2s",
	"STRIPE_KEY":            "",
	"STRIPE_SUCCESS_URL":    "http://localhost:5173/pagos?estado=exito&session_id={CHECKOUT_SESSION_ID}",
	"STRIPE_CANCEL_URL":     "http://localhost:5173/pagos?estado=cancelado",
	"STRIPE_WEBHOOK_SECRET": "",
	"SENDGRID_API_KEY":      "",
	"SENDGRID_FROM_EMAIL":   "",
	"SENDGRID_FROM_NAME":    "Administración Condominio",
	"TWILIO_ACCOUNT_SID":    "",
	"TWILIO_AUTH_TOKEN":     "",
	"TWILIO_FROM_NUMBER":    "",
	"CONSERJE_PHONE":        "",
	"CORS_ORIGINS":          "http://localhost:5173",
	"LOGIN_RATE_PER_MIN":    10,
}

// Load reads .env (if present), an optional config.yaml and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
