package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"PORT"`
	Env         string        `mapstructure:"ENV"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	AdminJWTTTL time.Duration `mapstructure:"ADMIN_JWT_TTL"`
	CORSOrigins string        `mapstructure:"CORS_ORIGINS"`

	RateLimitPerMin  int           `mapstructure:"RATE_LIMIT_PER_MIN"`
	GuestCleanupCron string        `mapstructure:"GUEST_CLEANUP_CRON"`
	DBTimeout        time.Duration `mapstructure:"DB_TIMEOUT"`

	SendGridAPIKey    string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName  string `mapstructure:"SENDGRID_FROM_NAME"`

	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	FrontDeskPhone   string `mapstructure:"FRONT_DESK_PHONE"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"ENV":                 "development",
	"LOG_LEVEL":           "info",
	"DATABASE_URL":        "",
	"JWT_SECRET":          "",
	"ADMIN_JWT_TTL":       "1h",
	"CORS_ORIGINS":        "*",
	"RATE_LIMIT_PER_MIN":  60,
	"GUEST_CLEANUP_CRON":  "0 3 * * *",
	"DB_TIMEOUT":          "5s",
	"SENDGRID_API_KEY":    "",
	"SENDGRID_FROM_EMAIL": "",
	"SENDGRID_FROM_NAME":  "Spotbook",
	"TWILIO_ACCOUNT_SID":  "",
	"TWILIO_AUTH_TOKEN":   "",
	"TWILIO_FROM_NUMBER":  "",
	"FRONT_DESK_PHONE":    "",
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s not set", strings.Join(missing, ", "))
	}
	if c.RateLimitPerMin < 1 {
		return fmt.Errorf("invalid RATE_LIMIT_PER_MIN %d", c.RateLimitPerMin)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
}

func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && c.FrontDeskPhone != ""
}
