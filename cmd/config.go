package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"takeout/internal/pkg/errs"
)

// Payment providers accepted in PAYMENT_PROVIDER.
const (
	PaymentProviderSimulated = "simulated"
	PaymentProviderStripe    = "stripe"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	// Location is used for order timestamps and job schedules.
	Location    *time.Location
	UnpaidAfter time.Duration
	UnpaidSpec  string
	StuckAfter  time.Duration
	StuckSpec   string

	PaymentProvider     string
	StripeAPIKey        string
	StripeCurrency      string
	StripePaymentMethod string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RateLimitPerSecond float64
	RateLimitBurst     int
	// RateLimitExpiresIn drops idle per-client limiters.
	RateLimitExpiresIn time.Duration
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode, c.Location.String())
}

// LoadConfig reads the configuration through getenv. Unset keys fall back to
// defaults; malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:               p.str("HTTP_PORT", "8080"),
		DBHost:                 p.str("DB_HOST", "localhost"),
		DBPort:                 p.str("DB_PORT", "5432"),
		DBUser:                 p.str("DB_USER", "postgres"),
		DBPassword:             p.str("DB_PASSWORD", ""),
		DBName:                 p.str("DB_NAME", "takeout"),
		DBSslMode:              p.str("DB_SSLMODE", "disable"),
		LogLevel:               p.level("LOG_LEVEL", slog.LevelInfo),
		Location:               p.location("TIMEZONE", time.UTC),
		UnpaidAfter:            p.duration("UNPAID_ORDER_TIMEOUT", 15*time.Minute),
		UnpaidSpec:             p.str("UNPAID_ORDER_SWEEP_CRON", "0 * * * * *"),
		StuckAfter:             p.duration("STUCK_DELIVERY_TIMEOUT", 60*time.Minute),
		StuckSpec:              p.str("STUCK_DELIVERY_SWEEP_CRON", "0 0 1 * * *"),
		PaymentProvider:        strings.ToLower(p.str("PAYMENT_PROVIDER", PaymentProviderSimulated)),
		StripeAPIKey:           p.str("STRIPE_API_KEY", ""),
		StripeCurrency:         p.str("STRIPE_CURRENCY", "cny"),
		StripePaymentMethod:    p.str("STRIPE_PAYMENT_METHOD", "pm_card_visa"),
		KafkaHost:              p.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: p.str("KAFKA_ORDER_CHANGED_TOPIC", "order.status-changed"),
		RateLimitPerSecond:     p.number("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:         p.integer("RATE_LIMIT_BURST", 40),
		RateLimitExpiresIn:     p.duration("RATE_LIMIT_EXPIRES_IN", 3*time.Minute),
	}

	switch cfg.PaymentProvider {
	case PaymentProviderSimulated:
	case PaymentProviderStripe:
		if cfg.StripeAPIKey == "" {
			p.fail(errs.NewValueIsRequiredError("STRIPE_API_KEY"))
		}
	default:
		p.fail(errs.NewValueIsInvalidErrorWithCause("PAYMENT_PROVIDER",
			fmt.Errorf("%q is not one of %s, %s", cfg.PaymentProvider, PaymentProviderSimulated, PaymentProviderStripe)))
	}
	if cfg.UnpaidAfter <= 0 {
		p.fail(errs.NewValueIsInvalidErrorWithCause("UNPAID_ORDER_TIMEOUT", errors.New("must be positive")))
	}
	if cfg.StuckAfter <= 0 {
		p.fail(errs.NewValueIsInvalidErrorWithCause("STUCK_DELIVERY_TIMEOUT", errors.New("must be positive")))
	}
	if cfg.RateLimitExpiresIn <= 0 {
		p.fail(errs.NewValueIsInvalidErrorWithCause("RATE_LIMIT_EXPIRES_IN", errors.New("must be positive")))
	}
	if cfg.RateLimitPerSecond < 0 {
		p.fail(errs.NewValueIsInvalidErrorWithCause("RATE_LIMIT_PER_SECOND", errors.New("must not be negative")))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) fail(err error) {
	p.errs = append(p.errs, err)
}

func (p *envParser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}

func (p *envParser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (p *envParser) number(key string, def float64) float64 {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

func (p *envParser) location(key string, def *time.Location) *time.Location {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	loc, err := time.LoadLocation(raw)
	if err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return loc
}

func (p *envParser) level(key string, def slog.Level) slog.Level {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		p.fail(errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return l
}
