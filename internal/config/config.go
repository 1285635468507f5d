package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // the terminal may run on images without zoneinfo

	"github.com/spf13/viper"
)

// Config holds everything the terminal needs at start-up.
type Config struct {
	AppPort        string
	DatabaseDriver string // sqlite or postgres
	DatabaseDSN    string
	SeedCatalog    bool
	RabbitMQURL    string // empty disables event publishing
	RabbitMQQueue  string
	JWTSecret      string
	LogLevel       string
	LogFormat      string
	Location       *time.Location
	AlcoholFrom    TimeOfDay
	EatInUntil     TimeOfDay
	CheckoutDelay  time.Duration
}

// TimeOfDay is an hour and minute on the local clock.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:bakery?mode=memory&cache=shared")
	v.SetDefault("SEED_CATALOG", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "pos_events")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("TIMEZONE", "Asia/Tokyo")
	v.SetDefault("ALCOHOL_FROM", "17:00")
	v.SetDefault("EAT_IN_UNTIL", "20:30")
	v.SetDefault("CHECKOUT_DELAY", "800ms")
}

// Load reads the configuration from v. Environment variables override defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	alcoholFrom, err := ParseTimeOfDay(v.GetString("ALCOHOL_FROM"))
	if err != nil {
		return nil, fmt.Errorf("ALCOHOL_FROM: %w", err)
	}
	eatInUntil, err := ParseTimeOfDay(v.GetString("EAT_IN_UNTIL"))
	if err != nil {
		return nil, fmt.Errorf("EAT_IN_UNTIL: %w", err)
	}
	driver := v.GetString("DATABASE_DRIVER")
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	return &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: driver,
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SeedCatalog:    v.GetBool("SEED_CATALOG"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		Location:       loc,
		AlcoholFrom:    alcoholFrom,
		EatInUntil:     eatInUntil,
		CheckoutDelay:  v.GetDuration("CHECKOUT_DELAY"),
	}, nil
}
