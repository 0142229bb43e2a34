package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, etc.), security settings
// - default: Values common across all environments (timezone, timeout, booking rules, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Engine  EngineConfig
	Booking BookingConfig
	CORS    CORSConfig
	Log     LogConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
}

type EngineConfig struct {
	MailboxSize int `envconfig:"ENGINE_MAILBOX_SIZE" default:"256"`
	// AskTimeout bounds create/update/cancel/availabilities round trips; GetTimeout bounds lookups.
	AskTimeout time.Duration `envconfig:"ENGINE_ASK_TIMEOUT" default:"3s"`
	GetTimeout time.Duration `envconfig:"ENGINE_GET_TIMEOUT" default:"1s"`
	// AtomicReserve runs the availability check and the write under the store's booking lock.
	// false restores the plain check-then-write sequence (double bookings become possible).
	AtomicReserve bool `envconfig:"ENGINE_ATOMIC_RESERVE" default:"true"`
}

type BookingConfig struct {
	MinLeadDays      int `envconfig:"BOOKING_MIN_LEAD_DAYS" default:"1"`
	MaxAdvanceMonths int `envconfig:"BOOKING_MAX_ADVANCE_MONTHS" default:"1"`
	MaxStayDays      int `envconfig:"BOOKING_MAX_STAY_DAYS" default:"3"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type EventsConfig struct {
	// NATSURL empty disables event publishing.
	NATSURL       string        `envconfig:"NATS_URL"`
	SubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"reservations"`
	ClientName    string        `envconfig:"NATS_CLIENT_NAME" default:"room-reservation"`
	ReconnectWait time.Duration `envconfig:"NATS_RECONNECT_WAIT" default:"2s"`
}

type MetricsConfig struct {
	Enabled   bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Namespace string `envconfig:"METRICS_NAMESPACE" default:"room_reservation"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Engine.MailboxSize <= 0 {
		return fmt.Errorf("ENGINE_MAILBOX_SIZE must be positive, got %d", c.Engine.MailboxSize)
	}
	if c.Engine.AskTimeout <= 0 || c.Engine.GetTimeout <= 0 {
		return fmt.Errorf("engine timeouts must be positive")
	}
	if len(c.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOW_ORIGINS must list at least one origin")
	}
	if c.Booking.MinLeadDays < 0 || c.Booking.MaxAdvanceMonths < 0 || c.Booking.MaxStayDays < 1 {
		return fmt.Errorf("invalid booking rules: lead=%d advance=%d stay=%d",
			c.Booking.MinLeadDays, c.Booking.MaxAdvanceMonths, c.Booking.MaxStayDays)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Engine: EngineConfig{
			MailboxSize:   64,
			AskTimeout:    3 * time.Second,
			GetTimeout:    time.Second,
			AtomicReserve: true,
		},
		Booking: BookingConfig{
			MinLeadDays:      1,
			MaxAdvanceMonths: 1,
			MaxStayDays:      3,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Events: EventsConfig{
			SubjectPrefix: "reservations",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "room_reservation_test",
		},
	}
}
