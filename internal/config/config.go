// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server configures cmd/gymmanager.
type Server struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"fitnexus"`
	SchedulePath    string        `env:"SCHEDULE_PATH"`
	MembersPath     string        `env:"MEMBERS_PATH"`
	WriteRateLimit  float64       `env:"WRITE_RATE_LIMIT" envDefault:"50"`
	WriteRateBurst  int           `env:"WRITE_RATE_BURST" envDefault:"100"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Telemetry       Telemetry
}

// Telemetry configures trace and metric export. Export is off unless an
// endpoint is set.
type Telemetry struct {
	Endpoint       string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Enabled        bool          `env:"OTEL_ENABLED" envDefault:"true"`
	MetricInterval time.Duration `env:"OTEL_METRIC_EXPORT_INTERVAL" envDefault:"60s"`
}

// Loader configures cmd/loader.
type Loader struct {
	ServerURL    string        `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	SchedulePath string        `env:"SCHEDULE_PATH"`
	MembersPath  string        `env:"MEMBERS_PATH"`
	Timeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
