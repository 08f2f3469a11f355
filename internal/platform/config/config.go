// Package config loads astrotrack settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `env:"ASTROTRACK_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// DatabaseConfig selects the personnel store. URL is ignored for the memory
// driver.
type DatabaseConfig struct {
	Driver          string        `env:"DATABASE_DRIVER" envDefault:"memory"`
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	TxTimeout       time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
	TxMaxRetries    int           `env:"TX_MAX_RETRIES" envDefault:"3"`
}

// RedisConfig configures the optional duty history cache. An empty URL
// disables it.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	HistoryTTL   time.Duration `env:"HISTORY_CACHE_TTL" envDefault:"5m"`
}

// KafkaConfig configures duty event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers         []string `env:"KAFKA_BROKERS" envSeparator:","`
	DutyTopic       string   `env:"KAFKA_DUTY_TOPIC" envDefault:"astrotrack.duty.assigned"`
	ClientID        string   `env:"KAFKA_CLIENT_ID" envDefault:"astrotrack"`
	TopicPartitions int32    `env:"KAFKA_TOPIC_PARTITIONS" envDefault:"3"`
	TopicReplicas   int16    `env:"KAFKA_TOPIC_REPLICAS" envDefault:"1"`
	// Consecutive publish failures that open the circuit, and the wait
	// between probes once open.
	BreakerThreshold int           `env:"KAFKA_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"KAFKA_BREAKER_COOLDOWN" envDefault:"30s"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv parses and validates the process configuration.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Database.URL) == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.TxMaxRetries < 0 {
		return fmt.Errorf("TX_MAX_RETRIES must not be negative")
	}
	if len(c.Kafka.Brokers) > 0 && strings.TrimSpace(c.Kafka.DutyTopic) == "" {
		return fmt.Errorf("KAFKA_DUTY_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}
