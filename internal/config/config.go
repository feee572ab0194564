package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all splitter settings, populated from environment variables.
// Command-line flags may override per-invocation values on top of this.
type Config struct {
	OutputDir       string
	HTTPAddr        string // empty disables the metrics endpoint
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka announcement configuration.
	KafkaBrokers       []string
	KafkaAnnounceTopic string
	AnnounceEnabled    bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	announceEnabled := os.Getenv("KAFKA_ANNOUNCE_ENABLED") == "true"

	cfg := &Config{
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", "single_TC"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAnnounceTopic: sharedcfg.EnvOrDefault("KAFKA_ANNOUNCE_TOPIC", "split-storm-tracks"),
		AnnounceEnabled:    announceEnabled,
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR must not be empty")
	}
	if cfg.AnnounceEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ANNOUNCE_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAnnounceTopic == "" {
			return nil, errors.New("KAFKA_ANNOUNCE_ENABLED is true but KAFKA_ANNOUNCE_TOPIC is empty")
		}
	}

	return cfg, nil
}
