// Package kafka_config holds the producer settings for reservation events.
package kafka_config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"spacebook/pkg/logger"
)

var (
	compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	ackLevels    = []int{-1, 0, 1}
)

type Config struct {
	Brokers []string

	MaxAttempts  int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int    // -1 = all in-sync replicas, 0 = none, 1 = leader only
	Compression  string // one of compressions
	Async        bool

	EnableMiddleware bool
}

// Load reads the producer settings from the environment. Unlike the service config,
// a malformed value is an error here rather than a silent fallback to the default.
func Load() (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		Brokers: splitBrokers(env.text(EnvKafkaBrokers, DefaultKafkaBrokers)),

		MaxAttempts:  env.number(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
		BatchTimeout: env.duration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
		WriteTimeout: env.duration(EnvKafkaProducerWriteTimeout, DefaultProducerWriteTimeout),
		RequiredAcks: env.number(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
		Compression:  strings.ToLower(env.text(EnvKafkaProducerCompression, DefaultProducerCompression)),
		Async:        env.flag(EnvKafkaProducerAsync, DefaultProducerAsync),

		EnableMiddleware: env.flag(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	problems := append(env.problems, cfg.problems()...)
	if len(problems) > 0 {
		return nil, formatProblems(problems)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if problems := cfg.problems(); len(problems) > 0 {
		return formatProblems(problems)
	}
	return nil
}

func (cfg *Config) problems() []string {
	var problems []string

	if len(cfg.Brokers) == 0 {
		problems = append(problems, "At least one Kafka broker is required")
	}
	if cfg.MaxAttempts <= 0 {
		problems = append(problems, fmt.Sprintf("MaxAttempts must be positive, got: %d", cfg.MaxAttempts))
	}
	if cfg.BatchTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("BatchTimeout must be positive, got: %s", cfg.BatchTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if !slices.Contains(compressions, cfg.Compression) {
		problems = append(problems, fmt.Sprintf("Compression must be one of %v, got: %s", compressions, cfg.Compression))
	}
	if !slices.Contains(ackLevels, cfg.RequiredAcks) {
		problems = append(problems, fmt.Sprintf("RequiredAcks must be one of %v, got: %d", ackLevels, cfg.RequiredAcks))
	}

	return problems
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"max_attempts", cfg.MaxAttempts,
		"batch_timeout", cfg.BatchTimeout,
		"write_timeout", cfg.WriteTimeout,
		"required_acks", cfg.RequiredAcks,
		"compression", cfg.Compression,
		"async", cfg.Async,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func formatProblems(problems []string) error {
	var b strings.Builder
	b.WriteString("Kafka configuration validation failed:\n")
	for i, p := range problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	return fmt.Errorf("%s", b.String())
}

func splitBrokers(list string) []string {
	var brokers []string
	for _, broker := range strings.Split(list, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// envReader reads typed environment values and remembers the ones it could not parse.
type envReader struct {
	problems []string
}

func (e *envReader) text(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) number(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be an integer, got: %s", key, value))
		return fallback
	}
	return n
}

func (e *envReader) flag(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be a boolean, got: %s", key, value))
		return fallback
	}
	return b
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be a duration, got: %s", key, value))
		return fallback
	}
	return d
}
