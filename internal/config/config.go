package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the arithmetic worker
type Config struct {
	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"arith-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"arith.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"arith-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"arith.evaluated"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`
	MaxRetries    int           `env:"MAX_RETRIES" envDefault:"3"`

	// Evaluation configuration
	EvalMode        string        `env:"EVAL_MODE" envDefault:"native"`
	MaxNodes        int           `env:"MAX_NODES" envDefault:"10000"`
	ResultTTL       time.Duration `env:"RESULT_TTL" envDefault:"24h"`
	SummaryTemplate string        `env:"SUMMARY_TEMPLATE" envDefault:"{{{expression}}} = {{value}}"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8083"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.StreamKey == "" {
		return fmt.Errorf("STREAM_KEY is required")
	}

	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}

	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("BLOCK_TIME must be positive")
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must be non-negative")
	}

	if !isValidEvalMode(c.EvalMode) {
		return fmt.Errorf("EVAL_MODE must be one of: native, cel, verify")
	}

	if c.MaxNodes <= 0 {
		return fmt.Errorf("MAX_NODES must be positive")
	}

	// RESULT_TTL of zero keeps results forever
	if c.ResultTTL < 0 {
		return fmt.Errorf("RESULT_TTL must be non-negative")
	}

	if c.SummaryTemplate == "" {
		return fmt.Errorf("SUMMARY_TEMPLATE is required")
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// isValidEvalMode checks if the evaluation mode is known
func isValidEvalMode(mode string) bool {
	switch mode {
	case "native", "cel", "verify":
		return true
	}
	return false
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, "+
			"ResultStream=%s, EvalMode=%s, MaxNodes=%d, ResultTTL=%s, HealthPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.EvalMode,
		c.MaxNodes,
		c.ResultTTL,
		c.HealthPort,
		c.LogLevel,
	)
}
