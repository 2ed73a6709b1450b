package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPServerAddress    string   `mapstructure:"HTTP_SERVER_ADDRESS" validate:"required"`
	MetricsServerAddress string   `mapstructure:"METRICS_SERVER_ADDRESS" validate:"required"`
	LogDevelopment       bool     `mapstructure:"LOG_DEVELOPMENT"`
	DefaultAccountTier   string   `mapstructure:"DEFAULT_ACCOUNT_TIER" validate:"oneof=free premium"`
	BatchConcurrency     int      `mapstructure:"BATCH_CONCURRENCY" validate:"min=1"`
	MaxBatchSize         int      `mapstructure:"MAX_BATCH_SIZE" validate:"min=1"`
	KafkaBrokers         []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic           string   `mapstructure:"KAFKA_TOPIC"`
	KafkaGroupID         string   `mapstructure:"KAFKA_GROUP_ID"`
	KafkaValidTopic      string   `mapstructure:"KAFKA_VALID_TOPIC"`
	KafkaDLQTopic        string   `mapstructure:"KAFKA_DLQ_TOPIC"`
	MaxRetries           int      `mapstructure:"MAX_RETRIES" validate:"min=1"`
	WorkerPoolSize       int      `mapstructure:"WORKER_POOL_SIZE" validate:"min=1"`
	BackoffBaseDelay     int      `mapstructure:"BACKOFF_BASE_DELAY_MS" validate:"min=0"`
	OtelEndpoint         string   `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure         bool     `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelServiceName      string   `mapstructure:"OTEL_SERVICE_NAME" validate:"required"`
}

// QueueValidatorConfig is the subset of Config the queue validator needs.
type QueueValidatorConfig struct {
	MaxRetries       int
	WorkerPoolSize   int
	BackoffBaseDelay int
}

var (
	cfg *Config

	envKeys = []string{
		"HTTP_SERVER_ADDRESS",
		"METRICS_SERVER_ADDRESS",
		"LOG_DEVELOPMENT",
		"DEFAULT_ACCOUNT_TIER",
		"BATCH_CONCURRENCY",
		"MAX_BATCH_SIZE",
		"KAFKA_BROKERS",
		"KAFKA_TOPIC",
		"KAFKA_GROUP_ID",
		"KAFKA_VALID_TOPIC",
		"KAFKA_DLQ_TOPIC",
		"MAX_RETRIES",
		"WORKER_POOL_SIZE",
		"BACKOFF_BASE_DELAY_MS",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME",
	}
)

func NewConfig(path string) (*Config, error) {
	relativeUrl, err := GetBasePath(path)
	if err != nil {
		return nil, fmt.Errorf("error getting base path: %w", err)
	}

	vip := viper.New()
	vip.SetConfigType("env")
	vip.SetConfigName(".env")
	vip.AddConfigPath(relativeUrl)
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	setDefaults(vip)
	for _, key := range envKeys {
		if err := vip.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env %s: %w", key, err)
		}
	}

	loaded := &Config{}
	if err := vip.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := Validate(loaded); err != nil {
		return nil, err
	}

	cfg = loaded
	return cfg, nil
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("HTTP_SERVER_ADDRESS", ":8080")
	vip.SetDefault("METRICS_SERVER_ADDRESS", ":9090")
	vip.SetDefault("DEFAULT_ACCOUNT_TIER", "free")
	vip.SetDefault("BATCH_CONCURRENCY", 8)
	vip.SetDefault("MAX_BATCH_SIZE", 500)
	vip.SetDefault("KAFKA_TOPIC", "notification-payloads")
	vip.SetDefault("KAFKA_GROUP_ID", "notification-validator")
	vip.SetDefault("KAFKA_VALID_TOPIC", "notification-payloads-valid")
	vip.SetDefault("KAFKA_DLQ_TOPIC", "notification-payloads-dlq")
	vip.SetDefault("MAX_RETRIES", 3)
	vip.SetDefault("WORKER_POOL_SIZE", 10)
	vip.SetDefault("BACKOFF_BASE_DELAY_MS", 200)
	vip.SetDefault("OTEL_SERVICE_NAME", "notification-validator")
	vip.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
}

// Validate checks the struct tags of a loaded configuration.
func Validate(c *Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func GetBasePath(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return filepath.Join(cwd, path), nil
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "", errors.New("go.mod not found")
		}
		cwd = parent
	}
}

func GetConfig() *Config {
	return cfg
}

func SetConfig(newCfg *Config) {
	cfg = newCfg
}

// SetTestConfig allows tests to set the global config variable directly.
func SetTestConfig(testCfg *Config) {
	cfg = testCfg
}

func GetQueueValidatorConfig() *QueueValidatorConfig {
	return &QueueValidatorConfig{
		MaxRetries:       cfg.MaxRetries,
		WorkerPoolSize:   cfg.WorkerPoolSize,
		BackoffBaseDelay: cfg.BackoffBaseDelay,
	}
}
