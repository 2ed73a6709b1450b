package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	cfg, err := NewConfig(".")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPServerAddress)
	assert.Equal(t, "free", cfg.DefaultAccountTier)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "notification-payloads-valid", cfg.KafkaValidTopic)
	assert.False(t, cfg.OtelInsecure)
	assert.Same(t, cfg, GetConfig())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	t.Setenv("DEFAULT_ACCOUNT_TIER", "premium")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("WORKER_POOL_SIZE", "4")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg, err := NewConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "premium", cfg.DefaultAccountTier)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.WorkerPoolSize)
	assert.True(t, cfg.OtelInsecure)

	qc := GetQueueValidatorConfig()
	assert.Equal(t, 4, qc.WorkerPoolSize)
}

func TestNewConfig_RejectsInvalidTier(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })
	t.Setenv("DEFAULT_ACCOUNT_TIER", "gold")

	cfg, err := NewConfig(".")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DefaultAccountTier")
}

func TestValidate(t *testing.T) {
	valid := Config{
		HTTPServerAddress:    ":8080",
		MetricsServerAddress: ":9090",
		DefaultAccountTier:   "free",
		BatchConcurrency:     1,
		MaxBatchSize:         1,
		MaxRetries:           1,
		WorkerPoolSize:       1,
		OtelServiceName:      "svc",
	}
	assert.NoError(t, Validate(&valid))

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "zero workers", mutate: func(c *Config) { c.WorkerPoolSize = 0 }, field: "WorkerPoolSize"},
		{name: "zero batch", mutate: func(c *Config) { c.MaxBatchSize = 0 }, field: "MaxBatchSize"},
		{name: "no http address", mutate: func(c *Config) { c.HTTPServerAddress = "" }, field: "HTTPServerAddress"},
		{name: "negative backoff", mutate: func(c *Config) { c.BackoffBaseDelay = -1 }, field: "BackoffBaseDelay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := Validate(&c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGetBasePath(t *testing.T) {
	path, err := GetBasePath("configs")
	require.NoError(t, err)
	assert.Contains(t, path, "configs")
}
