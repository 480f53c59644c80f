package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "arith-1", cfg.WorkerID)
	assert.Equal(t, "arith.work", cfg.StreamKey)
	assert.Equal(t, "arith.evaluated", cfg.ResultStream)
	assert.Equal(t, "native", cfg.EvalMode)
	assert.Equal(t, 10000, cfg.MaxNodes)
	assert.Equal(t, 24*time.Hour, cfg.ResultTTL)
	assert.Equal(t, time.Second, cfg.BlockTime)
	assert.Equal(t, "{{{expression}}} = {{value}}", cfg.SummaryTemplate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WORKER_ID", "arith-7")
	t.Setenv("EVAL_MODE", "verify")
	t.Setenv("MAX_NODES", "64")
	t.Setenv("RESULT_TTL", "0s")
	t.Setenv("REDIS_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "arith-7", cfg.WorkerID)
	assert.Equal(t, "verify", cfg.EvalMode)
	assert.Equal(t, 64, cfg.MaxNodes)
	assert.Equal(t, time.Duration(0), cfg.ResultTTL)
	assert.NotContains(t, cfg.String(), "secret")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "eval mode", key: "EVAL_MODE", value: "llm"},
		{name: "max nodes", key: "MAX_NODES", value: "0"},
		{name: "result ttl", key: "RESULT_TTL", value: "-1s"},
		{name: "log level", key: "LOG_LEVEL", value: "trace"},
		{name: "health port", key: "HEALTH_PORT", value: "70000"},
		{name: "block time", key: "BLOCK_TIME", value: "0s"},
		{name: "not a number", key: "REDIS_DB", value: "zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
