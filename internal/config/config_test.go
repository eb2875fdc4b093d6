package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "recall-documents", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECALL_PORT", "9090")
	t.Setenv("RECALL_DEBUG", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
}

func TestValidate_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("RECALL_STORE_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RECALL_DATABASE_URL", "postgres://localhost/recall")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
}

func TestValidate_RedisRequiresURL(t *testing.T) {
	t.Setenv("RECALL_STORE_BACKEND", "redis")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RECALL_REDIS_URL", "redis://localhost:6379")

	_, err = Load()
	assert.NoError(t, err)
}

func TestValidate_S3RequiresCredentials(t *testing.T) {
	t.Setenv("RECALL_STORE_BACKEND", "s3")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RECALL_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("RECALL_S3_ACCESS_KEY_ID", "key")
	t.Setenv("RECALL_S3_SECRET_ACCESS_KEY", "secret")

	_, err = Load()
	assert.NoError(t, err)
}

func TestValidate_UnknownBackend(t *testing.T) {
	t.Setenv("RECALL_STORE_BACKEND", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}
