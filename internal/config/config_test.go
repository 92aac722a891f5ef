package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err, "A missing config file is not an error")

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "./badger_data", cfg.BadgerDBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 60*time.Second, cfg.SummaryTimeout)
	assert.Equal(t, time.Second, cfg.SummaryRateInterval)
	assert.Equal(t, 5*time.Minute, cfg.BadgerGCInterval)
	assert.Empty(t, cfg.TelegramBotToken, "The bot is optional")
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("JWT_SECRET: from-file\nSERVER_PORT: 9090\nLLM_MODEL: mistral\nSUMMARY_TIMEOUT: 5s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("LLM_MODEL", "qwen2")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "qwen2", cfg.LLMModel, "Environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.SummaryTimeout)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("SERVER_PORT: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
