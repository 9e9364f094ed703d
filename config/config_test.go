package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "Japanese Garbage Classifier API", cfg.AppName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 0.70, cfg.ConfidenceThreshold)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Len(t, cfg.AllowedOrigins, 3)
	assert.True(t, cfg.Development())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.85")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("POOL_SIZE", "8")
	t.Setenv("ALLOWED_ORIGINS", "https://example.jp, https://app.example.jp")
	t.Setenv("MODEL_PATH", "/opt/models/classifier.onnx")

	cfg := Load()

	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.Development())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 0.85, cfg.ConfidenceThreshold)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, []string{"https://example.jp", "https://app.example.jp"}, cfg.AllowedOrigins)
	assert.Equal(t, "/opt/models/classifier.onnx", cfg.ModelPath)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "not-a-number")
	t.Setenv("MAX_UPLOAD_BYTES", "ten megabytes")
	t.Setenv("POOL_SIZE", "many")

	cfg := Load()

	assert.Equal(t, 0.70, cfg.ConfidenceThreshold)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 4, cfg.PoolSize)
}
