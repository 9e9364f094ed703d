// Package config loads service settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	Host string
	Port string

	AllowedOrigins []string

	ModelPath       string
	ONNXLibraryPath string
	PoolSize        int

	ConfidenceThreshold float64
	MaxUploadBytes      int64

	Debug bool
}

const (
	defaultAppName    = "Japanese Garbage Classifier API"
	defaultAppVersion = "1.0.0"
	defaultOrigins    = "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000"
	defaultModelPath  = "models/garbage_classifier_final.onnx"

	DefaultConfidenceThreshold = 0.70
	DefaultMaxUploadBytes      = 10 << 20 // 10 MiB
)

// Load reads settings from the environment. Missing values fall back
// to defaults; malformed numeric values are logged and defaulted.
func Load() *Config {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	return &Config{
		AppName:     getEnv("APP_NAME", defaultAppName),
		AppVersion:  getEnv("APP_VERSION", defaultAppVersion),
		Environment: getEnv("ENVIRONMENT", "development"),

		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "8000"),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", defaultOrigins)),

		ModelPath:       getEnv("MODEL_PATH", defaultModelPath),
		ONNXLibraryPath: os.Getenv("ONNXRUNTIME_LIB_PATH"),
		PoolSize:        getInt("POOL_SIZE", 4),

		ConfidenceThreshold: getFloat("CONFIDENCE_THRESHOLD", DefaultConfidenceThreshold),
		MaxUploadBytes:      getInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Development reports whether detailed error messages may be echoed to
// callers.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
