package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration, read from the environment with
// sensible defaults for local development.
type Config struct {
	Port            int
	ModelPath       string
	ModelConfigPath string
	ClassesPath     string
	LogDirectory    string
	UploadDirectory string
	MaxUploadMB     int64
	ConfThreshold   float64
	IOUThreshold    float64
	InferenceSize   int
	TelegramToken   string
	TelegramChatID  int64
	StaticDirectory string
}

// Load reads configuration from the environment. A .env file is honored when
// present and silently skipped otherwise.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		ModelPath:       getEnv("MODEL_PATH", filepath.Join("models", "infra_detector.onnx")),
		ModelConfigPath: getEnv("MODEL_CONFIG_PATH", ""),
		ClassesPath:     getEnv("CLASSES_PATH", filepath.Join("models", "classes.yaml")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		UploadDirectory: getEnv("UPLOAD_DIR", os.TempDir()),
		MaxUploadMB:     getEnvAsInt64("MAX_UPLOAD_MB", 10),
		ConfThreshold:   getEnvAsFloat("CONF_THRESHOLD", 0.25),
		IOUThreshold:    getEnvAsFloat("IOU_THRESHOLD", 0.45),
		InferenceSize:   getEnvAsInt("INFERENCE_SIZE", 640),
		TelegramToken:   getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:  getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		StaticDirectory: getEnv("STATIC_DIR", "static"),
	}
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
