package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"hirelens/resume-analyzer/internal/models"
)

type Config struct {
	Server     ServerConfig
	Analyzer   AnalyzerConfig
	Storage    StorageConfig
	Submission SubmissionConfig
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"required"`
}

type AnalyzerConfig struct {
	URL            string        `validate:"required,url"`
	Timeout        time.Duration `validate:"gt=0"`
	JobPostTimeout time.Duration `validate:"gt=0"`
}

type StorageConfig struct {
	UploadPath  string `validate:"required"`
	MaxFileSize int64  `validate:"gt=0"`
}

type SubmissionConfig struct {
	Policy string `validate:"oneof=strict permissive"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Analyzer: AnalyzerConfig{
			URL:            getEnv("ANALYZER_URL", "http://127.0.0.1:5000"),
			Timeout:        getEnvAsDuration("ANALYZER_TIMEOUT", "60s"),
			JobPostTimeout: getEnvAsDuration("JOB_POSTING_TIMEOUT", "15s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Submission: SubmissionConfig{
			Policy: getEnv("SUBMISSION_POLICY", string(models.PolicyPermissive)),
		},
	}
}

// Validate checks the loaded values against their struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) ValidationPolicy() models.ValidationPolicy {
	policy, err := models.ParseValidationPolicy(c.Submission.Policy)
	if err != nil {
		return models.PolicyPermissive
	}
	return policy
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
