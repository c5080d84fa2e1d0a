package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	OCR        OCRConfig
	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig
	Extraction ExtractionConfig
	Output     OutputConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// OCRConfig holds OCR.space-related configuration
type OCRConfig struct {
	APIKey   string
	APIURL   string
	Language string
	Engine   int
	Timeout  time.Duration
}

// OpenRouterConfig holds OpenRouter-related configuration
type OpenRouterConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Referer     string
	Timeout     time.Duration
}

// GeminiConfig holds Gemini-related configuration
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

// ExtractionConfig controls the strategy orchestrator
type ExtractionConfig struct {
	StrategyTimeout time.Duration
}

// OutputConfig holds invoice output configuration
type OutputConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "invoice-engine.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			APIKey:   getEnv("OCR_SPACE_API_KEY", ""),
			APIURL:   getEnv("OCR_SPACE_API_URL", "https://api.ocr.space/parse/image"),
			Language: getEnv("OCR_LANGUAGE", "eng"),
			Engine:   getEnvAsInt("OCR_ENGINE", 2),
			Timeout:  getEnvAsDuration("OCR_TIMEOUT", 30*time.Second),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:      getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:       getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct"),
			Temperature: getEnvAsFloat32("OPENROUTER_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENROUTER_MAX_TOKENS", 1000),
			Referer:     getEnv("OPENROUTER_REFERER", ""),
			Timeout:     getEnvAsDuration("OPENROUTER_TIMEOUT", 30*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.1),
		},
		Extraction: ExtractionConfig{
			StrategyTimeout: getEnvAsDuration("EXTRACTION_STRATEGY_TIMEOUT", 45*time.Second),
		},
		Output: OutputConfig{
			Dir: getEnv("INVOICE_OUTPUT_DIR", "./invoices"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration. The pattern extractor needs no
// credentials, so only the database DSN and output dir are hard requirements.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Output.Dir == "" {
		return NewAppError("CONFIG_ERROR", "INVOICE_OUTPUT_DIR is required", ErrInvalidInput)
	}
	return nil
}
