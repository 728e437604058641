package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/interview-assessor/internal/logger"
	"alfredoptarigan/interview-assessor/internal/services"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port             string
	Env              string
	CORSAllowOrigins string
}

type LLMConfig struct {
	Provider     string
	APIKey       string
	GeminiAPIKey string
	BaseURL      string
	Model        string
	Timeout      time.Duration
}

type StorageConfig struct {
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "8000"),
			Env:              getEnv("ENV", "development"),
			CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:8080"),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(getEnv("LLM_PROVIDER", services.ProviderOpenRouter)),
			APIKey:       getEnv("API_KEY", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			BaseURL:      getEnv("LLM_BASE_URL", ""),
			Model:        getEnv("LLM_MODEL", ""),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", "30s"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

// GenerationConfig returns the settings the generation client is built from.
// API_KEY wins; GEMINI_API_KEY is only consulted for the gemini provider.
func (c *Config) GenerationConfig() services.GenerationConfig {
	apiKey := c.LLM.APIKey
	if apiKey == "" && c.LLM.Provider == services.ProviderGemini {
		apiKey = c.LLM.GeminiAPIKey
	}

	return services.GenerationConfig{
		Provider: c.LLM.Provider,
		APIKey:   apiKey,
		BaseURL:  c.LLM.BaseURL,
		Model:    c.LLM.Model,
		Timeout:  c.LLM.Timeout,
	}
}

// LoggerOptions maps LOG_JSON/LOG_DEBUG onto logger options for the named binary.
func (c LogConfig) LoggerOptions(service, output string) logger.Options {
	return logger.Options{
		JSON:    c.JSON,
		Debug:   c.Debug,
		Output:  output,
		Service: service,
	}
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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
