package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vladimiradmaev/pressure-helper/internal/logger"
)

type Config struct {
	TelegramToken string `validate:"required"`
	Timezone      string `validate:"required"`
	AI            AIConfig
	Cache         CacheConfig
	DB            DBConfig
	Report        ReportConfig
	Logger        LoggerConfig
}

type AIConfig struct {
	Provider      string        `validate:"oneof=openai gemini"`
	OpenAIAPIKey  string        `validate:"required_if=Provider openai"`
	OpenAIModel   string        `validate:"required_if=Provider openai"`
	OpenAIBaseURL string        `validate:"omitempty,url"`
	GeminiAPIKey  string        `validate:"required_if=Provider gemini"`
	GeminiModel   string        `validate:"required_if=Provider gemini"`
	Timeout       time.Duration `validate:"gt=0"`
}

type CacheConfig struct {
	Backend       string `validate:"oneof=memory redis"`
	ExpirySeconds int    `validate:"gt=0"`
	RedisHost     string `validate:"required_if=Backend redis"`
	RedisPort     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
}

// Expiry returns the cache lifetime as a duration
func (c CacheConfig) Expiry() time.Duration {
	return time.Duration(c.ExpirySeconds) * time.Second
}

type DBConfig struct {
	Driver     string `validate:"oneof=postgres sqlite"`
	Host       string `validate:"required_if=Driver postgres"`
	Port       string `validate:"required_if=Driver postgres"`
	User       string `validate:"required_if=Driver postgres"`
	Password   string
	DBName     string `validate:"required_if=Driver postgres"`
	SQLitePath string `validate:"required_if=Driver sqlite"`
}

type ReportConfig struct {
	Dir           string
	IncludeAdvice bool
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string `validate:"oneof=json text"`
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getBoolOrDefault(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	expiry, err := getIntOrDefault("CACHE_EXPIRY", 3600)
	if err != nil {
		return nil, err
	}
	redisDB, err := getIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	includeAdvice, err := getBoolOrDefault("REPORT_INCLUDE_ADVICE", true)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnvOrDefault("AI_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("AI_TIMEOUT must be a duration: %w", err)
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Timezone:      getEnvOrDefault("TIMEZONE", "Local"),
		AI: AIConfig{
			Provider:      strings.ToLower(getEnvOrDefault("AI_PROVIDER", "openai")),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout:       timeout,
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(getEnvOrDefault("CACHE_BACKEND", "memory")),
			ExpirySeconds: expiry,
			RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       redisDB,
		},
		DB: DBConfig{
			Driver:     strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			User:       getEnvOrDefault("DB_USER", "postgres"),
			Password:   getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:     getEnvOrDefault("DB_NAME", "pressure_helper"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "blood_pressure.db"),
		},
		Report: ReportConfig{
			Dir:           getEnvOrDefault("REPORT_DIR", os.TempDir()),
			IncludeAdvice: includeAdvice,
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and the timezone name
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
