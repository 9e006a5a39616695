package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/custdev-bot/internal/survey"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Ops HTTP server (health + metrics)
	OpsAddr string `env:"OPS_ADDR" envDefault:":8090"`

	// Telegram bot configuration
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Session store configuration
	StorageCfg StorageConfig `envPrefix:"STORAGE_"`

	// Google Sheets configuration
	SheetsCfg SheetsConfig `envPrefix:"SHEETS_"`

	// Survey definition (loaded from JSON file or compiled-in default)
	Survey survey.Definition

	// Path to a survey definition JSON override
	SurveyPath string `env:"SURVEY_DEFINITION_PATH"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"` // seconds
	SendAttempts       uint   `env:"SEND_ATTEMPTS" envDefault:"3"`
}

// StorageConfig selects and configures the session store backend
type StorageConfig struct {
	Driver      string        `env:"DRIVER" envDefault:"memory"` // memory | postgres
	DatabaseURL string        `env:"DATABASE_URL"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// SheetsConfig holds Google Sheets persistence configuration
type SheetsConfig struct {
	CredentialsPath string `env:"CREDENTIALS_PATH,notEmpty"`
	SpreadsheetID   string `env:"SPREADSHEET_ID,notEmpty"`
	AppendRange     string `env:"APPEND_RANGE" envDefault:"Лист1!A1"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadSurveyDefinition(cfg); err != nil {
		return nil, fmt.Errorf("load survey definition: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	switch cfg.StorageCfg.Driver {
	case "memory":
	case "postgres":
		if cfg.StorageCfg.DatabaseURL == "" {
			errors = append(errors, "STORAGE_DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("STORAGE_DRIVER must be memory or postgres, got %q", cfg.StorageCfg.Driver))
	}

	if cfg.StorageCfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("STORAGE_SESSION_TTL must be at least 1m, got %s", cfg.StorageCfg.SessionTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

// loadSurveyDefinition fills cfg.Survey from the override file when one is
// configured and present, falling back to the compiled-in definition.
func loadSurveyDefinition(cfg *Config) error {
	if cfg.SurveyPath == "" {
		cfg.Survey = DefaultSurvey()
		return nil
	}

	if _, err := os.Stat(cfg.SurveyPath); os.IsNotExist(err) {
		fmt.Printf("Warning: survey definition not found at %s, using built-in survey\n", cfg.SurveyPath)
		cfg.Survey = DefaultSurvey()
		return nil
	}

	data, err := os.ReadFile(cfg.SurveyPath)
	if err != nil {
		return fmt.Errorf("read survey definition file: %w", err)
	}

	var def survey.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parse survey definition JSON: %w", err)
	}

	if len(def.Questions) == 0 || len(def.Sequence) == 0 {
		return fmt.Errorf("survey definition file contains no questions: %s", cfg.SurveyPath)
	}

	cfg.Survey = def

	fmt.Printf("Loaded survey definition (%d questions) from %s\n", len(def.Questions), cfg.SurveyPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
