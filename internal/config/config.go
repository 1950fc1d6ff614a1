package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`  // current application environment (local, dev, prod etc)
	TelegramAPIToken string `mapstructure:"-"`    // Telegram API token loaded from environment
	Bank             Bank   `mapstructure:"bank"` // question bank configuration section
	Quiz             Quiz   `mapstructure:"quiz"` // quiz session configuration section
}

// Bank contains question-bank resource parameters.
type Bank struct {
	URL             string        `mapstructure:"url"`              // location of the pipe-delimited bank resource
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`    // HTTP timeout for a single bank fetch
	RefreshSchedule string        `mapstructure:"refresh_schedule"` // cron spec for periodic bank reloads
}

// Quiz contains session parameters.
type Quiz struct {
	QuestionCount int           `mapstructure:"question_count"` // questions drawn per session
	TimeBudget    time.Duration `mapstructure:"time_budget"`    // countdown for a whole session
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("bank.fetch_timeout", "15s")
	v.SetDefault("bank.refresh_schedule", "0 * * * *")
	v.SetDefault("quiz.question_count", 10)
	v.SetDefault("quiz.time_budget", "90s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("bank.url", "BANK_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if cfg.Bank.URL == "" {
		return nil, fmt.Errorf("bank.url is not configured: %w", ErrMissingEnvironmentVariables)
	}

	if cfg.Quiz.QuestionCount <= 0 {
		return nil, fmt.Errorf("quiz.question_count must be positive, got %d", cfg.Quiz.QuestionCount)
	}

	return &cfg, nil
}
