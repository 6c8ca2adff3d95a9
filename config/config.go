package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// Identity: the only configuration the process refuses to start without.
	BotToken string `env:"API_TOKEN,required" validate:"required"`
	ChatID   int64  `env:"CHAT_ID,required"   validate:"required"`

	WeatherAPIKey string `env:"WEATHER_API_KEY"`
	CityName      string `env:"CITY_NAME" envDefault:"Seoul"`
	Timezone      string `env:"TZ_NAME"   envDefault:"Asia/Seoul"`

	TickIntervalSec    int `env:"TICK_INTERVAL_SEC"    envDefault:"20"  validate:"min=1,max=60"`
	DrainIntervalSec   int `env:"DRAIN_INTERVAL_SEC"   envDefault:"15"  validate:"min=1,max=300"`
	ScheduleRefreshSec int `env:"SCHEDULE_REFRESH_SEC" envDefault:"300" validate:"min=10"`

	// Document-database credential and per-table ids. All optional: an
	// unset id disables that feature set rather than erroring.
	NotionToken       string `env:"NOTION_TOKEN"`
	NotionCommandsDB  string `env:"NOTION_COMMANDS_DB"`
	NotionScheduleDB  string `env:"NOTION_SCHEDULE_DB"`
	NotionTemplatesDB string `env:"NOTION_TEMPLATES_DB"`
	NotionLogDB       string `env:"NOTION_LOG_DB"`
	NotionTodoDB      string `env:"NOTION_TODO_DB"`
	NotionProjectsDB  string `env:"NOTION_PROJECTS_DB"`
	NotionWebsiteDB   string `env:"NOTION_WEBSITE_DB"`
	NotionBudgetDB    string `env:"NOTION_BUDGET_DB"`
	NotionJobsDB      string `env:"NOTION_JOBS_DB"`
	NotionInspoDB     string `env:"NOTION_INSPO_DB"`
	NotionHabitsDB    string `env:"NOTION_HABITS_DB"`

	// Optional email digest channel.
	ResendAPIKey string `env:"RESEND_API_KEY"`
	ResendFrom   string `env:"RESEND_FROM"   validate:"required_with=ResendAPIKey"`
	DigestEmail  string `env:"DIGEST_EMAIL"  validate:"omitempty,email"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EmailEnabled reports whether the digest channel is fully configured.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.ResendFrom != "" && c.DigestEmail != ""
}
