package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/ubergonmx/hyv-auto-daily/internal/logger"
)

const (
	DispatchBackground = "background"
	DispatchRedis      = "redis"
	DispatchCloudTasks = "cloudtasks"

	// CronDisabled turns off the in-process timer.
	CronDisabled = "off"

	envLocal = "local"
)

type Config struct {
	Env  string `env:"APP_ENV"`
	Port string `env:"PORT" envDefault:"8080"`

	// Secrets, passed through as opaque strings
	DiscordWebhook string `env:"DISCORD_WEBHOOK"`
	AccountCookie  string `env:"ACCOUNT_COOKIE"`
	DiscordUserID  string `env:"DISCORD_USER_ID"`

	RunMarker          string `env:"RUN_MARKER" envDefault:"now"`
	TriggerBanner      string `env:"TRIGGER_BANNER" envDefault:"Personal auto daily check-in every 12 AM"`
	CheckInCron        string `env:"CHECKIN_CRON" envDefault:"0 0 * * *"`
	CheckInTimezone    string `env:"CHECKIN_TIMEZONE" envDefault:"UTC"`
	DispatchMode       string `env:"DISPATCH_MODE" envDefault:"background"`
	Notifier           string `env:"NOTIFIER" envDefault:"webhook"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`
	HoyolabBaseURL     string `env:"HOYOLAB_BASE_URL"`

	// Cloud Tasks configuration (cloudtasks dispatch)
	ProjectID         string `env:"GCP_PROJECT_ID"`
	QueueID           string `env:"CLOUD_TASKS_QUEUE"`
	LocationID        string `env:"GCP_LOCATION"`
	UseEmulator       bool   `env:"USE_TASKS_EMULATOR"`
	CloudTasksAddress string `env:"CLOUD_TASKS_EMULATOR_HOST"`
	HandlerAddress    string `env:"HANDLER_HOST"`

	// Redis configuration (redis dispatch and worker)
	RedisAddress  string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	Log logger.Config `envPrefix:"LOG_"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.DispatchMode {
	case DispatchBackground, DispatchRedis, DispatchCloudTasks:
	default:
		return nil, fmt.Errorf("invalid DISPATCH_MODE %q", cfg.DispatchMode)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 30
	}

	return &cfg, nil
}

// LoadDotEnv loads a .env file into the environment if one exists.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// LoadLocalDotEnv loads .env only when APP_ENV=local is already set in the
// process environment. It reports whether a file was loaded.
func LoadLocalDotEnv(paths ...string) (bool, error) {
	if os.Getenv("APP_ENV") != envLocal {
		return false, nil
	}
	if err := LoadDotEnv(paths...); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// IsLocal reports whether the process runs against local emulators.
func (c *Config) IsLocal() bool {
	return c.Env == envLocal
}

// CronEnabled reports whether the in-process timer should be started.
func (c *Config) CronEnabled() bool {
	return c.CheckInCron != "" && c.CheckInCron != CronDisabled
}

// Warnings lists configuration problems that are logged but not fatal.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.DiscordWebhook == "" {
		warnings = append(warnings, "DISCORD_WEBHOOK is not set, notifications will fail")
	}
	if c.AccountCookie == "" {
		warnings = append(warnings, "ACCOUNT_COOKIE is not set, check-ins will fail")
	}
	if c.DiscordUserID == "" {
		warnings = append(warnings, "DISCORD_USER_ID is not set, mentions will be empty")
	}
	if c.DispatchMode == DispatchCloudTasks && c.HandlerAddress == "" {
		warnings = append(warnings, "HANDLER_HOST is not set, Cloud Tasks have no target")
	}
	return warnings
}
