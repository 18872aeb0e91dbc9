package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DISPATCH_MODE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.RunMarker != "now" {
		t.Errorf("expected run marker now, got %s", cfg.RunMarker)
	}
	if cfg.TriggerBanner != "Personal auto daily check-in every 12 AM" {
		t.Errorf("unexpected banner %q", cfg.TriggerBanner)
	}
	if cfg.CheckInCron != "0 0 * * *" {
		t.Errorf("unexpected cron %q", cfg.CheckInCron)
	}
	if cfg.DispatchMode != DispatchBackground {
		t.Errorf("expected background dispatch, got %s", cfg.DispatchMode)
	}
	if cfg.RedisAddress != "localhost:6379" {
		t.Errorf("unexpected redis address %s", cfg.RedisAddress)
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.HTTPTimeout())
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("unexpected logger defaults: %+v", cfg.Log)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK", "https://discord.com/api/webhooks/1/t")
	t.Setenv("ACCOUNT_COOKIE", "ltuid=1")
	t.Setenv("DISCORD_USER_ID", "42")
	t.Setenv("DISPATCH_MODE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CHECKIN_CRON", "off")
	t.Setenv("APP_ENV", "local")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DiscordWebhook != "https://discord.com/api/webhooks/1/t" || cfg.AccountCookie != "ltuid=1" || cfg.DiscordUserID != "42" {
		t.Errorf("secrets not loaded: %+v", cfg)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json log format, got %s", cfg.Log.Format)
	}
	if cfg.CronEnabled() {
		t.Error("expected cron to be disabled")
	}
	if !cfg.IsLocal() {
		t.Error("expected local env")
	}
	if len(cfg.Warnings()) != 0 {
		t.Errorf("expected no warnings, got %v", cfg.Warnings())
	}
}

func TestLoadConfig_InvalidDispatchMode(t *testing.T) {
	t.Setenv("DISPATCH_MODE", "carrier-pigeon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid dispatch mode")
	}
}

func TestLoadConfig_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}

func TestConfig_Warnings(t *testing.T) {
	cfg := &Config{DispatchMode: DispatchCloudTasks}
	if got := len(cfg.Warnings()); got != 4 {
		t.Errorf("expected 4 warnings, got %d: %v", got, cfg.Warnings())
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HYV_DOTENV_VAR=loaded\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("HYV_DOTENV_VAR") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if os.Getenv("HYV_DOTENV_VAR") != "loaded" {
		t.Error("expected variable from .env to be set")
	}
}

func TestLoadLocalDotEnv(t *testing.T) {
	testCases := []struct {
		name           string
		appEnv         string
		expectedLoaded bool
	}{
		{name: "Local", appEnv: "local", expectedLoaded: true},
		{name: "Production", appEnv: "production", expectedLoaded: false},
		{name: "Unset", appEnv: "", expectedLoaded: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(path, []byte("HYV_LOCAL_DOTENV_VAR=loaded\n"), 0644); err != nil {
				t.Fatalf("failed to write .env: %v", err)
			}
			t.Setenv("APP_ENV", tc.appEnv)
			t.Setenv("HYV_LOCAL_DOTENV_VAR", "")
			os.Unsetenv("HYV_LOCAL_DOTENV_VAR")

			loaded, err := LoadLocalDotEnv(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loaded != tc.expectedLoaded {
				t.Errorf("expected loaded=%v, got %v", tc.expectedLoaded, loaded)
			}
			if got := os.Getenv("HYV_LOCAL_DOTENV_VAR") == "loaded"; got != tc.expectedLoaded {
				t.Errorf("expected variable set=%v, got %v", tc.expectedLoaded, got)
			}
		})
	}
}

func TestLoadLocalDotEnv_MissingFile(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	_, err := LoadLocalDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
