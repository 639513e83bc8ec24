package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App
		HTTP
		Global
		Database
		UI
		Audit
		Tasks
	}

	App struct {
		Name    string
		Version string
		Debug   bool
	}
	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path       string
		SeedSample bool
	}
	UI struct {
		StaticPath string
	}
	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// LoadEnvFile copies variables from a dotenv file into the process
// environment. Variables already set are left alone. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err == nil {
		log.Printf("Loaded environment from %s", path)
	}
	return err
}

func NewConfig() *Config {
	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		log.Printf("Warning: failed to load %s: %v", DefaultEnvFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_name", "Bookshelf API")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("debug", false)
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("seed_sample_data", true)
	v.SetDefault("static_path", "./static")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", DefaultAuditCleanupSchedule)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		App: App{
			Name:    v.GetString("APP_NAME"),
			Version: v.GetString("APP_VERSION"),
			Debug:   v.GetBool("DEBUG"),
		},
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:       v.GetString("DATABASE_PATH"),
			SeedSample: v.GetBool("SEED_SAMPLE_DATA"),
		},
		UI: UI{
			StaticPath: v.GetString("STATIC_PATH"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
