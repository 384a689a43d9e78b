package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AnalyticsConfig struct {
	// EventRetentionDays is how long behavior events are kept before the
	// cleanup job deletes them.
	EventRetentionDays int `mapstructure:"event_retention_days"`
	// StaleScoreMinutes is the age after which a lead score is considered
	// stale and eligible for batch recalculation.
	StaleScoreMinutes int `mapstructure:"stale_score_minutes"`
	// DedupWindowSeconds is the default trailing window for event
	// deduplication when the caller supplies no idempotency key.
	DedupWindowSeconds int `mapstructure:"dedup_window_seconds"`
}

type SchedulerConfig struct {
	// Backend selects the batch driver: "ticker" (in-process) or "temporal".
	Backend               string `mapstructure:"backend"`
	RecalcIntervalMinutes int    `mapstructure:"recalc_interval_minutes"`
	SnapshotIntervalHours int    `mapstructure:"snapshot_interval_hours"`
	CleanupIntervalHours  int    `mapstructure:"cleanup_interval_hours"`
}

type TemporalConfig struct {
	Address   string `mapstructure:"address"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
}

// LoadConfig reads config.yaml from the given path (and the working
// directory), applies APP_* environment overrides, and fills in defaults for
// anything left unset.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("scheduler.backend", "SCHEDULER_BACKEND")
	viper.BindEnv("temporal.address", "TEMPORAL_ADDRESS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		// Missing file is fine: environment variables and defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling config: %w", err)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Analytics.EventRetentionDays <= 0 {
		cfg.Analytics.EventRetentionDays = DefaultEventRetentionDays
	}
	if cfg.Analytics.StaleScoreMinutes <= 0 {
		cfg.Analytics.StaleScoreMinutes = DefaultStaleScoreMinutes
	}
	if cfg.Analytics.DedupWindowSeconds <= 0 {
		cfg.Analytics.DedupWindowSeconds = DefaultDedupWindowSeconds
	}
	if cfg.Scheduler.Backend == "" {
		cfg.Scheduler.Backend = BackendTicker
	}
	if cfg.Scheduler.RecalcIntervalMinutes <= 0 {
		cfg.Scheduler.RecalcIntervalMinutes = DefaultRecalcIntervalMinutes
	}
	if cfg.Scheduler.SnapshotIntervalHours <= 0 {
		cfg.Scheduler.SnapshotIntervalHours = DefaultSnapshotIntervalHours
	}
	if cfg.Scheduler.CleanupIntervalHours <= 0 {
		cfg.Scheduler.CleanupIntervalHours = DefaultCleanupIntervalHours
	}
	if cfg.Temporal.Namespace == "" {
		cfg.Temporal.Namespace = DefaultTemporalNamespace
	}
	if cfg.Temporal.TaskQueue == "" {
		cfg.Temporal.TaskQueue = DefaultTemporalTaskQueue
	}

	return &cfg, nil
}
