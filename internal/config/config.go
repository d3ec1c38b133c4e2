// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Cloud Storage Configuration
	StorageBucket string `mapstructure:"STORAGE_BUCKET"`

	// Firestore Collections
	UsersCollection       string `mapstructure:"USERS_COLLECTION"`
	LegacyUsersCollection string `mapstructure:"LEGACY_USERS_COLLECTION"`
	ChallengesCollection  string `mapstructure:"CHALLENGES_COLLECTION"`
	SubmissionsCollection string `mapstructure:"SUBMISSIONS_COLLECTION"`

	// Credential Cache (session continuity between launches)
	SessionCachePath string `mapstructure:"SESSION_CACHE_PATH"`

	// Cron Jobs
	OrphanSweepSchedule   string `mapstructure:"ORPHAN_SWEEP_SCHEDULE"`
	OrphanSweepGraceHours int    `mapstructure:"ORPHAN_SWEEP_GRACE_HOURS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Firebase
	v.SetDefault("FIREBASE_PROJECT_ID", "") // Optional
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("STORAGE_BUCKET", "")

	// Firestore collections. LEGACY_USERS_COLLECTION is the migration source for
	// points inheritance; the pre-Firebase export must be imported under this name.
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("LEGACY_USERS_COLLECTION", "legacy_users")
	v.SetDefault("CHALLENGES_COLLECTION", "challenges")
	v.SetDefault("SUBMISSIONS_COLLECTION", "submissions")

	v.SetDefault("SESSION_CACHE_PATH", "./ecotrip_session.db")

	v.SetDefault("ORPHAN_SWEEP_SCHEDULE", "@daily")
	v.SetDefault("ORPHAN_SWEEP_GRACE_HOURS", 24)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
	}
	if strings.TrimSpace(cfg.StorageBucket) == "" {
		return nil, fmt.Errorf("FATAL: STORAGE_BUCKET is not set. This is required for photo submission uploads")
	}

	return &cfg, nil
}
