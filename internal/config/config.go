// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      string `env:"KIDTASK_PORT" envDefault:"8080"`
	DBPath    string `env:"KIDTASK_DB_PATH" envDefault:"kidtask.db"`
	LogLevel  string `env:"KIDTASK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"KIDTASK_LOG_FORMAT" envDefault:"text"`

	Backup BackupConfig `envPrefix:"KIDTASK_BACKUP_"`
}

// BackupConfig configures encrypted snapshots to S3-compatible storage.
// Backups stay disabled unless bucket and credentials are all set.
type BackupConfig struct {
	Endpoint   string `env:"S3_ENDPOINT"`
	Bucket     string `env:"S3_BUCKET"`
	Region     string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKey  string `env:"S3_ACCESS_KEY"`
	SecretKey  string `env:"S3_SECRET_KEY"`
	Passphrase string `env:"PASSPHRASE"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
