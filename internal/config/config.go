package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseConfig contains the postgres settings used by the HTTP server and
// migrations. The URL is only required by commands that talk to postgres.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"omitempty,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// StorageConfig locates the local SQLite file that holds the application
// state blob used by the command line tools.
type StorageConfig struct {
	StatePath string `mapstructure:"state_path" validate:"required"`
	StateKey  string `mapstructure:"state_key" validate:"required"`
}

// StudyConfig tunes study sessions.
type StudyConfig struct {
	QueueSize        int `mapstructure:"queue_size" validate:"gt=0"`
	MasteredInterval int `mapstructure:"mastered_interval" validate:"gt=0"`
}
