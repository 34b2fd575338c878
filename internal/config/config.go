// Package config loads and validates the service configuration.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Mode is the gin mode.
	Mode string `mapstructure:"mode" validate:"required,oneof=debug release test"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Path of the SQLite database file, or ":memory:".
	Path         string `mapstructure:"path" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// AuthConfig contains the token verification settings.
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer         string        `mapstructure:"issuer" validate:"required"`
	Audience       string        `mapstructure:"audience" validate:"required"`
	TokenTTL       time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	ClaimsCacheTTL time.Duration `mapstructure:"claims_cache_ttl" validate:"gte=0"`

	// DevLogin exposes POST /api/login, which signs a token for any email.
	DevLogin bool `mapstructure:"dev_login"`
}

// PaginationConfig bounds list requests.
type PaginationConfig struct {
	MaxSize int `mapstructure:"max_size" validate:"gte=1"`
}
